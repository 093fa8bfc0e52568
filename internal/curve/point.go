package curve

import (
	"errors"
	"fmt"

	"github.com/smartcontractkit/ecdh128/internal/field"
)

// This package operates internally on Jacobian coordinates. For a given affine point (x, y), the Jacobian
// coordinates are (X, Y, Z) with x = X/Z² and y = Y/Z³. Z = 1 marks the affine representation; (0, 0, 0) is the
// point at infinity. Working in Jacobian coordinates defers the field inversion to a single normalization step at
// the end of a scalar multiplication.

var (
	ErrNotAffine         = errors.New("curve: point is not in affine form")
	ErrInvalidCoordinate = errors.New("curve: invalid coordinate")
	ErrCurveMismatch     = errors.New("curve: operands defined over different fields")
)

// Point is a point on a Params curve in Jacobian coordinates. Points are values; operations either mutate the
// receiver explicitly (internal helpers) or return new points.
type Point struct {
	curve   *Params
	x, y, z field.Element
}

// NewPoint returns the affine point (x, y). The coordinates are copied. NewPoint does not check that the point lies
// on the curve, use IsOnCurve() or Params.IsValidPoint(...) for that.
func NewPoint(c *Params, x, y field.Element) (*Point, error) {
	if !x.Modulus().Equal(c.p) || !y.Modulus().Equal(c.p) {
		return nil, ErrCurveMismatch
	}
	return &Point{c, x.Clone(), y.Clone(), field.NewElement(c.p).SetUint(1)}, nil
}

// NewPointFromBytes returns the affine point with the given big-endian coordinates. Each coordinate must be exactly
// CoordinateSize() bytes long and smaller than p.
func NewPointFromBytes(c *Params, x, y []byte) (*Point, error) {
	px, err := field.NewElement(c.p).SetBytes(x)
	if err != nil {
		return nil, fmt.Errorf("%w: x: %w", ErrInvalidCoordinate, err)
	}
	py, err := field.NewElement(c.p).SetBytes(y)
	if err != nil {
		return nil, fmt.Errorf("%w: y: %w", ErrInvalidCoordinate, err)
	}
	return &Point{c, px, py, field.NewElement(c.p).SetUint(1)}, nil
}

// Identity returns the point at infinity (0, 0, 0).
func Identity(c *Params) *Point {
	return &Point{c, field.NewElement(c.p), field.NewElement(c.p), field.NewElement(c.p)}
}

func (v *Point) Curve() *Params {
	return v.curve
}

// v.Clone() returns an independent copy of v.
func (v *Point) Clone() *Point {
	return &Point{v.curve, v.x.Clone(), v.y.Clone(), v.z.Clone()}
}

func (v *Point) IsIdentity() bool {
	return v.z.IsZero()
}

func (v *Point) IsAffine() bool {
	return v.z.IsOne()
}

// Returns a copy of the X coordinate (Jacobian).
func (v *Point) X() field.Element { return v.x.Clone() }

// Returns a copy of the Y coordinate (Jacobian).
func (v *Point) Y() field.Element { return v.y.Clone() }

// Returns a copy of the Z coordinate.
func (v *Point) Z() field.Element { return v.z.Clone() }

// v.Bytes() returns the big-endian encoding x ‖ y of the affine point v. The identity encodes as all zeros.
func (v *Point) Bytes() ([]byte, error) {
	if v.IsIdentity() {
		return make([]byte, 2*v.curve.CoordinateSize()), nil
	}
	if !v.IsAffine() {
		return nil, ErrNotAffine
	}
	out := make([]byte, 0, 2*v.curve.CoordinateSize())
	out = append(out, v.x.Bytes()...)
	return append(out, v.y.Bytes()...), nil
}

// v.Equal(u) reports whether v and u represent the same point, independent of their Jacobian representatives.
func (v *Point) Equal(u *Point) bool {
	if v.IsIdentity() || u.IsIdentity() {
		return v.IsIdentity() && u.IsIdentity()
	}

	// x1/z1² == x2/z2²  <=>  x1·z2² == x2·z1², and likewise y1·z2³ == y2·z1³.
	z1z1 := v.z.Clone().Square()
	z2z2 := u.z.Clone().Square()
	if !v.x.Clone().Multiply(z2z2).Equal(u.x.Clone().Multiply(z1z1)) {
		return false
	}
	return v.y.Clone().Multiply(z2z2).Multiply(u.z).Equal(u.y.Clone().Multiply(z1z1).Multiply(v.z))
}

// Affine returns the affine representative of v, the identity is returned as (0, 0, 0).
func (v *Point) Affine() (*Point, error) {
	a := v.Clone()
	if err := a.normalize(); err != nil {
		return nil, err
	}
	return a, nil
}

// v.ScalarMult(k) returns k·v, normalized to affine coordinates. v is left unchanged.
//
// The multiplication is a left-to-right double-and-add over the bits of k, without any protection against timing
// side channels. A zero scalar yields the point at infinity, as does any k for which the accumulator ends up at
// infinity. v must be affine (or the identity).
func (v *Point) ScalarMult(k field.Element) (*Point, error) {
	if !k.Modulus().Equal(v.curve.p) {
		return nil, ErrCurveMismatch
	}
	if v.IsIdentity() {
		return Identity(v.curve), nil
	}
	if !v.IsAffine() {
		return nil, ErrNotAffine
	}

	var acc *Point
	for bit := range k.Bits() {
		if acc == nil {
			// The leading bit is always set, so the accumulator starts at v itself.
			acc = v.Clone()
			continue
		}
		acc.double()
		if bit {
			acc.addMixed(v)
		}
	}
	if acc == nil {
		return Identity(v.curve), nil
	}

	if err := acc.normalize(); err != nil {
		return nil, err
	}
	return acc, nil
}

// v.normalize() converts v to affine coordinates in place: with Z = 1/z², x := x·Z, y := y·Z/z, z := 1.
func (v *Point) normalize() error {
	if v.IsIdentity() {
		v.setIdentity()
		return nil
	}
	if v.IsAffine() {
		return nil
	}

	zInv, err := v.z.Clone().Invert()
	if err != nil {
		return fmt.Errorf("cannot normalize point: %w", err)
	}
	zz := zInv.Clone().Square()
	v.x.Multiply(zz)
	zz.Multiply(zInv)
	v.y.Multiply(zz)
	v.z.SetUint(1)
	return nil
}

// v.double() sets v = 2·v. Jacobian doubling for a = -3, without inversion:
//
//	C  = 3·(x - z²)·(x + z²)
//	z' = 2·y·z
//	S  = 4·x·y²
//	x' = C² - 2·S
//	y' = C·(S - x') - 8·y⁴
func (v *Point) double() {
	if v.IsIdentity() {
		return
	}

	aux := v.z.Clone().Square()
	c := v.x.Clone().Subtract(aux)
	aux.Add(v.x)
	c.Multiply(aux).MultiplyUint(3)

	v.z.Multiply(v.y).MultiplyUint(2)

	v.y.Square()
	b := v.y.Clone().Square().MultiplyUint(8)
	v.y.Multiply(v.x).MultiplyUint(4)

	v.x.Set(c).Square()
	aux.Set(v.y).MultiplyUint(2)
	v.x.Subtract(aux)

	v.y.Subtract(v.x).Multiply(c).Subtract(b)
}

// v.addMixed(q) sets v = v + q, where q is affine (z = 1) and v is Jacobian:
//
//	H  = x₂·z₁² - x₁
//	R  = y₂·z₁³ - y₁
//	x₃ = R² - H³ - 2·x₁·H²
//	y₃ = R·(x₁·H² - x₃) - y₁·H³
//	z₃ = z₁·H
//
// The formulas are undefined for v = ±q and for v at infinity; those cases are dispatched explicitly.
func (v *Point) addMixed(q *Point) {
	if q.IsIdentity() {
		return
	}
	if v.IsIdentity() {
		v.x.Set(q.x)
		v.y.Set(q.y)
		v.z.SetUint(1)
		return
	}

	z1z1 := v.z.Clone().Square()
	h := z1z1.Clone().Multiply(q.x).Subtract(v.x)
	r := z1z1.Multiply(v.z).Multiply(q.y).Subtract(v.y)

	if h.IsZero() {
		if r.IsZero() {
			v.double()
		} else {
			v.setIdentity()
		}
		return
	}

	hh := h.Clone().Square()
	hhh := hh.Clone().Multiply(h)
	x1hh := hh.Multiply(v.x)

	x3 := r.Clone().Square().Subtract(hhh)
	x3.Subtract(x1hh.Clone().MultiplyUint(2))

	y3 := x1hh.Subtract(x3).Multiply(r)
	y3.Subtract(hhh.Multiply(v.y))

	v.z.Multiply(h)
	v.x, v.y = x3, y3
}

func (v *Point) setIdentity() {
	v.x.SetUint(0)
	v.y.SetUint(0)
	v.z.SetUint(0)
}

func (v *Point) String() string {
	return fmt.Sprintf("{x=%s,y=%s,z=%s}", v.x, v.y, v.z)
}
