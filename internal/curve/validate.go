package curve

import "github.com/smartcontractkit/ecdh128/internal/field"

// c.IsValidPoint(x, y) reports whether the big-endian coordinates x and y encode an affine point on the curve.
// Both coordinates must be fully reduced, i.e. exactly CoordinateSize() bytes long and smaller than p; the point must
// satisfy y² = x³ - 3x + b. The point at infinity has no affine encoding and is never valid.
func (c *Params) IsValidPoint(x, y []byte) bool {
	px, err := field.NewElement(c.p).SetBytes(x)
	if err != nil {
		return false
	}
	py, err := field.NewElement(c.p).SetBytes(y)
	if err != nil {
		return false
	}
	return c.isOnCurve(px, py)
}

// v.IsOnCurve() reports whether v lies on its curve. The point at infinity is reported as not on the curve, since it
// cannot be exchanged as a public key.
func (v *Point) IsOnCurve() bool {
	if v.IsIdentity() {
		return false
	}
	a, err := v.Affine()
	if err != nil {
		return false
	}
	return v.curve.isOnCurve(a.x, a.y)
}

func (c *Params) isOnCurve(x, y field.Element) bool {
	// y²
	left := y.Clone().Square()

	// x³ - 3x + b
	right := x.Clone().Square().Multiply(x)
	right.Subtract(x.Clone().MultiplyUint(3))
	right.Add(c.b)

	return left.Equal(right)
}
