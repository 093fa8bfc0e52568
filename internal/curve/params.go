package curve

import "github.com/smartcontractkit/ecdh128/internal/field"

// Params describes a short Weierstrass curve y² = x³ - 3x + b over the prime field of order p.
// The coefficient a is fixed at -3. Params values are immutable once constructed, and safe for concurrent use.
type Params struct {
	name string
	p    *field.Modulus
	b    field.Element
	gx   field.Element
	gy   field.Element
}

// SEC 2 (v1.0), Section 2.4.1. Big-endian hex encodings. The group order n = FFFFFFFE 00000000 75A30D1B 9038A115
// exceeds p, so scalars taken modulo p never reach it.
var secp128r1 = NewParams(
	"secp128r1",
	"FFFFFFFD FFFFFFFF FFFFFFFF FFFFFFFF",
	"E87579C1 1079F43D D824993C 2CEE5ED3",
	"161FF752 8B899B2D 0C28607C A52C5B86",
	"CF5AC839 5BAFEB13 C02DA292 DDED7A83",
)

// Secp128r1 returns the parameters of the 128-bit curve used by the key exchange.
func Secp128r1() *Params {
	return secp128r1
}

// Non-constant time function, to be used for initialization and testing only.
// Panics on invalid input; all values are big-endian hex strings, spaces are ignored. The base point must lie on
// the curve.
func NewParams(name, p, b, gx, gy string) *Params {
	m := field.NewModulus(p)
	c := &Params{
		name: name,
		p:    m,
		b:    field.NewElementFromHex(b, m),
		gx:   field.NewElementFromHex(gx, m),
		gy:   field.NewElementFromHex(gy, m),
	}
	if !c.isOnCurve(c.gx, c.gy) {
		panic("invalid curve parameters: base point of " + name + " is not on the curve")
	}
	return c
}

// Returns the name of the curve, for logging purposes.
func (c *Params) Name() string {
	return c.name
}

// Field returns the prime modulus p. Must not be modified by the caller.
func (c *Params) Field() *field.Modulus {
	return c.p
}

// B returns a copy of the curve coefficient b.
func (c *Params) B() field.Element {
	return c.b.Clone()
}

// CoordinateSize returns the number of bytes used to encode a single coordinate.
func (c *Params) CoordinateSize() int {
	return c.p.Size()
}

// Generator returns a new affine copy of the base point; the caller may modify it.
func (c *Params) Generator() *Point {
	return &Point{c, c.gx.Clone(), c.gy.Clone(), field.NewElement(c.p).SetUint(1)}
}

// Scalar returns a new zero-valued scalar, an element of the curve's base field.
func (c *Params) Scalar() field.Element {
	return field.NewElement(c.p)
}
