// Field arithmetic modulo a prime, based on the bigmod package from Go's internal stdlib, exported via
// filippo.io/bigmod. Multiplication and reduction are constant time; inversion is not.

package field

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"filippo.io/bigmod"
)

var (
	ErrNotInvertible   = errors.New("field: cannot invert zero")
	ErrInvalidLength   = errors.New("field: invalid encoding length")
	ErrOutOfRange      = errors.New("field: value is not reduced modulo the field prime")
	ErrModulusMismatch = errors.New("field: elements defined over different moduli")
)

// Element represents a value in the finite field defined by a modulus. The value is always fully reduced.
// Elements of different moduli are not compatible, and must not be used together in arithmetic operations.
type Element = *element

type element struct {
	value   *bigmod.Nat
	modulus *Modulus
}

// NewElement creates a new element of the field defined by m.
// The value is initialized to zero.
func NewElement(m *Modulus) Element {
	return &element{bigmod.NewNat().ExpandFor(&m.value), m}
}

// Non-constant time function, to be used for initialization and testing only.
// Panics on invalid input; value must be a big-endian hex string (spaces are ignored) smaller than the modulus.
func NewElementFromHex(value string, m *Modulus) Element {
	n, ok := new(big.Int).SetString(strings.ReplaceAll(value, " ", ""), 16)
	if !ok {
		panic("invalid element value: " + value)
	}
	b := make([]byte, m.Size())
	if n.Sign() < 0 || n.BitLen() > 8*len(b) {
		panic("invalid element value: " + value)
	}
	x, err := NewElement(m).SetBytes(n.FillBytes(b))
	if err != nil {
		panic("invalid element value: " + value + ", error: " + err.Error())
	}
	return x
}

// x.Set(y) sets x = y, and returns x.
// This creates a copy of the value of y, so that x and y can be modified independently.
func (x Element) Set(y Element) Element {
	copy(x.value.Bits(), y.value.Bits())
	return x
}

// x.SetUint(y) sets x = y, returns x.
// y must be smaller than the modulus of x.
func (x Element) SetUint(y uint) Element {
	x.value.SetUint(y).ExpandFor(&x.modulus.value)
	return x
}

// x.SetBytes(b) sets x to the big-endian value b, and returns x.
// b must be exactly Size() bytes long and encode a value smaller than the modulus. Otherwise, SetBytes returns an
// error and the receiver is unchanged.
func (x Element) SetBytes(b []byte) (Element, error) {
	if len(b) != x.modulus.Size() {
		return nil, fmt.Errorf("%w: got %d bytes, expected %d", ErrInvalidLength, len(b), x.modulus.Size())
	}
	t, err := bigmod.NewNat().SetBytes(b, &x.modulus.value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}
	x.value = t.ExpandFor(&x.modulus.value)
	return x, nil
}

// x.SetRandom(rand) sets x to a random element and returns x. The value is sampled (nearly) uniformly from
// {0, 1, ..., modulus - 1}: Size() + 16 bytes are read from rand and reduced modulo the modulus. Exactly that
// number of bytes is consumed, so a deterministic rand yields a deterministic element.
func (x Element) SetRandom(rand io.Reader) (Element, error) {
	rngBytes := make([]byte, x.modulus.Size()+16)
	if _, err := io.ReadFull(rand, rngBytes); err != nil {
		return nil, err
	}

	// Build a modulus that is larger than rngBytes (when interpreted as big-endian number).
	largeModBytes := make([]byte, len(rngBytes)+1)
	largeModBytes[0] = 1
	largeMod, err := bigmod.NewModulus(largeModBytes)
	if err != nil {
		return nil, err
	}

	t := bigmod.NewNat()
	if _, err := t.SetBytes(rngBytes, largeMod); err != nil {
		return nil, err
	}
	x.value.Mod(t, &x.modulus.value)
	return x, nil
}

func (x Element) Add(y Element) Element {
	x.value.Add(y.value, &x.modulus.value)
	return x
}

func (x Element) Subtract(y Element) Element {
	x.value.Sub(y.value, &x.modulus.value)
	return x
}

func (x Element) Multiply(y Element) Element {
	if x == y {
		y = y.Clone()
	}
	x.value.Mul(y.value, &x.modulus.value)
	return x
}

// x.MultiplyUint(k) sets x = k * x, where k must be smaller than the modulus.
func (x Element) MultiplyUint(k uint) Element {
	return x.Multiply(NewElement(x.modulus).SetUint(k))
}

func (x Element) Square() Element {
	return x.Multiply(x.Clone())
}

// x.Invert() sets x = 1/x. Zero has no inverse, in which case ErrNotInvertible is returned and x is unchanged.
// Not constant time.
func (x Element) Invert() (Element, error) {
	if x.IsZero() {
		return nil, ErrNotInvertible
	}
	inv, ok := bigmod.NewNat().InverseVarTime(x.value, &x.modulus.value)
	if !ok {
		return nil, ErrNotInvertible
	}
	x.value = inv.ExpandFor(&x.modulus.value)
	return x, nil
}

// x.IsZero() returns true if x is zero, and false otherwise.
func (x Element) IsZero() bool {
	return x.value.IsZero() == 1
}

// x.IsOne() returns true if x is one, and false otherwise.
func (x Element) IsOne() bool {
	return x.value.IsOne() == 1
}

// Tests two elements for equality. Only supported for elements with the same modulus.
func (x Element) Equal(y Element) bool {
	return x.value.Equal(y.value) == 1
}

// Returns an independent copy of the element.
func (x Element) Clone() Element {
	return NewElement(x.modulus).Set(x)
}

// Returns the internal reference to the modulus underlying the element.
// Must not be modified by the caller.
func (x Element) Modulus() *Modulus {
	return x.modulus
}

// x.Bytes() returns the big-endian encoding of x, exactly Size() bytes long.
func (x Element) Bytes() []byte {
	return x.value.Bytes(&x.modulus.value)
}

// Non-constant time function, to be used for logging and testing.
func (x Element) String() string {
	return fmt.Sprintf("%x", x.Bytes())
}

// SameField returns ErrModulusMismatch unless all elements are defined over the same modulus.
func SameField(elements ...Element) error {
	if len(elements) == 0 {
		return nil
	}
	for _, e := range elements[1:] {
		if !e.modulus.Equal(elements[0].modulus) {
			return ErrModulusMismatch
		}
	}
	return nil
}
