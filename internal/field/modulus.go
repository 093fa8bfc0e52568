package field

import (
	"encoding/hex"
	"strings"

	"filippo.io/bigmod"
)

// Modulus is the prime a field is defined over.
type Modulus struct {
	value bigmod.Modulus
}

// Non-constant time function, to be used for initialization and testing only.
// Panics on invalid input; value must be a big-endian hex string (spaces are ignored) of an odd number > 1.
func NewModulus(value string) *Modulus {
	b, err := hex.DecodeString(strings.ReplaceAll(value, " ", ""))
	if err != nil {
		panic("invalid modulus value: " + value + ", error: " + err.Error())
	}
	m, err := bigmod.NewModulus(b)
	if err != nil {
		panic("invalid modulus value: " + value + ", error: " + err.Error())
	}
	if b[len(b)-1]&1 == 0 {
		panic("invalid modulus value: " + value + ", must be odd")
	}
	return &Modulus{*m}
}

func (m *Modulus) Equal(other *Modulus) bool {
	return m == other || (&m.value).Nat().Equal((&other.value).Nat()) == 1
}

// Size returns the width, in bytes, of every element encoded under this modulus.
func (m *Modulus) Size() int {
	return (&m.value).Size()
}

// BitLen returns the size of m in bits.
func (m *Modulus) BitLen() int {
	return (&m.value).BitLen()
}

// Bytes returns the big-endian encoding of m, Size() bytes long.
func (m *Modulus) Bytes() []byte {
	return (&m.value).Nat().Bytes(&m.value)
}
