package field

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/smartcontractkit/ecdh128/internal/testimplementations/unsaferand"
	"github.com/stretchr/testify/require"
)

const testPrimeHex = "FFFFFFFD FFFFFFFF FFFFFFFF FFFFFFFF"

var testPrime = NewModulus(testPrimeHex)

func toBig(x Element) *big.Int {
	return new(big.Int).SetBytes(x.Bytes())
}

func requireBigEqual(t *testing.T, expected *big.Int, actual Element) {
	t.Helper()
	require.Equal(t, expected.Text(16), toBig(actual).Text(16))
}

func randomElement(t *testing.T, rand *unsaferand.UnsafeRand) Element {
	x, err := NewElement(testPrime).SetRandom(rand)
	require.NoError(t, err)
	return x
}

func TestModulus(t *testing.T) {
	require.Equal(t, 16, testPrime.Size())
	require.Equal(t, 128, testPrime.BitLen())
	require.Equal(t, "fffffffdffffffffffffffffffffffff", hex.EncodeToString(testPrime.Bytes()))
	require.Equal(t, "00000000000000000000000000000000", NewElement(testPrime).String())
	require.True(t, testPrime.Equal(NewModulus(testPrimeHex)))
	require.False(t, testPrime.Equal(NewModulus("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFF61")))

	require.Panics(t, func() { NewModulus("not hex") })
	require.Panics(t, func() { NewModulus("FE") })
}

func TestSetBytes(t *testing.T) {
	x := NewElement(testPrime).SetUint(7)

	_, err := x.SetBytes(testPrime.Bytes())
	require.ErrorIs(t, err, ErrOutOfRange)
	require.Equal(t, int64(7), toBig(x).Int64(), "receiver must be unchanged on error")

	_, err = x.SetBytes(make([]byte, 15))
	require.ErrorIs(t, err, ErrInvalidLength)

	pMinusOne := new(big.Int).Sub(new(big.Int).SetBytes(testPrime.Bytes()), big.NewInt(1))
	_, err = x.SetBytes(pMinusOne.FillBytes(make([]byte, 16)))
	require.NoError(t, err)
	requireBigEqual(t, pMinusOne, x)
}

func TestArithmeticMatchesBigInt(t *testing.T) {
	rand := unsaferand.New("field", "arithmetic")
	p := new(big.Int).SetBytes(testPrime.Bytes())

	for i := 0; i < 200; i++ {
		a := randomElement(t, rand)
		b := randomElement(t, rand)
		A, B := toBig(a), toBig(b)

		sum := new(big.Int).Add(A, B)
		requireBigEqual(t, sum.Mod(sum, p), a.Clone().Add(b))

		diff := new(big.Int).Sub(A, B)
		requireBigEqual(t, diff.Mod(diff, p), a.Clone().Subtract(b))

		prod := new(big.Int).Mul(A, B)
		requireBigEqual(t, prod.Mod(prod, p), a.Clone().Multiply(b))

		sq := new(big.Int).Mul(A, A)
		requireBigEqual(t, sq.Mod(sq, p), a.Clone().Square())
		requireBigEqual(t, sq, a.Clone().Multiply(a.Clone()))

		triple := new(big.Int).Mul(A, big.NewInt(3))
		requireBigEqual(t, triple.Mod(triple, p), a.Clone().MultiplyUint(3))
	}
}

func TestMultiplyAliased(t *testing.T) {
	x := NewElement(testPrime).SetUint(12345)
	x.Multiply(x)
	require.Equal(t, int64(12345*12345), toBig(x).Int64())
}

func TestInvert(t *testing.T) {
	rand := unsaferand.New("field", "invert")
	for i := 0; i < 50; i++ {
		x := randomElement(t, rand)
		if x.IsZero() {
			continue
		}
		inv, err := x.Clone().Invert()
		require.NoError(t, err)
		require.True(t, inv.Multiply(x).IsOne())
	}

	zero := NewElement(testPrime)
	_, err := zero.Invert()
	require.ErrorIs(t, err, ErrNotInvertible)
	require.True(t, zero.IsZero())
}

func TestSetRandomIsDeterministicForSeededReader(t *testing.T) {
	x := randomElement(t, unsaferand.New("seed"))
	y := randomElement(t, unsaferand.New("seed"))
	z := randomElement(t, unsaferand.New("other seed"))

	require.True(t, x.Equal(y))
	require.False(t, x.Equal(z))
	require.Equal(t, -1, toBig(x).Cmp(new(big.Int).SetBytes(testPrime.Bytes())))
}

func TestNewElementFromHex(t *testing.T) {
	x := NewElementFromHex("DEAD BEEF", testPrime)
	require.Equal(t, int64(0xDEADBEEF), toBig(x).Int64())
	require.Len(t, x.Bytes(), 16)

	require.Panics(t, func() { NewElementFromHex(testPrimeHex, testPrime) })
	require.Panics(t, func() { NewElementFromHex("xyz", testPrime) })
}

func TestSameField(t *testing.T) {
	other := NewModulus("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFF61")
	a, b := NewElement(testPrime), NewElement(testPrime)
	require.NoError(t, SameField())
	require.NoError(t, SameField(a, b))
	require.ErrorIs(t, SameField(a, NewElement(other)), ErrModulusMismatch)
}
