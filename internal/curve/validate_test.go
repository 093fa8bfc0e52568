package curve

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestIsValidPoint(t *testing.T) {
	c := Secp128r1()
	gx := mustHex(t, "161ff7528b899b2d0c28607ca52c5b86")
	gy := mustHex(t, "cf5ac8395bafeb13c02da292dded7a83")
	p := c.Field().Bytes()

	tests := []struct {
		name string
		x, y []byte
		want bool
	}{
		{"base point", gx, gy, true},
		{"2G", mustHex(t, "8151a0c6b92171db199db84be753a97e"), mustHex(t, "03d853559455caae838395a9275b7e95"), true},
		{"-G", gx, mustHex(t, "30a537c4a45014ec3fd25d6d2212857c"), true},
		{"y off by one", gx, mustHex(t, "cf5ac8395bafeb13c02da292dded7a84"), false},
		{"x equal to p", p, gy, false},
		{"y equal to p", gx, p, false},
		{"x above p", mustHex(t, "fffffffeffffffffffffffffffffffff"), gy, false},
		{"origin", make([]byte, 16), make([]byte, 16), false},
		{"short x", gx[1:], gy, false},
		{"long x", append([]byte{0}, gx...), gy, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, c.IsValidPoint(tt.x, tt.y))
		})
	}
}

func TestIsOnCurve(t *testing.T) {
	c := Secp128r1()
	require.True(t, c.Generator().IsOnCurve())
	require.False(t, Identity(c).IsOnCurve())

	j := c.Generator()
	j.double()
	require.True(t, j.IsOnCurve())

	bad, err := NewPointFromBytes(c, mustHex(t, "161ff7528b899b2d0c28607ca52c5b86"), mustHex(t, "00000000000000000000000000000001"))
	require.NoError(t, err)
	require.False(t, bad.IsOnCurve())

	require.True(t, p256.Generator().IsOnCurve())
}
