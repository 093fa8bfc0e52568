package field

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMSBFirst(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  []bool
	}{
		{"empty", nil, nil},
		{"all zero", []byte{0, 0, 0}, nil},
		{"one", []byte{0, 0, 1}, []bool{true}},
		{"leading zero digits trimmed", []byte{0, 0x05, 0x80}, []bool{true, false, true, true, false, false, false, false, false, false, false}},
		{"top bit set", []byte{0x80}, []bool{true, false, false, false, false, false, false, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(MSBFirst(tt.input))
			require.Equal(t, tt.want, got)
			require.Equal(t, len(tt.want), BitLen(tt.input))
		})
	}
}

func TestMSBFirstStopsEarly(t *testing.T) {
	n := 0
	for range MSBFirst([]byte{0xFF, 0xFF}) {
		n++
		if n == 3 {
			break
		}
	}
	require.Equal(t, 3, n)
}

func TestElementBits(t *testing.T) {
	require.Empty(t, slices.Collect(NewElement(testPrime).Bits()))
	require.Equal(t, []bool{true, true}, slices.Collect(NewElement(testPrime).SetUint(3).Bits()))

	pMinusOne := NewElement(testPrime).Subtract(NewElement(testPrime).SetUint(1))
	require.Equal(t, 128, len(slices.Collect(pMinusOne.Bits())))
}
