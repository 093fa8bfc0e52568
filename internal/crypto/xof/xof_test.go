package xof

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func output(t *testing.T, h *XOF) []byte {
	t.Helper()
	out := make([]byte, 32)
	_, err := h.Read(out)
	require.NoError(t, err)
	return out
}

func TestDomainSeparation(t *testing.T) {
	require.NotEqual(t, output(t, New("a")), output(t, New("b")))
	require.Equal(t, output(t, New("a")), output(t, New("a")))
}

func TestUniqueEncoding(t *testing.T) {
	h1 := New("dst")
	h1.WriteBytes([]byte("ab"))
	h1.WriteBytes([]byte("c"))

	h2 := New("dst")
	h2.WriteBytes([]byte("a"))
	h2.WriteBytes([]byte("bc"))
	require.NotEqual(t, output(t, h1), output(t, h2))

	h3 := New("dst")
	h3.WriteBytes(nil)
	h4 := New("dst")
	h4.WriteBytes([]byte{})
	require.NotEqual(t, output(t, h3), output(t, h4))

	h5 := New("dst")
	h5.WriteString("x")
	h6 := New("dst")
	h6.WriteBytes([]byte("x"))
	require.NotEqual(t, output(t, h5), output(t, h6))

	h7 := New("dst")
	h7.WriteInt(1)
	h8 := New("dst")
	h8.WriteInt(2)
	require.NotEqual(t, output(t, h7), output(t, h8))
}

func TestReadContinuesStream(t *testing.T) {
	h := New("dst")
	h.WriteInt(42)
	first := make([]byte, 16)
	second := make([]byte, 16)
	_, _ = h.Read(first)
	_, _ = h.Read(second)

	h = New("dst")
	h.WriteInt(42)
	both := make([]byte, 32)
	_, _ = h.Read(both)
	require.Equal(t, both, append(first, second...))
}

func TestWriteAfterReadPanics(t *testing.T) {
	h := New("dst")
	_, _ = h.Read(make([]byte, 1))
	require.Panics(t, func() { h.WriteInt(1) })
	require.Panics(t, func() { h.WriteString("late") })
	require.Panics(t, func() { h.WriteBytes(nil) })
}
