package poly1305aes

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

// Example from "The Poly1305-AES message-authentication code", Appendix B.
func TestKnownAnswer(t *testing.T) {
	m, err := New(mustHex(t, "ec074c835580741701425b623235add6"), mustHex(t, "851fc40c3467ac0be05cc20404f3f700"))
	require.NoError(t, err)

	nonce := mustHex(t, "fb447350c4e868c52ac3275cf9d4327e")
	msg := mustHex(t, "f3f6")
	tag, err := m.Stamp(nonce, msg)
	require.NoError(t, err)
	require.Equal(t, "f4c633c3044fc145f84f335cb81953de", hex.EncodeToString(tag[:]))
	require.True(t, m.Verify(tag[:], nonce, msg))
}

func TestVerifyRejectsTampering(t *testing.T) {
	m, err := New(make([]byte, KeySize), mustHex(t, "851fc40c3467ac0be05cc20404f3f700"))
	require.NoError(t, err)
	nonce := make([]byte, NonceSize)
	msg := make([]byte, 264)

	tag, err := m.Stamp(nonce, msg)
	require.NoError(t, err)
	require.True(t, m.Verify(tag[:], nonce, msg))

	msg[100] ^= 1
	require.False(t, m.Verify(tag[:], nonce, msg))
	msg[100] ^= 1

	nonce[0] ^= 1
	require.False(t, m.Verify(tag[:], nonce, msg))
	nonce[0] ^= 1

	require.False(t, m.Verify(tag[:15], nonce, msg))
	require.False(t, m.Verify(tag[:], nonce[:8], msg))
}

func TestInvalidKeys(t *testing.T) {
	_, err := New(make([]byte, 15), make([]byte, 16))
	require.Error(t, err)
	_, err = New(make([]byte, 16), make([]byte, 32))
	require.ErrorContains(t, err, "invalid Poly1305 r length")

	m, err := New(make([]byte, 16), make([]byte, 16))
	require.NoError(t, err)
	_, err = m.Stamp(make([]byte, 12), nil)
	require.ErrorContains(t, err, "invalid nonce length")
}
