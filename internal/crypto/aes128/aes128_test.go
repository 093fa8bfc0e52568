package aes128

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

// FIPS 197, Appendix C.1.
func TestKnownAnswer(t *testing.T) {
	key := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	pt := mustHex(t, "00112233445566778899aabbccddeeff")
	ct := mustHex(t, "69c4e0d86a7b0430d8cdb78070b4c55a")

	got, err := EncryptBlock(key, pt)
	require.NoError(t, err)
	require.Equal(t, ct, got)

	c, err := New(key)
	require.NoError(t, err)
	buf := append([]byte(nil), ct...)
	require.NoError(t, c.Decrypt(buf, buf))
	require.Equal(t, pt, buf)
}

func TestOnlyFirstBlockIsProcessed(t *testing.T) {
	key := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	msg := append(mustHex(t, "00112233445566778899aabbccddeeff"), make([]byte, 176)...)

	got, err := EncryptBlock(key, msg)
	require.NoError(t, err)
	require.Equal(t, mustHex(t, "69c4e0d86a7b0430d8cdb78070b4c55a"), got)
}

func TestInvalidInputs(t *testing.T) {
	_, err := New(make([]byte, 24))
	require.ErrorContains(t, err, "invalid AES-128 key length")

	c, err := New(make([]byte, KeySize))
	require.NoError(t, err)
	require.Error(t, c.Encrypt(make([]byte, BlockSize), make([]byte, BlockSize-1)))
	require.Error(t, c.Decrypt(make([]byte, BlockSize-1), make([]byte, BlockSize)))
}
