package poly1305aes

import (
	"crypto/subtle"
	"fmt"

	"github.com/smartcontractkit/ecdh128/internal/crypto/aes128"
	"golang.org/x/crypto/poly1305"
)

// Poly1305-AES: tag = Poly1305_r(m) + AES_k(n) mod 2^128. A (k, r) key pair may authenticate many messages as long
// as every message uses a distinct nonce n.

const (
	KeySize   = aes128.KeySize
	NonceSize = aes128.BlockSize
	TagSize   = poly1305.TagSize
)

type MAC struct {
	cipher *aes128.Cipher
	r      [16]byte
}

// New returns a MAC keyed with the AES key k and the Poly1305 multiplier r. r is clamped as required by Poly1305.
func New(k, r []byte) (*MAC, error) {
	if len(r) != 16 {
		return nil, fmt.Errorf("invalid Poly1305 r length: got %d, want 16", len(r))
	}
	c, err := aes128.New(k)
	if err != nil {
		return nil, err
	}
	m := &MAC{cipher: c}
	copy(m.r[:], r)
	return m, nil
}

func (m *MAC) oneTimeKey(nonce []byte) (*[32]byte, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("invalid nonce length: got %d, want %d", len(nonce), NonceSize)
	}
	var key [32]byte
	copy(key[:16], m.r[:])
	if err := m.cipher.Encrypt(key[16:], nonce); err != nil {
		return nil, err
	}
	return &key, nil
}

// Stamp computes the tag of msg under nonce.
func (m *MAC) Stamp(nonce, msg []byte) ([TagSize]byte, error) {
	var tag [TagSize]byte
	key, err := m.oneTimeKey(nonce)
	if err != nil {
		return tag, err
	}
	poly1305.Sum(&tag, msg, key)
	return tag, nil
}

// Verify reports whether tag is the valid tag of msg under nonce, in constant time.
func (m *MAC) Verify(tag, nonce, msg []byte) bool {
	expected, err := m.Stamp(nonce, msg)
	if err != nil || len(tag) != TagSize {
		return false
	}
	return subtle.ConstantTimeCompare(expected[:], tag) == 1
}
