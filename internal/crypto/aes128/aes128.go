package aes128

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// Single block AES-128, keyed with a SecretSize (16 byte) value such as an ECDH shared secret.

const (
	KeySize   = 16
	BlockSize = aes.BlockSize
)

type Cipher struct {
	block cipher.Block
}

func New(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("invalid AES-128 key length: got %d, want %d", len(key), KeySize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &Cipher{block}, nil
}

// Encrypt encrypts the first block of src into dst. Both must be at least BlockSize bytes long; dst and src may
// overlap entirely.
func (c *Cipher) Encrypt(dst, src []byte) error {
	if err := checkBlock(dst, src); err != nil {
		return err
	}
	c.block.Encrypt(dst, src)
	return nil
}

// Decrypt is the inverse of Encrypt.
func (c *Cipher) Decrypt(dst, src []byte) error {
	if err := checkBlock(dst, src); err != nil {
		return err
	}
	c.block.Decrypt(dst, src)
	return nil
}

func checkBlock(dst, src []byte) error {
	if len(src) < BlockSize || len(dst) < BlockSize {
		return fmt.Errorf("input and output must hold at least one %d byte block", BlockSize)
	}
	return nil
}

// EncryptBlock encrypts the first block of plaintext under key.
func EncryptBlock(key, plaintext []byte) ([]byte, error) {
	c, err := New(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, BlockSize)
	if err := c.Encrypt(out, plaintext); err != nil {
		return nil, err
	}
	return out, nil
}
