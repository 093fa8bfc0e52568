// Package sealedbox implements single recipient public-key authenticated encryption on top of the secp128r1 key
// exchange. A box carries an ephemeral public key E, a 16-byte nonce, the one-time-pad encrypted message and a
// Poly1305-AES tag. Pad and MAC keys are derived from the ECDH shared secret using a SHAKE256 XOF.
package sealedbox

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io"

	"github.com/smartcontractkit/ecdh128/ecdh"
	"github.com/smartcontractkit/ecdh128/internal/codec"
	"github.com/smartcontractkit/ecdh128/internal/crypto/poly1305aes"
	"github.com/smartcontractkit/ecdh128/internal/crypto/xof"
)

const NonceSize = poly1305aes.NonceSize

// Overhead is the number of bytes a box adds to the plaintext.
const Overhead = ecdh.PublicKeySize + NonceSize + codec.IntSize + poly1305aes.TagSize

var ErrAuthentication = errors.New("sealedbox: message authentication failed")

var _ codec.Codec[*box] = &box{}

type box struct {
	E          ecdh.PublicKey
	nonce      [NonceSize]byte
	ciphertext []byte
	tag        [poly1305aes.TagSize]byte
}

func (b *box) MarshalTo(target codec.Target) {
	target.Write(&b.E)
	target.WriteBytes(b.nonce[:])
	target.WriteLengthPrefixedBytes(b.ciphertext)
	target.WriteBytes(b.tag[:])
}

func (b *box) UnmarshalFrom(src codec.Source) *box {
	b.E = *codec.ReadObject(src, &ecdh.PublicKey{})
	src.ReadBytesInto(b.nonce[:])
	b.ciphertext = src.ReadLengthPrefixedBytes()
	src.ReadBytesInto(b.tag[:])
	return b
}

// Seal encrypts msg for recipient. The associated data ad is authenticated but not encrypted, the same ad must be
// passed to Open. The randomness is used for the nonce only; the ephemeral key pair is derived from it.
func Seal(rand io.Reader, recipient ecdh.PublicKey, msg, ad []byte) ([]byte, error) {
	if msg == nil {
		return nil, fmt.Errorf("sealing nil message not supported")
	}
	if !ecdh.IsValidPoint(recipient) {
		return nil, fmt.Errorf("invalid recipient public key %s", recipient)
	}

	b := &box{}
	if _, err := io.ReadFull(rand, b.nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ephemeral, err := h_R(b.nonce)
	if err != nil {
		return nil, err
	}
	b.E = ephemeral.PublicKey()

	secret, err := ephemeral.SharedKey(recipient)
	if err != nil {
		return nil, fmt.Errorf("failed to derive shared secret: %w", err)
	}

	pad, mac, err := h_Enc(recipient, b.E, secret, ad, len(msg))
	if err != nil {
		return nil, err
	}
	b.ciphertext = make([]byte, len(msg))
	subtle.XORBytes(b.ciphertext, msg, pad)

	if b.tag, err = mac.Stamp(b.nonce[:], b.ciphertext); err != nil {
		return nil, err
	}

	out, err := codec.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to encode box: %w", err)
	}
	return out, nil
}

// Open decrypts a box sealed for the public key of kx. Any modification of the box or a mismatching ad results in
// ErrAuthentication.
func Open(kx *ecdh.KeyExchange, sealed []byte, ad []byte) ([]byte, error) {
	b, err := codec.Unmarshal(sealed, &box{})
	if err != nil {
		return nil, fmt.Errorf("invalid box: failed to decode: %w", err)
	}
	if !kx.IsValidPoint(b.E) {
		return nil, fmt.Errorf("invalid box: ephemeral key is not a valid point")
	}

	secret, err := kx.SharedKey(b.E)
	if err != nil {
		return nil, fmt.Errorf("invalid box: failed to derive shared secret: %w", err)
	}

	pad, mac, err := h_Enc(kx.PublicKey(), b.E, secret, ad, len(b.ciphertext))
	if err != nil {
		return nil, err
	}
	if !mac.Verify(b.tag[:], b.nonce[:], b.ciphertext) {
		return nil, ErrAuthentication
	}

	msg := make([]byte, len(b.ciphertext))
	subtle.XORBytes(msg, b.ciphertext, pad)
	return msg, nil
}

// h_Enc derives the one-time pad and the MAC keys.
func h_Enc(recipient, E ecdh.PublicKey, secret ecdh.SharedSecret, ad []byte, padLen int) ([]byte, *poly1305aes.MAC, error) {
	h := xof.New("smartcontract.com/ecdh128/sealedbox/hEnc")
	h.WriteBytes(recipient.Bytes())
	h.WriteBytes(E.Bytes())
	h.WriteBytes(secret.Bytes())
	h.WriteBytes(ad)
	h.WriteInt(padLen)

	var k, r [poly1305aes.KeySize]byte
	pad := make([]byte, padLen)
	for _, out := range [][]byte{k[:], r[:], pad} {
		if _, err := h.Read(out); err != nil {
			return nil, nil, err
		}
	}
	mac, err := poly1305aes.New(k[:], r[:])
	if err != nil {
		return nil, nil, err
	}
	return pad, mac, nil
}

// h_R deterministically derives the ephemeral key pair from the nonce.
func h_R(nonce [NonceSize]byte) (*ecdh.KeyExchange, error) {
	h := xof.New("smartcontract.com/ecdh128/sealedbox/hR")
	h.WriteBytes(nonce[:])
	return ecdh.New(ecdh.WithRand(h))
}
