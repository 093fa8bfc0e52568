package ecdh

import (
	"encoding"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/smartcontractkit/ecdh128/internal/codec"
	"github.com/smartcontractkit/ecdh128/internal/curve"
	"github.com/smartcontractkit/ecdh128/internal/field"
)

const (
	// SecretSize is the width in bytes of the secp128r1 field. All primitives of the toolkit use it as key size.
	SecretSize    = 16
	PublicKeySize = 2 * SecretSize // affine x ‖ y, big-endian
)

var _ codec.Codec[*PublicKey] = &PublicKey{}
var _ encoding.TextMarshaler = PublicKey{}
var _ encoding.TextUnmarshaler = &PublicKey{}
var _ fmt.Stringer = PrivateKey{}
var _ fmt.GoStringer = PrivateKey{}

// PublicKey is an affine secp128r1 point, stored as big-endian coordinates. Values obtained from a peer must be
// checked with IsValidPoint before use.
type PublicKey struct {
	X, Y [SecretSize]byte
}

// NewPublicKey decodes the PublicKeySize byte encoding x ‖ y. It only checks the length; use IsValidPoint to check
// that the point lies on the curve.
func NewPublicKey(b []byte) (PublicKey, error) {
	var pk PublicKey
	if len(b) != PublicKeySize {
		return pk, fmt.Errorf("invalid public key length: got %d, want %d", len(b), PublicKeySize)
	}
	copy(pk.X[:], b[:SecretSize])
	copy(pk.Y[:], b[SecretSize:])
	return pk, nil
}

func publicKeyFromPoint(p *curve.Point) (PublicKey, error) {
	b, err := p.Bytes()
	if err != nil {
		return PublicKey{}, err
	}
	return NewPublicKey(b)
}

func (pk PublicKey) Bytes() []byte {
	out := make([]byte, 0, PublicKeySize)
	out = append(out, pk.X[:]...)
	return append(out, pk.Y[:]...)
}

func (pk PublicKey) point() (*curve.Point, error) {
	p, err := curve.NewPointFromBytes(params, pk.X[:], pk.Y[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCoordinate, err)
	}
	return p, nil
}

func (pk PublicKey) String() string {
	return hexutil.Encode(pk.Bytes())
}

func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(hexutil.Encode(pk.Bytes())), nil
}

// UnmarshalText decodes a 0x-prefixed hex string of PublicKeySize bytes.
func (pk *PublicKey) UnmarshalText(text []byte) error {
	b, err := hexutil.Decode(string(text))
	if err != nil {
		return fmt.Errorf("failed to decode public key: %w", err)
	}
	decoded, err := NewPublicKey(b)
	if err != nil {
		return err
	}
	*pk = decoded
	return nil
}

func (pk *PublicKey) MarshalTo(target codec.Target) {
	target.WriteBytes(pk.X[:])
	target.WriteBytes(pk.Y[:])
}

func (pk *PublicKey) UnmarshalFrom(source codec.Source) *PublicKey {
	source.ReadBytesInto(pk.X[:])
	source.ReadBytesInto(pk.Y[:])
	return pk
}

// PrivateKey is a big-endian secp128r1 scalar. It must be smaller than p. String and GoString never print the
// value, so a private key cannot accidentally end up in a log.
type PrivateKey [SecretSize]byte

func (sk PrivateKey) String() string {
	return sk.GoString()
}

func (sk PrivateKey) GoString() string {
	return "PrivateKey{<redacted>}"
}

func (sk PrivateKey) scalar() (field.Element, error) {
	k, err := params.Scalar().SetBytes(sk[:])
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return k, nil
}

// SharedSecret is the x ‖ y XOR mix of the Diffie-Hellman product, one field element wide.
//
// Conventional ECDH uses the x-coordinate alone. The XOR mix is kept for compatibility with existing peers.
type SharedSecret [SecretSize]byte

func (s SharedSecret) Bytes() []byte {
	return s[:]
}
