package ecdh

import (
	"encoding"
	"fmt"
)

var _ encoding.BinaryMarshaler = &KeyExchange{}
var _ encoding.BinaryUnmarshaler = &KeyExchange{}
var _ fmt.Stringer = &KeyExchange{}
var _ fmt.GoStringer = &KeyExchange{}

// Implement Stringer and GoStringer interfaces to ensure that the private key is never accidentally logged.
func (kx *KeyExchange) String() string {
	return kx.GoString()
}

// Implement Stringer and GoStringer interfaces to ensure that the private key is never accidentally logged.
func (kx *KeyExchange) GoString() string {
	return fmt.Sprintf("KeyExchange{pk: %q}", kx.PublicKey())
}

// MarshalBinary implements encoding.BinaryMarshaler by exporting the key pair as sk ‖ x ‖ y. Engines created with
// NewWithBasePoint append their base point, giving sk ‖ x ‖ y ‖ base.x ‖ base.y.
func (kx *KeyExchange) MarshalBinary() ([]byte, error) {
	sk := kx.PrivateKey()
	result := make([]byte, 0, SecretSize+2*PublicKeySize)
	result = append(result, sk[:]...)
	result = append(result, kx.PublicKey().Bytes()...)
	if !kx.customBase {
		return result, nil
	}
	base, err := publicKeyFromPoint(kx.base)
	if err != nil {
		return nil, fmt.Errorf("failed to encode base point: %w", err)
	}
	return append(result, base.Bytes()...), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler by importing a key pair exported with MarshalBinary. The
// public key is recomputed from the private key and the base point, and must match. The restored engine uses the
// default logger and no metrics.
func (kx *KeyExchange) UnmarshalBinary(data []byte) error {
	base := params.Generator()
	switch len(data) {
	case SecretSize + PublicKeySize:
	case SecretSize + 2*PublicKeySize:
		encoded, err := NewPublicKey(data[SecretSize+PublicKeySize:])
		if err != nil {
			return err
		}
		if base, err = encoded.basePoint(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid data length: got %d, want %d or %d",
			len(data), SecretSize+PublicKeySize, SecretSize+2*PublicKeySize)
	}

	var sk PrivateKey
	copy(sk[:], data[:SecretSize])
	pk, err := NewPublicKey(data[SecretSize : SecretSize+PublicKeySize])
	if err != nil {
		return err
	}

	restored, err := restore(base, pk, sk, newConfig(nil))
	if err != nil {
		return err
	}
	*kx = *restored
	return nil
}
