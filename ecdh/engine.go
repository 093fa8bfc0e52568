package ecdh

import (
	"errors"
	"fmt"
	"time"

	"github.com/smartcontractkit/ecdh128/internal/curve"
	"github.com/smartcontractkit/ecdh128/internal/field"
	"github.com/smartcontractkit/ecdh128/internal/logging"
)

var (
	ErrPointAtInfinity   = errors.New("ecdh: result is the point at infinity")
	ErrInvalidCoordinate = errors.New("ecdh: coordinate out of range")
)

var params = curve.Secp128r1()

const curveName = "secp128r1"

// KeyExchange holds a secp128r1 key pair. The private key is generated on construction; the engine is immutable
// afterwards and safe for concurrent use.
type KeyExchange struct {
	base       *curve.Point
	customBase bool
	sk         field.Element
	pk         *curve.Point
	logger     *logging.Logger
	metrics    *Metrics
}

// New returns an engine with a fresh key pair on the default base point.
func New(opts ...Option) (*KeyExchange, error) {
	return newKeyExchange(params.Generator(), newConfig(opts))
}

// NewWithBasePoint returns an engine with a fresh key pair whose public key is base·sk. The base point must lie on
// the curve.
func NewWithBasePoint(base PublicKey, opts ...Option) (*KeyExchange, error) {
	cfg := newConfig(opts)
	p, err := base.basePoint()
	if err != nil {
		return nil, err
	}
	return newKeyExchange(p, cfg)
}

func (pk PublicKey) basePoint() (*curve.Point, error) {
	p, err := pk.point()
	if err != nil {
		return nil, err
	}
	if !p.IsOnCurve() {
		return nil, fmt.Errorf("base point %s is not on the curve", pk)
	}
	return p, nil
}

func newKeyExchange(base *curve.Point, cfg *config) (*KeyExchange, error) {
	sk, err := params.Scalar().SetRandom(cfg.rand)
	if err != nil {
		cfg.metrics.DerivationFailed("randomness")
		return nil, fmt.Errorf("failed to generate private key: %w", err)
	}
	kx := newEngine(base, sk, cfg)
	if kx.pk, err = kx.multiply(base, sk); err != nil {
		return nil, fmt.Errorf("failed to derive public key: %w", err)
	}
	kx.metrics.KeyPairGenerated()
	kx.logger.Trace("key pair generated", logging.Fields{"pk": kx.PublicKey().String()})
	return kx, nil
}

func newEngine(base *curve.Point, sk field.Element, cfg *config) *KeyExchange {
	return &KeyExchange{
		base:       base,
		customBase: !base.Equal(params.Generator()),
		sk:         sk,
		logger:     cfg.logger,
		metrics:    cfg.metrics,
	}
}

// NewFromKeys restores an engine from existing key material. The public key must equal G·sk.
func NewFromKeys(pk PublicKey, sk PrivateKey, opts ...Option) (*KeyExchange, error) {
	return restore(params.Generator(), pk, sk, newConfig(opts))
}

// restore rebuilds an engine on base, checking that pk equals base·sk.
func restore(base *curve.Point, pk PublicKey, sk PrivateKey, cfg *config) (*KeyExchange, error) {
	k, err := sk.scalar()
	if err != nil {
		return nil, err
	}
	kx := newEngine(base, k, cfg)
	if kx.pk, err = kx.multiply(kx.base, k); err != nil {
		return nil, fmt.Errorf("failed to derive public key: %w", err)
	}
	if derived := kx.PublicKey(); derived != pk {
		return nil, fmt.Errorf("public key mismatch, expected %s, got %s", pk, derived)
	}
	return kx, nil
}

func (kx *KeyExchange) PublicKey() PublicKey {
	pk, _ := publicKeyFromPoint(kx.pk) // kx.pk is affine and never the identity
	return pk
}

// PrivateKey exports the private scalar. Handle with care.
func (kx *KeyExchange) PrivateKey() PrivateKey {
	return PrivateKey(kx.sk.Bytes())
}

// SharedKey derives the shared secret with the owner of peer. Both parties arrive at the same value.
func (kx *KeyExchange) SharedKey(peer PublicKey) (SharedSecret, error) {
	// Shared secrets are always computed on the peer's point; the engine's base point plays no part.
	kx.logger.Debug("base point reset to the curve generator before derivation", logging.Fields{
		"custom_base": kx.customBase,
	})
	return kx.sharedKey(peer, kx.sk)
}

// SharedKey derives the shared secret for the given key material without an engine.
func SharedKey(peer PublicKey, sk PrivateKey, opts ...Option) (SharedSecret, error) {
	cfg := newConfig(opts)
	kx := &KeyExchange{logger: cfg.logger, metrics: cfg.metrics}
	k, err := sk.scalar()
	if err != nil {
		kx.metrics.DerivationFailed("invalid_private_key")
		return SharedSecret{}, err
	}
	return kx.sharedKey(peer, k)
}

func (kx *KeyExchange) sharedKey(peer PublicKey, k field.Element) (SharedSecret, error) {
	var secret SharedSecret

	p, err := peer.point()
	if err != nil {
		kx.metrics.DerivationFailed("invalid_coordinate")
		kx.logger.Warn("rejected peer public key", logging.Fields{"peer": peer.String(), "err": err})
		return secret, err
	}
	r, err := kx.multiply(p, k)
	if err != nil {
		return secret, err
	}

	x, y := r.X().Bytes(), r.Y().Bytes()
	for i := range secret {
		secret[i] = x[i] ^ y[i]
	}
	kx.metrics.SharedSecretDerived()
	kx.logger.Trace("shared secret derived", logging.Fields{"peer": peer.String()})
	return secret, nil
}

// multiply computes p·k, rejecting a product at infinity.
func (kx *KeyExchange) multiply(p *curve.Point, k field.Element) (*curve.Point, error) {
	start := time.Now()
	r, err := p.ScalarMult(k)
	kx.metrics.ObserveScalarMult(start)
	if err != nil {
		kx.metrics.DerivationFailed("scalar_mult")
		return nil, err
	}
	if r.IsIdentity() {
		kx.metrics.DerivationFailed("point_at_infinity")
		return nil, ErrPointAtInfinity
	}
	return r, nil
}

// IsValidPoint reports whether both coordinates of pk are below p and pk satisfies y² = x³ - 3x + b.
func IsValidPoint(pk PublicKey) bool {
	return params.IsValidPoint(pk.X[:], pk.Y[:])
}

// IsValidPoint is like the package level IsValidPoint but records the outcome in the engine's metrics.
func (kx *KeyExchange) IsValidPoint(pk PublicKey) bool {
	valid := IsValidPoint(pk)
	kx.metrics.PointValidated(valid)
	if !valid {
		kx.logger.Warn("invalid point", logging.Fields{"point": pk.String()})
	}
	return valid
}
