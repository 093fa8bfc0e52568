package bench

import (
	"crypto/sha256"
	"fmt"
	"io"
	"slices"

	"filippo.io/edwards25519"
	"filippo.io/nistec"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/smartcontractkit/ecdh128/ecdh"
	"github.com/smartcontractkit/ecdh128/internal/crypto/aes128"
	"github.com/smartcontractkit/ecdh128/internal/crypto/poly1305aes"
	"golang.org/x/crypto/curve25519"
)

const (
	// Poly1305MessageSize is the size of the one-time-pad of a forwarding grant.
	Poly1305MessageSize = 264
	// AESMessageSize is the size of the payload of a forwarding grant. Only its first block is encrypted.
	AESMessageSize = 192
)

// Op executes iteration i of a benchmark. Implementations cycle through their fixtures.
type Op func(i int) error

// Env is what a primitive's Setup draws on: the randomness for its fixtures and the metrics that engine
// operations report to (nil disables them).
type Env struct {
	Rand    io.Reader
	Metrics *ecdh.Metrics
}

// Primitive is a benchmarked operation. Setup prepares n fixtures from env, outside of the measurement.
type Primitive struct {
	Name    string
	Aliases []string
	// BytesPerIteration is the amount of data processed per iteration, 0 if throughput is meaningless.
	BytesPerIteration int
	// Baseline marks reference implementations of other curves, not part of the toolkit.
	Baseline bool
	Setup    func(env Env, n int) (Op, error)
}

var primitives = []Primitive{
	{Name: "sha256", Aliases: []string{"sha256"}, BytesPerIteration: ecdh.SecretSize, Setup: setupSHA256},
	{Name: "aes128", Aliases: []string{"aes-encrypt"}, BytesPerIteration: aes128.BlockSize, Setup: setupAESEncrypt},
	{Name: "aes128_decrypt", Aliases: []string{"aes-decrypt"}, BytesPerIteration: aes128.BlockSize, Setup: setupAESDecrypt},
	{Name: "poly1305", Aliases: []string{"poly1305"}, BytesPerIteration: Poly1305MessageSize, Setup: setupPoly1305},
	{Name: "ecdh_shared", Aliases: []string{"dh"}, Setup: setupECDH},
	{Name: "p256_ecdh", Baseline: true, Setup: setupP256},
	{Name: "x25519", Baseline: true, Setup: setupX25519},
	{Name: "secp256k1_ecdh", Baseline: true, Setup: setupSecp256k1},
	{Name: "ed25519_scalarmult", Baseline: true, Setup: setupEd25519},
}

// Primitives returns the registered primitives, optionally including the baselines.
func Primitives(baselines bool) []Primitive {
	var result []Primitive
	for _, p := range primitives {
		if !p.Baseline || baselines {
			result = append(result, p)
		}
	}
	return result
}

// Lookup finds a primitive by name or alias.
func Lookup(name string) (Primitive, error) {
	for _, p := range primitives {
		if p.Name == name || slices.Contains(p.Aliases, name) {
			return p, nil
		}
	}
	return Primitive{}, fmt.Errorf("unknown primitive %q", name)
}

// Names returns all names and aliases accepted by Lookup.
func Names() []string {
	var names []string
	for _, p := range primitives {
		names = append(names, p.Name)
		for _, a := range p.Aliases {
			if a != p.Name {
				names = append(names, a)
			}
		}
	}
	return names
}

func fill(rand io.Reader, n, size int) ([][]byte, error) {
	out := make([][]byte, n)
	for i := range out {
		out[i] = make([]byte, size)
		if _, err := io.ReadFull(rand, out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func setupSHA256(env Env, n int) (Op, error) {
	data, err := fill(env.Rand, n, ecdh.SecretSize)
	if err != nil {
		return nil, err
	}
	return func(i int) error {
		_ = sha256.Sum256(data[i%n])
		return nil
	}, nil
}

func setupAESEncrypt(env Env, n int) (Op, error) {
	keys, err := fill(env.Rand, n, aes128.KeySize)
	if err != nil {
		return nil, err
	}
	messages, err := fill(env.Rand, n, AESMessageSize)
	if err != nil {
		return nil, err
	}
	return func(i int) error {
		_, err := aes128.EncryptBlock(keys[i%n], messages[i%n])
		return err
	}, nil
}

func setupAESDecrypt(env Env, n int) (Op, error) {
	keys, err := fill(env.Rand, n, aes128.KeySize)
	if err != nil {
		return nil, err
	}
	messages, err := fill(env.Rand, n, AESMessageSize)
	if err != nil {
		return nil, err
	}
	return func(i int) error {
		c, err := aes128.New(keys[i%n])
		if err != nil {
			return err
		}
		return c.Decrypt(messages[i%n], messages[i%n])
	}, nil
}

func setupPoly1305(env Env, n int) (Op, error) {
	keys, err := fill(env.Rand, n, poly1305aes.KeySize)
	if err != nil {
		return nil, err
	}
	nonces, err := fill(env.Rand, n, poly1305aes.NonceSize)
	if err != nil {
		return nil, err
	}
	messages, err := fill(env.Rand, n, Poly1305MessageSize)
	if err != nil {
		return nil, err
	}
	return func(i int) error {
		// The nonce doubles as the Poly1305 multiplier r.
		mac, err := poly1305aes.New(keys[i%n], nonces[i%n])
		if err != nil {
			return err
		}
		_, err = mac.Stamp(nonces[i%n], messages[i%n])
		return err
	}, nil
}

func setupECDH(env Env, n int) (Op, error) {
	peers := make([]ecdh.PublicKey, n)
	keys := make([]ecdh.PrivateKey, n)
	for i := range n {
		peer, err := ecdh.New(ecdh.WithRand(env.Rand))
		if err != nil {
			return nil, err
		}
		local, err := ecdh.New(ecdh.WithRand(env.Rand))
		if err != nil {
			return nil, err
		}
		peers[i], keys[i] = peer.PublicKey(), local.PrivateKey()
	}
	return func(i int) error {
		_, err := ecdh.SharedKey(peers[i%n], keys[i%n], ecdh.WithMetrics(env.Metrics))
		return err
	}, nil
}

func setupP256(env Env, n int) (Op, error) {
	peers := make([]*nistec.P256Point, n)
	scalars, err := fill(env.Rand, n, 32)
	if err != nil {
		return nil, err
	}
	peerScalars, err := fill(env.Rand, n, 32)
	if err != nil {
		return nil, err
	}
	for i := range n {
		if peers[i], err = nistec.NewP256Point().ScalarBaseMult(peerScalars[i]); err != nil {
			return nil, err
		}
	}
	return func(i int) error {
		_, err := nistec.NewP256Point().ScalarMult(peers[i%n], scalars[i%n])
		return err
	}, nil
}

func setupX25519(env Env, n int) (Op, error) {
	scalars, err := fill(env.Rand, n, curve25519.ScalarSize)
	if err != nil {
		return nil, err
	}
	peerScalars, err := fill(env.Rand, n, curve25519.ScalarSize)
	if err != nil {
		return nil, err
	}
	peers := make([][]byte, n)
	for i := range n {
		if peers[i], err = curve25519.X25519(peerScalars[i], curve25519.Basepoint); err != nil {
			return nil, err
		}
	}
	return func(i int) error {
		_, err := curve25519.X25519(scalars[i%n], peers[i%n])
		return err
	}, nil
}

func setupSecp256k1(env Env, n int) (Op, error) {
	scalars, err := fill(env.Rand, n, 32)
	if err != nil {
		return nil, err
	}
	peerScalars, err := fill(env.Rand, n, 32)
	if err != nil {
		return nil, err
	}
	keys := make([]*btcec.PrivateKey, n)
	peers := make([]*btcec.PublicKey, n)
	for i := range n {
		keys[i], _ = btcec.PrivKeyFromBytes(scalars[i])
		_, peers[i] = btcec.PrivKeyFromBytes(peerScalars[i])
	}
	return func(i int) error {
		if len(btcec.GenerateSharedSecret(keys[i%n], peers[i%n])) != 32 {
			return fmt.Errorf("secp256k1: unexpected shared secret length")
		}
		return nil
	}, nil
}

func setupEd25519(env Env, n int) (Op, error) {
	seeds, err := fill(env.Rand, n, 64)
	if err != nil {
		return nil, err
	}
	peerSeeds, err := fill(env.Rand, n, 64)
	if err != nil {
		return nil, err
	}
	scalars := make([]*edwards25519.Scalar, n)
	peers := make([]*edwards25519.Point, n)
	for i := range n {
		if scalars[i], err = edwards25519.NewScalar().SetUniformBytes(seeds[i]); err != nil {
			return nil, err
		}
		s, err := edwards25519.NewScalar().SetUniformBytes(peerSeeds[i])
		if err != nil {
			return nil, err
		}
		peers[i] = new(edwards25519.Point).ScalarBaseMult(s)
	}
	return func(i int) error {
		_ = new(edwards25519.Point).ScalarMult(scalars[i%n], peers[i%n])
		return nil
	}, nil
}
