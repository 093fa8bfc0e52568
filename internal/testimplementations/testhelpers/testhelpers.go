package testhelpers

import (
	"io"
	"testing"

	"github.com/smartcontractkit/ecdh128/ecdh"
	"github.com/stretchr/testify/require"
)

// NewKeyExchanges creates n engines with keys drawn from rand, returning the engines and their public keys.
func NewKeyExchanges(t *testing.T, n int, rand io.Reader) ([]*ecdh.KeyExchange, []ecdh.PublicKey) {
	t.Helper()
	kxs := make([]*ecdh.KeyExchange, n)
	pks := make([]ecdh.PublicKey, n)
	for i := 0; i < n; i++ {
		kx, err := ecdh.New(ecdh.WithRand(rand))
		require.NoError(t, err)
		kxs[i] = kx
		pks[i] = kx.PublicKey()
	}
	return kxs, pks
}
