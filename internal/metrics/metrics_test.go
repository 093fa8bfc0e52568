package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m, err := New(reg, "secp128r1")
	require.NoError(t, err)

	m.KeyPairGenerated()
	m.KeyPairGenerated()
	m.SharedSecretDerived()
	m.DerivationFailed("point_at_infinity")
	m.PointValidated(true)
	m.PointValidated(false)
	m.PointValidated(false)
	m.ObserveScalarMult(time.Now())

	require.Equal(t, 2.0, testutil.ToFloat64(m.keyPairsGenerated))
	require.Equal(t, 1.0, testutil.ToFloat64(m.sharedSecrets))
	require.Equal(t, 1.0, testutil.ToFloat64(m.derivationFailures.WithLabelValues("point_at_infinity")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.pointsValidated.WithLabelValues("false")))

	count, err := testutil.GatherAndCount(reg, "ecdh_scalar_mult_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestDuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg, "secp128r1")
	require.NoError(t, err)
	_, err = New(reg, "secp128r1")
	require.Error(t, err)
}

func TestNilMetricsIsNoop(t *testing.T) {
	m, err := New(nil, "secp128r1")
	require.NoError(t, err)
	require.Nil(t, m)
	require.NotPanics(t, func() {
		m.KeyPairGenerated()
		m.SharedSecretDerived()
		m.DerivationFailed("x")
		m.PointValidated(true)
		m.ObserveScalarMult(time.Now())
	})
}
