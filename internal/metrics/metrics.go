package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ecdh"

// Metrics collects counters and latencies of the key exchange engine. A nil *Metrics is valid and records nothing.
type Metrics struct {
	keyPairsGenerated  prometheus.Counter
	sharedSecrets      prometheus.Counter
	derivationFailures *prometheus.CounterVec
	pointsValidated    *prometheus.CounterVec
	scalarMultDuration prometheus.Histogram
}

// New creates the engine's collectors and registers them with the given registerer. Passing a nil registerer
// returns a nil *Metrics, which silently drops all observations.
func New(registerer prometheus.Registerer, curve string) (*Metrics, error) {
	if registerer == nil {
		return nil, nil
	}
	labels := prometheus.Labels{"curve": curve}

	m := &Metrics{
		keyPairsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "keypairs_generated_total",
			Help:        "Number of key pairs generated.",
			ConstLabels: labels,
		}),
		sharedSecrets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "shared_secrets_derived_total",
			Help:        "Number of shared secrets successfully derived.",
			ConstLabels: labels,
		}),
		derivationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "derivation_failures_total",
			Help:        "Number of failed key or shared secret derivations, by reason.",
			ConstLabels: labels,
		}, []string{"reason"}),
		pointsValidated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "points_validated_total",
			Help:        "Number of points checked by the point validator, by outcome.",
			ConstLabels: labels,
		}, []string{"valid"}),
		scalarMultDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "scalar_mult_duration_seconds",
			Help:        "Duration of scalar multiplications.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(1e-6, 2, 16),
		}),
	}

	for _, c := range []prometheus.Collector{
		m.keyPairsGenerated, m.sharedSecrets, m.derivationFailures, m.pointsValidated, m.scalarMultDuration,
	} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) KeyPairGenerated() {
	if m == nil {
		return
	}
	m.keyPairsGenerated.Inc()
}

func (m *Metrics) SharedSecretDerived() {
	if m == nil {
		return
	}
	m.sharedSecrets.Inc()
}

func (m *Metrics) DerivationFailed(reason string) {
	if m == nil {
		return
	}
	m.derivationFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) PointValidated(valid bool) {
	if m == nil {
		return
	}
	if valid {
		m.pointsValidated.WithLabelValues("true").Inc()
	} else {
		m.pointsValidated.WithLabelValues("false").Inc()
	}
}

// ObserveScalarMult records the time elapsed since start.
func (m *Metrics) ObserveScalarMult(start time.Time) {
	if m == nil {
		return
	}
	m.scalarMultDuration.Observe(time.Since(start).Seconds())
}
