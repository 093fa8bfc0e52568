package ecdh

import (
	"crypto/rand"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/smartcontractkit/ecdh128/internal/logging"
	"github.com/smartcontractkit/ecdh128/internal/metrics"
)

// Metrics holds the engine's prometheus collectors. Create one per registerer with NewMetrics and share it between
// engines. A nil *Metrics records nothing.
type Metrics = metrics.Metrics

// NewMetrics registers the engine's collectors with registerer.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	return metrics.New(registerer, curveName)
}

type Option func(*config)

type config struct {
	rand    io.Reader
	logger  *logging.Logger
	metrics *Metrics
}

var defaultLogger = logging.NewLogger(logrus.InfoLevel)

func newConfig(opts []Option) *config {
	cfg := &config{rand: rand.Reader, logger: defaultLogger}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithRand sets the source of randomness used for private key generation. The default is crypto/rand.Reader. The
// reader must be safe for concurrent use if engines are created in parallel.
func WithRand(r io.Reader) Option {
	return func(c *config) {
		if r != nil {
			c.rand = r
		}
	}
}

// WithLogger makes the engine log through the given logrus logger. Secret values are never logged.
func WithLogger(l *logrus.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = logging.Wrap(l)
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}
