package bench

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/smartcontractkit/ecdh128/ecdh"
	"github.com/smartcontractkit/ecdh128/internal/logging"
)

const (
	DefaultIterations = 10000
	DefaultWarmup     = 100
)

// Sample is a single latency measurement, one row of the latency CSV.
type Sample struct {
	Primitive string
	Iteration int
	Latency   time.Duration
}

type Runner struct {
	iterations int
	warmup     int
	rand       io.Reader
	clock      clock.Clock
	logger     *logging.Logger
	metrics    *ecdh.Metrics
}

type RunnerOption func(*Runner)

func WithIterations(n int) RunnerOption { return func(r *Runner) { r.iterations = n } }
func WithWarmup(n int) RunnerOption     { return func(r *Runner) { r.warmup = n } }
func WithRand(rand io.Reader) RunnerOption {
	return func(r *Runner) { r.rand = rand }
}
func WithClock(c clock.Clock) RunnerOption {
	return func(r *Runner) { r.clock = c }
}
func WithLogger(l *logging.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// WithMetrics makes the engine operations of the benchmarked primitives report to m.
func WithMetrics(m *ecdh.Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

func NewRunner(opts ...RunnerOption) (*Runner, error) {
	r := &Runner{
		iterations: DefaultIterations,
		warmup:     DefaultWarmup,
		rand:       rand.Reader,
		clock:      clock.NewClock(),
		logger:     logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.iterations <= 0 {
		return nil, fmt.Errorf("invalid number of iterations: %d, must be positive", r.iterations)
	}
	if r.warmup < 0 {
		return nil, fmt.Errorf("invalid number of warmup iterations: %d, must not be negative", r.warmup)
	}
	return r, nil
}

// Run benchmarks p: fixtures are prepared, the warmup iterations are executed unmeasured, then each measured
// iteration is timed individually and passed to record.
func (r *Runner) Run(p Primitive, record func(Sample) error) error {
	log := r.logger.With(logging.Fields{"primitive": p.Name})
	log.Info("running benchmark", logging.Fields{"iterations": r.iterations})

	op, err := p.Setup(Env{Rand: r.rand, Metrics: r.metrics}, r.iterations)
	if err != nil {
		return fmt.Errorf("failed to prepare %s fixtures: %w", p.Name, err)
	}

	for i := 0; i < r.warmup; i++ {
		if err := op(i); err != nil {
			return fmt.Errorf("%s warmup iteration %d failed: %w", p.Name, i, err)
		}
	}

	for i := 0; i < r.iterations; i++ {
		start := r.clock.Now()
		err := op(i)
		elapsed := r.clock.Since(start)
		if err != nil {
			return fmt.Errorf("%s iteration %d failed: %w", p.Name, i, err)
		}
		if err := record(Sample{p.Name, i, elapsed}); err != nil {
			return err
		}
	}
	return nil
}

// RunAll benchmarks the given primitives in order, writing all samples to w.
func (r *Runner) RunAll(primitives []Primitive, w *CSVWriter) error {
	for _, p := range primitives {
		if err := r.Run(p, w.Write); err != nil {
			return err
		}
	}
	return w.Flush()
}
