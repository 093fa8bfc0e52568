package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/smartcontractkit/ecdh128/internal/logging"
)

// Loop runs p back to back until ctx is done, e.g. while an external meter records energy consumption. Fixtures
// are reused cyclically. Progress is logged every interval (disabled if interval <= 0). It returns the number of
// completed iterations; cancellation of ctx is not reported as an error.
func (r *Runner) Loop(ctx context.Context, p Primitive, interval time.Duration) (uint64, error) {
	op, err := p.Setup(Env{Rand: r.rand, Metrics: r.metrics}, r.iterations)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare %s fixtures: %w", p.Name, err)
	}

	var progress <-chan time.Time
	if interval > 0 {
		ticker := r.clock.NewTicker(interval)
		defer ticker.Stop()
		progress = ticker.C()
	}

	log := r.logger.With(logging.Fields{"primitive": p.Name})
	log.Info("looping benchmark", nil)
	var done, last uint64
	for i := 0; ; i = (i + 1) % r.iterations {
		select {
		case <-ctx.Done():
			log.Info("loop stopped", logging.Fields{"iterations": done})
			return done, nil
		case <-progress:
			log.Info("loop progress", logging.Fields{
				"iterations": done,
				"rate":       float64(done-last) / interval.Seconds(),
			})
			last = done
		default:
		}
		if err := op(i); err != nil {
			return done, fmt.Errorf("%s iteration %d failed: %w", p.Name, done, err)
		}
		done++
	}
}
