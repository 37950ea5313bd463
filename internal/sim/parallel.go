package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/metrics"
)

// Ensemble runs the same configuration with consecutive seeds. Each run owns
// its simulation; runs proceed concurrently but every simulation is stepped
// by a single goroutine.
type Ensemble struct {
	cfg        config.Config
	numRuns    int
	seedStart  int64
	newMetrics func() []metrics.Metric

	// Workers bounds the number of concurrent runs. Zero means GOMAXPROCS.
	Workers int
}

// NewEnsemble prepares numRuns runs seeded seedStart, seedStart+1, ...
// newMetrics is called once per run since metrics hold per-run state.
func NewEnsemble(cfg *config.Config, numRuns int, seedStart int64, newMetrics func() []metrics.Metric) *Ensemble {
	return &Ensemble{cfg: *cfg, numRuns: numRuns, seedStart: seedStart, newMetrics: newMetrics}
}

// Run returns one result per seed, in seed order. The first failing run
// cancels the others.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	frames := NewFramePool(len(body.SolarSystem) + e.cfg.FieldBodies)

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			cfgCopy := e.cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			r := New(&cfgCopy)
			r.frames = frames
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					r.AddMetric(m)
				}
			}

			res, err := r.Run(ctx)
			results[idx] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
