package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/orbital"
	"github.com/san-kum/orbsim/internal/storage"
)

type Runner struct {
	cfg       config.Config
	metrics   []metrics.Metric
	observers []Observer
	frames    *FramePool
}

// New returns a runner for cfg. The config is copied.
func New(cfg *config.Config) *Runner {
	return &Runner{cfg: *cfg}
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)     { r.observers = append(r.observers, o) }

// Run executes the configured number of steps. The initial state and every
// SampleEvery-th step are sampled, as is the final step. On cancellation the
// partial result is returned with the context error.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	cfg := r.cfg
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, err := cfg.ForceModel()
	if err != nil {
		return nil, err
	}

	s, err := orbital.New(cfg.TimeStep, cfg.Options()...)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	names := make([]string, s.Primary())
	for i := range names {
		names[i] = s.Body(i).Name
	}

	result := &Result{
		Mode:             mode,
		Seed:             cfg.Seed,
		TimeStep:         cfg.TimeStep,
		FieldBodies:      s.Len() - s.Primary(),
		Trace:            storage.NewTrace(names),
		Metrics:          make(map[string]float64),
		AnchorConsistent: s.AnchorConsistent(),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	frames := r.frames
	if frames == nil {
		frames = NewFramePool(s.Len())
	}
	frame := frames.Get()
	defer func() { frames.Put(frame) }()

	sample := func() {
		frame = s.Bodies(frame[:0])
		t := s.TotalTime()
		result.Trace.Record(t, frame)
		for _, m := range r.metrics {
			m.Observe(frame, s.Primary(), t)
		}
		for _, obs := range r.observers {
			obs.OnSample(frame, s.Primary(), t)
		}
	}
	finish := func() {
		result.StepsTaken = s.Steps()
		result.FinalDate = s.Date()
		for _, m := range r.metrics {
			result.Metrics[m.Name()] = m.Value()
		}
	}

	sample()
	steps := cfg.Steps()
	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			finish()
			return result, ctx.Err()
		default:
		}

		if err := s.Step(mode); err != nil {
			return nil, err
		}
		if i%cfg.SampleEvery != 0 && i != steps {
			continue
		}
		if err := s.Validate(); err != nil {
			finish()
			return result, fmt.Errorf("simulation diverged: %w", err)
		}
		sample()
	}

	finish()
	return result, nil
}
