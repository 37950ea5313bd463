// Package sim drives headless runs: it builds a simulation from a
// configuration, steps it to the end, samples the primaries into a trace and
// reduces the run to metrics.
package sim

import (
	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/orbital"
	"github.com/san-kum/orbsim/internal/storage"
)

// Observer is called on every sample with a snapshot of the population. The
// slice is reused after the call returns.
type Observer interface {
	OnSample(bodies []body.Body, primary int, t float64)
}

type Result struct {
	Mode        orbital.Mode
	Seed        int64
	TimeStep    float64
	StepsTaken  int
	FieldBodies int
	FinalDate   string
	Trace       *storage.Trace
	Metrics     map[string]float64
	// AnchorConsistent mirrors orbital.Sim.AnchorConsistent for the run.
	AnchorConsistent bool
}

// Metadata converts the result into the record kept by the run store.
func (r *Result) Metadata() storage.RunMetadata {
	return storage.RunMetadata{
		Mode:        r.Mode.String(),
		Seed:        r.Seed,
		TimeStep:    r.TimeStep,
		Steps:       r.StepsTaken,
		FieldBodies: r.FieldBodies,
		FinalDate:   r.FinalDate,
		Metrics:     r.Metrics,
	}
}
