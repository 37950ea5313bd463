// Package metrics observes a body population between steps and reduces it to
// a single figure of merit per run.
package metrics

import "github.com/san-kum/orbsim/internal/body"

// Metric watches successive snapshots of a population. primary is the number
// of catalog bodies at the front of bodies.
type Metric interface {
	Name() string
	Observe(bodies []body.Body, primary int, t float64)
	Value() float64
	Reset()
}

// Collect returns the current value of every metric keyed by name.
func Collect(ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
