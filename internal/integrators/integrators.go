// Package integrators advances a body population by one fixed time step
// under a chosen force law.
//
// The population is split in two: the first primary bodies of the slice are
// the catalog (star and planets), the rest is the generated field. Both
// integrators mutate the slice in place.
package integrators

import "github.com/san-kum/orbsim/internal/body"

// Stepper advances bodies by dt seconds.
type Stepper interface {
	Step(bodies []body.Body, primary int, dt float64)
}

func clampPrimary(primary, n int) int {
	if primary < 0 {
		return 0
	}
	if primary > n {
		return n
	}
	return primary
}
