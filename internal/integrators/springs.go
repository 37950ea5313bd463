package integrators

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
)

const (
	DefaultPrimaryStiffness = 5e13 // N/m
	DefaultFieldStiffness   = 5e-2 // N/m
)

// Springs ties every body to the anchor (index 0) with a Hookean spring whose
// rest length is the distance from the body's initial position to the
// anchor's current position.
//
// All velocities are updated against the positions at the start of the step
// before any body moves.
type Springs struct {
	PrimaryStiffness float64
	FieldStiffness   float64
}

func NewSprings() *Springs {
	return &Springs{
		PrimaryStiffness: DefaultPrimaryStiffness,
		FieldStiffness:   DefaultFieldStiffness,
	}
}

func (s *Springs) Step(bodies []body.Body, primary int, dt float64) {
	if len(bodies) == 0 {
		return
	}
	primary = clampPrimary(primary, len(bodies))
	anchor := bodies[0].Position

	for i := 1; i < len(bodies); i++ {
		b := &bodies[i]

		dist := r3.Sub(b.Position, anchor)
		d := r3.Norm(dist)
		if d == 0 || b.Mass == 0 {
			continue
		}
		rest := r3.Norm(r3.Sub(b.InitialPosition(), anchor))

		k := s.FieldStiffness
		if i < primary {
			k = s.PrimaryStiffness
		}

		a := -(d - rest) * k / b.Mass
		b.Velocity = r3.Add(b.Velocity, r3.Scale(a*dt/d, dist))
	}

	for i := range bodies {
		b := &bodies[i]
		b.Position = r3.Add(b.Position, r3.Scale(dt, b.Velocity))
	}
}
