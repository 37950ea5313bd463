package integrators

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
)

// Gravity integrates Newtonian gravitation with semi-implicit Euler.
//
// Each body, in index order, first moves with its velocity from the start of
// the step and then takes a velocity kick from the acceleration at its new
// position. Primary bodies feel every other primary; field bodies feel only
// the heaviest primary, which is found anew on every step.
type Gravity struct {
	G float64

	anchor int
}

func NewGravity() *Gravity {
	return &Gravity{G: body.G, anchor: -1}
}

// Anchor is the index of the heaviest primary seen by the last step, or -1
// before the first step or when there are no primaries.
func (g *Gravity) Anchor() int { return g.anchor }

func (g *Gravity) Step(bodies []body.Body, primary int, dt float64) {
	primary = clampPrimary(primary, len(bodies))

	anchor := -1
	biggest := 0.0

	for i := range bodies {
		b := &bodies[i]
		b.Position = r3.Add(b.Position, r3.Scale(dt, b.Velocity))

		var acc r3.Vec
		if i < primary {
			if anchor == -1 || b.Mass > biggest {
				anchor, biggest = i, b.Mass
			}
			for j := 0; j < primary; j++ {
				if j != i {
					acc = r3.Add(acc, g.pull(b.Position, &bodies[j]))
				}
			}
		} else if anchor >= 0 {
			acc = g.pull(b.Position, &bodies[anchor])
		}

		b.Velocity = r3.Add(b.Velocity, r3.Scale(dt, acc))
	}

	g.anchor = anchor
}

// pull is the acceleration src imposes at the point at. Coincident points
// contribute nothing.
func (g *Gravity) pull(at r3.Vec, src *body.Body) r3.Vec {
	d := r3.Sub(at, src.Position)
	r := r3.Norm(d)
	if r == 0 {
		return r3.Vec{}
	}
	return r3.Scale(-g.G*src.Mass/(r*r*r), d)
}
