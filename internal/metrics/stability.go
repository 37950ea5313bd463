package metrics

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
)

// Containment is the fraction of field bodies within radius of the anchor
// (index 0) at the latest observation. It reports 1 before any observation
// and for populations without a field.
type Containment struct {
	name   string
	radius float64
	value  float64
}

func NewContainment(radius float64) *Containment {
	return &Containment{
		name:   "containment",
		radius: radius,
		value:  1,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(bodies []body.Body, primary int, t float64) {
	if primary >= len(bodies) || len(bodies) == 0 {
		c.value = 1
		return
	}
	anchor := bodies[0].Position
	inside := 0
	for _, b := range bodies[primary:] {
		if r3.Norm(r3.Sub(b.Position, anchor)) <= c.radius {
			inside++
		}
	}
	c.value = float64(inside) / float64(len(bodies)-primary)
}

func (c *Containment) Value() float64 {
	return c.value
}

func (c *Containment) Reset() {
	c.value = 1
}
