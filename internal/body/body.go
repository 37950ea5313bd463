// Package body defines the physical objects of an orbital simulation and the
// static catalog the simulation is seeded from.
package body

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"
)

// G is the gravitational constant in N·m²/kg².
const G = 6.6743e-11

// Body is one massive object. Position and Velocity are mutated by the
// integrators; the initial position is fixed at construction and anchors the
// spring model.
type Body struct {
	Name     string
	Position r3.Vec
	Velocity r3.Vec
	Mass     float64
	Radius   float64
	Color    color.RGBA

	initial r3.Vec
}

// New returns a body whose initial position is its current position.
func New(name string, pos, vel r3.Vec, mass, radius float64, c color.RGBA) Body {
	return Body{
		Name:     name,
		Position: pos,
		Velocity: vel,
		Mass:     mass,
		Radius:   radius,
		Color:    c,
		initial:  pos,
	}
}

func (b Body) InitialPosition() r3.Vec { return b.initial }

// Momentum returns m·v.
func (b Body) Momentum() r3.Vec { return r3.Scale(b.Mass, b.Velocity) }

// KineticEnergy returns ½·m·|v|².
func (b Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * r3.Norm2(b.Velocity)
}

// Ship is the player craft. It is steered kinematically and never takes part
// in the force models. Orientation holds pitch (X), yaw (Y) and roll (Z) in
// degrees.
type Ship struct {
	Position    r3.Vec
	Velocity    r3.Vec
	Orientation r3.Vec
	Mass        float64

	initial r3.Vec
}

func NewShip(pos, vel r3.Vec, mass float64) *Ship {
	return &Ship{
		Position: pos,
		Velocity: vel,
		Mass:     mass,
		initial:  pos,
	}
}

func (s *Ship) InitialPosition() r3.Vec { return s.initial }
