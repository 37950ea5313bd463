package config

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
)

// New builds the configured ship. A ship with no position configured starts
// next to Earth.
func (s ShipConfig) New() *body.Ship {
	pos := r3.Vec{X: s.Position[0], Y: s.Position[1], Z: s.Position[2]}
	if pos == (r3.Vec{}) {
		if i := body.Find(body.SolarSystem, "Earth"); i >= 0 {
			earth := body.SolarSystem[i].Position
			pos = r3.Add(earth, r3.Scale(0.05, earth))
		}
	}
	mass := s.Mass
	if mass <= 0 {
		mass = DefaultShipMass
	}
	return body.NewShip(pos, r3.Vec{X: s.Velocity[0], Y: s.Velocity[1], Z: s.Velocity[2]}, mass)
}
