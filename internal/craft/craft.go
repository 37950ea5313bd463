// Package craft steers the player ship from directional key input.
package craft

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
)

const (
	DefaultMaxTilt     = 15.0 // degrees
	DefaultTiltRate    = 50.0 // degrees per second
	DefaultRecoverRate = 30.0 // degrees per second
)

// Input is the set of directional keys held during a step.
type Input struct {
	Up, Down, Left, Right bool
}

// Controller tilts the ship toward held directions and levels it out when an
// axis is released. Pitch is Orientation.X, roll is Orientation.Z.
type Controller struct {
	MaxTilt     float64
	TiltRate    float64
	RecoverRate float64
}

func NewController() *Controller {
	return &Controller{
		MaxTilt:     DefaultMaxTilt,
		TiltRate:    DefaultTiltRate,
		RecoverRate: DefaultRecoverRate,
	}
}

// Update turns the ship for dt seconds of input. Down and Right raise pitch
// and roll, Up and Left lower them. Yaw and position are left alone.
func (c *Controller) Update(ship *body.Ship, in Input, dt float64) {
	if ship == nil {
		return
	}

	o := ship.Orientation
	o.X = c.axis(o.X, in.Down, in.Up, dt)
	o.Z = c.axis(o.Z, in.Right, in.Left, dt)
	ship.Orientation = o
}

// Coast moves the ship along its velocity for dt seconds of simulated time.
func Coast(ship *body.Ship, dt float64) {
	if ship == nil {
		return
	}
	ship.Position = r3.Add(ship.Position, r3.Scale(dt, ship.Velocity))
}

func (c *Controller) axis(tilt float64, plus, minus bool, dt float64) float64 {
	if plus {
		tilt += c.TiltRate * dt
	}
	if minus {
		tilt -= c.TiltRate * dt
	}
	tilt = clamp(tilt, -c.MaxTilt, c.MaxTilt)

	if plus || minus {
		return tilt
	}

	step := c.RecoverRate * dt
	switch {
	case tilt > step:
		return tilt - step
	case tilt < -step:
		return tilt + step
	default:
		return 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
