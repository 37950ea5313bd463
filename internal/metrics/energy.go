package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
)

// Energy returns kinetic plus gravitational potential energy of the primary
// population. Coincident pairs are left out of the potential.
func Energy(bodies []body.Body, primary int) float64 {
	ps := bodies[:min(primary, len(bodies))]
	ke, pe := 0.0, 0.0
	for i, a := range ps {
		ke += a.KineticEnergy()
		for _, b := range ps[i+1:] {
			if r := r3.Norm(r3.Sub(a.Position, b.Position)); r > 0 {
				pe -= body.G * a.Mass * b.Mass / r
			}
		}
	}
	return ke + pe
}

// EnergyDrift is the largest relative change of primary energy seen so far.
// Only meaningful under the gravity model.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(bodies []body.Body, primary int, t float64) {
	energy := Energy(bodies, primary)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
