package metrics

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
)

// MomentumDrift is the largest change in total primary momentum seen so far,
// relative to the sum of the primaries' momentum magnitudes at the first
// observation.
type MomentumDrift struct {
	name     string
	initial  r3.Vec
	scale    float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(bodies []body.Body, primary int, t float64) {
	var total r3.Vec
	scale := 0.0
	for _, b := range bodies[:min(primary, len(bodies))] {
		p := b.Momentum()
		total = r3.Add(total, p)
		scale += r3.Norm(p)
	}

	if m.samples == 0 {
		m.initial, m.scale = total, scale
	}
	m.samples++

	if m.scale != 0 {
		m.maxDrift = max(m.maxDrift, r3.Norm(r3.Sub(total, m.initial))/m.scale)
	}
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = r3.Vec{}
	m.scale = 0
	m.maxDrift = 0
	m.samples = 0
}
