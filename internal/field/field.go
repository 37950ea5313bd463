// Package field places the secondary population of an orbital simulation:
// a disk of small bodies around the anchor mass whose density is biased
// toward the anchor by a logit transform of the radial coordinate.
package field

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
)

const (
	DefaultEpsilon    = 1e-3
	DefaultDensity    = 4.0
	DefaultMeanRadius = 4e11 // m
	DefaultMass       = 1e12 // kg, about a billion tons
	DefaultRadius     = 2e3  // m

	minSpeedFactor = 0.6
	maxSpeedFactor = 1.2
	maxVerticalVel = 1e2 // m/s
)

// Generator samples field bodies. It is not safe for concurrent use.
type Generator struct {
	Epsilon    float64
	Density    float64
	MeanRadius float64
	Mass       float64
	Radius     float64

	rng *rand.Rand
}

// New returns a generator with the default disk parameters seeded by seed.
// The same seed yields the same sequence of bodies.
func New(seed uint64) *Generator {
	return &Generator{
		Epsilon:    DefaultEpsilon,
		Density:    DefaultDensity,
		MeanRadius: DefaultMeanRadius,
		Mass:       DefaultMass,
		Radius:     DefaultRadius,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

func (g *Generator) uniform(min, max float64) float64 {
	return min + (max-min)*g.rng.Float64()
}

// radius draws the distance from the anchor. A zero radius (l == 0) is
// redrawn.
func (g *Generator) radius() float64 {
	for {
		x := g.uniform(g.Epsilon, 1-g.Epsilon)
		l := math.Log(x) - math.Log(1-x) + 1
		if r := g.Density * g.MeanRadius * math.Sqrt(math.Abs(l)); r > 0 {
			return r
		}
	}
}

// Sample returns one field body in a perturbed circular orbit around an
// anchor of mass anchorMass sitting at the origin.
func (g *Generator) Sample(anchorMass float64) body.Body {
	r := g.radius()
	phi := g.uniform(0, 2*math.Pi)
	sin, cos := math.Sincos(phi)

	v := math.Sqrt(body.G*anchorMass/r) * g.uniform(minSpeedFactor, maxSpeedFactor)
	vy := g.uniform(-maxVerticalVel, maxVerticalVel)

	pos := r3.Vec{X: r * cos, Y: 0, Z: r * sin}
	vel := r3.Vec{X: -v * sin, Y: vy, Z: v * cos}
	return body.New("", pos, vel, g.Mass, g.Radius, body.Gray)
}

// Fill samples len(dst) bodies into dst.
func (g *Generator) Fill(dst []body.Body, anchorMass float64) {
	for i := range dst {
		dst[i] = g.Sample(anchorMass)
	}
}
