package integrators

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
)

const (
	sunMass     = 1.9885e30
	earthMass   = 5.972e24
	jupiterMass = 1.898e27
	au          = 1.495978707e11
)

func mk(pos, vel r3.Vec, mass float64) body.Body {
	return body.New("", pos, vel, mass, 1, body.Gray)
}

func finite(v r3.Vec) bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func momentum(bodies []body.Body) (total r3.Vec, scale float64) {
	for _, b := range bodies {
		p := b.Momentum()
		total = r3.Add(total, p)
		scale += r3.Norm(p)
	}
	return total, scale
}

func TestGravityFreeBodyMovesWithStartVelocity(t *testing.T) {
	bodies := []body.Body{mk(r3.Vec{X: 1}, r3.Vec{X: 2, Y: -3}, 1)}
	NewGravity().Step(bodies, 1, 0.5)

	want := r3.Vec{X: 2, Y: -1.5}
	if bodies[0].Position != want {
		t.Errorf("position %v, want %v", bodies[0].Position, want)
	}
	if bodies[0].Velocity != (r3.Vec{X: 2, Y: -3}) {
		t.Errorf("lone body velocity changed: %v", bodies[0].Velocity)
	}
}

func TestGravityKickUsesAdvancedPosition(t *testing.T) {
	bodies := []body.Body{
		mk(r3.Vec{}, r3.Vec{}, sunMass),
		mk(r3.Vec{X: au}, r3.Vec{Z: au / 10}, earthMass),
	}
	dt := 1.0
	NewGravity().Step(bodies, 2, dt)

	// Earth is pulled from (1, 0, 0.1) AU, not from its starting point.
	r := au * math.Sqrt(1.01)
	want := -body.G * sunMass / (r * r) * (au / r) * dt
	got := bodies[1].Velocity.X
	if math.Abs(got-want) > 1e-9*math.Abs(want) {
		t.Errorf("kick %g, want %g", got, want)
	}
	stale := -body.G * sunMass / (au * au) * dt
	if math.Abs(got-stale) < 1e-3*math.Abs(stale) {
		t.Errorf("kick %g matches the pre-drift position", got)
	}
}

func TestGravityZeroDistanceIsSafe(t *testing.T) {
	p := r3.Vec{X: 3, Y: 4, Z: 5}
	bodies := []body.Body{
		mk(p, r3.Vec{}, sunMass),
		mk(p, r3.Vec{}, earthMass),
		mk(p, r3.Vec{}, 1e12),
	}
	NewGravity().Step(bodies, 2, 3600)

	for i, b := range bodies {
		if !finite(b.Position) || !finite(b.Velocity) {
			t.Errorf("body %d not finite: pos=%v vel=%v", i, b.Position, b.Velocity)
		}
		if b.Velocity != (r3.Vec{}) {
			t.Errorf("body %d picked up velocity %v from a coincident body", i, b.Velocity)
		}
	}
}

func TestGravityAnchorTracksHeaviestPrimary(t *testing.T) {
	bodies := []body.Body{
		mk(r3.Vec{}, r3.Vec{}, sunMass),
		mk(r3.Vec{X: 10 * au}, r3.Vec{}, earthMass),
		mk(r3.Vec{Z: 10 * au}, r3.Vec{}, jupiterMass),
		mk(r3.Vec{X: au}, r3.Vec{}, 1e12),
	}
	g := NewGravity()
	if g.Anchor() != -1 {
		t.Fatalf("anchor before first step = %d, want -1", g.Anchor())
	}

	g.Step(bodies, 3, 1)
	if g.Anchor() != 0 {
		t.Fatalf("anchor = %d, want 0", g.Anchor())
	}

	bodies[2].Mass = 10 * sunMass
	bodies[3].Velocity = r3.Vec{}
	g.Step(bodies, 3, 1)
	if g.Anchor() != 2 {
		t.Fatalf("anchor after mass change = %d, want 2", g.Anchor())
	}

	toAnchor := r3.Unit(r3.Sub(bodies[2].Position, bodies[3].Position))
	if r3.Dot(r3.Unit(bodies[3].Velocity), toAnchor) < 0.999 {
		t.Errorf("field body not pulled toward new anchor: vel=%v", bodies[3].Velocity)
	}
}

func TestGravityFieldDoesNotPerturbPrimaries(t *testing.T) {
	primaries := []body.Body{
		mk(r3.Vec{}, r3.Vec{}, sunMass),
		mk(r3.Vec{X: au}, r3.Vec{Z: 29780}, earthMass),
	}
	withField := append([]body.Body{}, primaries...)
	withField = append(withField, mk(r3.Vec{X: 1.0001 * au}, r3.Vec{}, 1e20))

	NewGravity().Step(primaries, 2, 3600)
	NewGravity().Step(withField, 2, 3600)

	for i := range primaries {
		if primaries[i].Position != withField[i].Position || primaries[i].Velocity != withField[i].Velocity {
			t.Errorf("primary %d affected by a field body", i)
		}
	}
}

func TestGravityMomentumDrift(t *testing.T) {
	bodies := []body.Body{
		mk(r3.Vec{}, r3.Vec{}, sunMass),
		mk(r3.Vec{X: au}, r3.Vec{Z: 29780}, earthMass),
		mk(r3.Vec{X: -5.2 * au}, r3.Vec{Z: -13070}, jupiterMass),
	}
	p0, scale := momentum(bodies)

	g := NewGravity()
	for i := 0; i < 10000; i++ {
		g.Step(bodies, 3, 3600)
	}

	p, _ := momentum(bodies)
	if drift := r3.Norm(r3.Sub(p, p0)) / scale; drift > 1e-3 {
		t.Errorf("momentum drift %g over 1e4 steps", drift)
	}
}
