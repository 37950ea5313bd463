package orbital

import (
	"fmt"
	"math"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/craft"
	"github.com/san-kum/orbsim/internal/field"
	"github.com/san-kum/orbsim/internal/integrators"
)

const DefaultFieldBodies = 1000

type options struct {
	catalog     []body.Entry
	fieldBodies int
	seed        uint64
	ship        *body.Ship
	gravity     *integrators.Gravity
	springs     *integrators.Springs
	craft       *craft.Controller
}

// Option configures New.
type Option func(*options)

// WithCatalog replaces the solar system catalog. Entry 0 is the anchor.
func WithCatalog(catalog []body.Entry) Option {
	return func(o *options) { o.catalog = catalog }
}

// WithFieldBodies sets the number of generated field bodies.
func WithFieldBodies(n int) Option {
	return func(o *options) { o.fieldBodies = n }
}

// WithSeed seeds the field generator.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithShip adds a player ship. The simulation takes ownership of it.
func WithShip(ship *body.Ship) Option {
	return func(o *options) { o.ship = ship }
}

// WithGravity overrides the gravity integrator, e.g. to change G. New copies
// it, so one value can configure many simulations.
func WithGravity(g *integrators.Gravity) Option {
	return func(o *options) { o.gravity = g }
}

// WithSprings overrides the spring integrator stiffnesses.
func WithSprings(s *integrators.Springs) Option {
	return func(o *options) { o.springs = s }
}

// WithCraft overrides the ship controller limits.
func WithCraft(c *craft.Controller) Option {
	return func(o *options) { o.craft = c }
}

// Sim is the simulation state. See the package documentation for index
// conventions.
type Sim struct {
	timeStep  float64
	totalTime float64
	steps     int

	bodies   []body.Body
	primary  int
	ship     *body.Ship
	anchorOK bool
	closed   bool

	gravity *integrators.Gravity
	springs *integrators.Springs
	craft   *craft.Controller
}

// New builds a simulation: the catalog is copied verbatim, then the field is
// sampled around the mass of catalog entry 0. It fails, returning no
// simulation, when the arguments cannot produce a usable one.
func New(timeStep float64, opts ...Option) (*Sim, error) {
	if !(timeStep > 0) || math.IsInf(timeStep, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidTimeStep, timeStep)
	}

	o := options{
		catalog:     body.SolarSystem,
		fieldBodies: DefaultFieldBodies,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.fieldBodies < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFieldSize, o.fieldBodies)
	}
	if len(o.catalog) == 0 && o.fieldBodies > 0 {
		return nil, ErrNoAnchor
	}
	gravity := integrators.NewGravity()
	if o.gravity != nil {
		gravity.G = o.gravity.G
	}
	springs := integrators.NewSprings()
	if o.springs != nil {
		*springs = *o.springs
	}
	if o.craft == nil {
		o.craft = craft.NewController()
	}

	primary := len(o.catalog)
	bodies := make([]body.Body, primary+o.fieldBodies)
	for i, e := range o.catalog {
		bodies[i] = e.Body()
	}
	if o.fieldBodies > 0 {
		field.New(o.seed).Fill(bodies[primary:], bodies[0].Mass)
	}

	return &Sim{
		timeStep: timeStep,
		bodies:   bodies,
		primary:  primary,
		ship:     o.ship,
		anchorOK: primary == 0 || body.Heaviest(o.catalog) == 0,
		gravity:  gravity,
		springs:  springs,
		craft:    o.craft,
	}, nil
}

// Close releases the bodies and the ship. Further steps return ErrClosed.
func (s *Sim) Close() {
	s.bodies = nil
	s.ship = nil
	s.closed = true
}

// Step advances the clock and every body by one time step under mode.
// An unknown mode is rejected before anything changes.
func (s *Sim) Step(mode Mode) error {
	if s.closed {
		return ErrClosed
	}

	var stepper integrators.Stepper
	switch mode {
	case Gravity:
		stepper = s.gravity
	case Springs:
		stepper = s.springs
	default:
		return fmt.Errorf("%w: %v", ErrUnknownMode, mode)
	}

	s.totalTime += s.timeStep
	s.steps++
	stepper.Step(s.bodies, s.primary, s.timeStep)
	craft.Coast(s.ship, s.timeStep)
	return nil
}

// Advance runs n sequential steps, stopping at the first error.
func (s *Sim) Advance(mode Mode, n int) error {
	for i := 0; i < n; i++ {
		if err := s.Step(mode); err != nil {
			return err
		}
	}
	return nil
}

// SteerShip feeds one frame of directional input to the ship, if there is
// one. dt is the host's frame time in wall-clock seconds and only turns the
// ship; its position follows simulated time in Step.
func (s *Sim) SteerShip(in craft.Input, dt float64) {
	s.craft.Update(s.ship, in, dt)
}

// Validate reports the first body whose position or velocity is not finite.
func (s *Sim) Validate() error {
	for i, b := range s.bodies {
		if !finite(b.Position.X, b.Position.Y, b.Position.Z, b.Velocity.X, b.Velocity.Y, b.Velocity.Z) {
			return &StepError{Step: s.steps, Time: s.totalTime, Body: i, Wrapped: ErrInvalidState}
		}
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s *Sim) TimeStep() float64  { return s.timeStep }
func (s *Sim) TotalTime() float64 { return s.totalTime }
func (s *Sim) Steps() int         { return s.steps }

// Date is the calendar date of the current simulated time.
func (s *Sim) Date() string { return ISODate(s.totalTime) }

// Len is the total number of bodies.
func (s *Sim) Len() int { return len(s.bodies) }

// Primary is the number of catalog bodies at the front of the sequence.
func (s *Sim) Primary() int { return s.primary }

// Body returns a copy of body i.
func (s *Sim) Body(i int) body.Body { return s.bodies[i] }

// Bodies appends copies of all bodies to dst and returns it.
func (s *Sim) Bodies(dst []body.Body) []body.Body {
	return append(dst, s.bodies...)
}

// Ship returns a copy of the ship and whether the simulation has one.
func (s *Sim) Ship() (body.Ship, bool) {
	if s.ship == nil {
		return body.Ship{}, false
	}
	return *s.ship, true
}

// Anchor is the index of the heaviest primary found by the last gravity step,
// or -1 if gravity has not run yet.
func (s *Sim) Anchor() int { return s.gravity.Anchor() }

// AnchorConsistent reports whether catalog entry 0, whose mass seeded the
// field velocities, is also the heaviest catalog body. Gravity steps always
// pull the field toward the true heaviest body, so a false result means the
// field started with orbits computed for the wrong mass.
func (s *Sim) AnchorConsistent() bool { return s.anchorOK }
