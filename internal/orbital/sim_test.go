package orbital_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/craft"
	"github.com/san-kum/orbsim/internal/field"
	"github.com/san-kum/orbsim/internal/integrators"
	"github.com/san-kum/orbsim/internal/orbital"
)

const (
	sunMass   = 1.9885e30
	earthMass = 5.972e24
	au        = 1.495978707e11
	day       = 86400.0
)

func finite(v r3.Vec) bool {
	return !math.IsNaN(v.X+v.Y+v.Z) && !math.IsInf(v.X+v.Y+v.Z, 0)
}

// circularPair places a light body on a circular orbit of radius r around a
// heavy one, both about their barycenter.
func circularPair(M, m, r float64) []body.Entry {
	v := math.Sqrt(body.G * (M + m) / r)
	return []body.Entry{
		{Name: "Star", Mass: M, Radius: 1, Color: "#ffffff",
			Position: r3.Vec{X: -m * r / (M + m)}, Velocity: r3.Vec{Z: -m * v / (M + m)}},
		{Name: "Planet", Mass: m, Radius: 1, Color: "#0000ff",
			Position: r3.Vec{X: M * r / (M + m)}, Velocity: r3.Vec{Z: M * v / (M + m)}},
	}
}

var _ = Describe("Sim", func() {
	Describe("construction", func() {
		It("copies the catalog in order and appends the field", func() {
			s, err := orbital.New(3600, orbital.WithFieldBodies(50), orbital.WithSeed(3))
			Expect(err).NotTo(HaveOccurred())
			defer s.Close()

			Expect(s.Primary()).To(Equal(len(body.SolarSystem)))
			Expect(s.Len()).To(Equal(len(body.SolarSystem) + 50))

			for i, e := range body.SolarSystem {
				b := s.Body(i)
				Expect(b.Name).To(Equal(e.Name))
				Expect(b.Position).To(Equal(e.Position))
				Expect(b.Velocity).To(Equal(e.Velocity))
				Expect(b.InitialPosition()).To(Equal(e.Position))
				Expect(b.Mass).To(Equal(e.Mass))
			}
			for i := s.Primary(); i < s.Len(); i++ {
				b := s.Body(i)
				Expect(b.Name).To(BeEmpty())
				Expect(b.Mass).To(Equal(field.DefaultMass))
				Expect(b.InitialPosition()).To(Equal(b.Position))
			}
		})

		It("starts the clock at zero", func() {
			s, err := orbital.New(3600)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.TotalTime()).To(BeZero())
			Expect(s.TimeStep()).To(Equal(3600.0))
			Expect(s.Date()).To(Equal("2022-01-01"))
			Expect(s.Len()).To(Equal(len(body.SolarSystem) + orbital.DefaultFieldBodies))
		})

		It("reproduces the field for the same seed", func() {
			a, _ := orbital.New(3600, orbital.WithSeed(11), orbital.WithFieldBodies(100))
			b, _ := orbital.New(3600, orbital.WithSeed(11), orbital.WithFieldBodies(100))
			Expect(a.Bodies(nil)).To(Equal(b.Bodies(nil)))
		})

		DescribeTable("rejects unusable time steps",
			func(dt float64) {
				s, err := orbital.New(dt)
				Expect(err).To(MatchError(orbital.ErrInvalidTimeStep))
				Expect(s).To(BeNil())
			},
			Entry("zero", 0.0),
			Entry("negative", -1.0),
			Entry("NaN", math.NaN()),
			Entry("infinite", math.Inf(1)),
		)

		It("rejects a negative field", func() {
			_, err := orbital.New(1, orbital.WithFieldBodies(-1))
			Expect(err).To(MatchError(orbital.ErrInvalidFieldSize))
		})

		It("rejects a field without an anchor", func() {
			_, err := orbital.New(1, orbital.WithCatalog(nil), orbital.WithFieldBodies(10))
			Expect(err).To(MatchError(orbital.ErrNoAnchor))
		})

		It("flags a catalog whose first entry is not the heaviest", func() {
			s, _ := orbital.New(1)
			Expect(s.AnchorConsistent()).To(BeTrue())

			swapped := []body.Entry{body.SolarSystem[3], body.SolarSystem[0]}
			s, err := orbital.New(1, orbital.WithCatalog(swapped), orbital.WithFieldBodies(5))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.AnchorConsistent()).To(BeFalse())

			Expect(s.Step(orbital.Gravity)).To(Succeed())
			Expect(s.Anchor()).To(Equal(1))
		})
	})

	Describe("stepping", func() {
		var s *orbital.Sim

		BeforeEach(func() {
			var err error
			s, err = orbital.New(day, orbital.WithFieldBodies(20))
			Expect(err).NotTo(HaveOccurred())
		})

		DescribeTable("accounts time as k·h under either model",
			func(modes ...orbital.Mode) {
				const k = 1000
				for i := 0; i < k; i++ {
					Expect(s.Step(modes[i%len(modes)])).To(Succeed())
				}
				Expect(s.TotalTime()).To(BeNumerically("~", k*day, 1e-9*k*day))
				Expect(s.Steps()).To(Equal(k))
				Expect(s.Validate()).To(Succeed())
			},
			Entry("gravity", orbital.Gravity),
			Entry("springs", orbital.Springs),
			Entry("alternating", orbital.Gravity, orbital.Springs),
		)

		It("rejects an unknown mode without side effects", func() {
			before := s.Bodies(nil)
			err := s.Step(orbital.Mode(0))
			Expect(err).To(MatchError(orbital.ErrUnknownMode))
			Expect(s.TotalTime()).To(BeZero())
			Expect(s.Bodies(nil)).To(Equal(before))
		})

		It("tracks the heaviest primary under gravity", func() {
			Expect(s.Anchor()).To(Equal(-1))
			Expect(s.Step(orbital.Gravity)).To(Succeed())
			Expect(s.Anchor()).To(Equal(0))
		})

		It("hands out copies", func() {
			view := s.Bodies(nil)
			view[0].Position = r3.Vec{X: 1}
			Expect(s.Body(0).Position).To(Equal(body.SolarSystem[0].Position))
		})

		It("advances the date", func() {
			Expect(s.Advance(orbital.Gravity, 31)).To(Succeed())
			Expect(s.Date()).To(Equal("2022-02-01"))
		})

		It("refuses to step after Close", func() {
			s.Close()
			Expect(s.Len()).To(BeZero())
			Expect(s.Step(orbital.Gravity)).To(MatchError(orbital.ErrClosed))
		})
	})

	Describe("degenerate geometry", func() {
		It("survives coincident bodies under both models", func() {
			p := r3.Vec{X: au}
			catalog := []body.Entry{
				{Name: "A", Mass: sunMass, Position: p},
				{Name: "B", Mass: earthMass, Position: p},
			}
			for _, mode := range []orbital.Mode{orbital.Gravity, orbital.Springs} {
				s, err := orbital.New(day, orbital.WithCatalog(catalog), orbital.WithFieldBodies(0))
				Expect(err).NotTo(HaveOccurred())
				Expect(s.Step(mode)).To(Succeed())
				Expect(s.Validate()).To(Succeed())
				for i := 0; i < s.Len(); i++ {
					Expect(finite(s.Body(i).Position)).To(BeTrue())
					Expect(finite(s.Body(i).Velocity)).To(BeTrue())
				}
			}
		})
	})

	Describe("circular orbit", func() {
		It("returns the light body to its start after one period", func() {
			const n = 10000
			r := au
			catalog := circularPair(sunMass, earthMass, r)
			period := 2 * math.Pi * math.Sqrt(r*r*r/(body.G*(sunMass+earthMass)))

			s, err := orbital.New(period/n, orbital.WithCatalog(catalog), orbital.WithFieldBodies(0))
			Expect(err).NotTo(HaveOccurred())
			start := s.Body(1).Position

			Expect(s.Advance(orbital.Gravity, n)).To(Succeed())

			miss := r3.Norm(r3.Sub(s.Body(1).Position, start))
			Expect(miss).To(BeNumerically("<", 1e-3*r))
		})
	})

	Describe("integrator overrides", func() {
		It("gives each simulation its own gravity state", func() {
			g := integrators.NewGravity()
			a, err := orbital.New(day, orbital.WithFieldBodies(0), orbital.WithGravity(g))
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Step(orbital.Gravity)).To(Succeed())
			Expect(a.Anchor()).To(Equal(0))

			b, err := orbital.New(day, orbital.WithFieldBodies(0), orbital.WithGravity(g))
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Anchor()).To(Equal(-1))
			Expect(g.Anchor()).To(Equal(-1))
		})

		It("keeps the configured constant", func() {
			g := integrators.NewGravity()
			g.G = 0
			s, err := orbital.New(day, orbital.WithFieldBodies(0), orbital.WithGravity(g))
			Expect(err).NotTo(HaveOccurred())
			before := s.Body(3).Velocity
			Expect(s.Step(orbital.Gravity)).To(Succeed())
			Expect(s.Body(3).Velocity).To(Equal(before))
		})
	})

	Describe("ship", func() {
		It("is steered but feels no force", func() {
			pos := body.SolarSystem[3].Position
			s, err := orbital.New(day, orbital.WithFieldBodies(0), orbital.WithShip(body.NewShip(pos, r3.Vec{}, 1e5)))
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Advance(orbital.Gravity, 10)).To(Succeed())
			s.SteerShip(craft.Input{Down: true}, 0.1)

			ship, ok := s.Ship()
			Expect(ok).To(BeTrue())
			Expect(ship.Position).To(Equal(pos))
			Expect(ship.Velocity).To(Equal(r3.Vec{}))
			Expect(ship.Orientation.X).To(BeNumerically("~", 5, 1e-9))
		})

		It("coasts in simulated time, not frame time", func() {
			vel := r3.Vec{Z: 10}
			s, err := orbital.New(day, orbital.WithFieldBodies(0), orbital.WithShip(body.NewShip(r3.Vec{}, vel, 1e5)))
			Expect(err).NotTo(HaveOccurred())

			s.SteerShip(craft.Input{Right: true}, 0.5)
			ship, _ := s.Ship()
			Expect(ship.Position).To(Equal(r3.Vec{}))

			Expect(s.Advance(orbital.Springs, 3)).To(Succeed())
			ship, _ = s.Ship()
			Expect(ship.Position.Z).To(BeNumerically("~", 3*day*10, 1e-6))
		})

		It("is optional", func() {
			s, _ := orbital.New(day, orbital.WithFieldBodies(0))
			s.SteerShip(craft.Input{Up: true}, 1)
			_, ok := s.Ship()
			Expect(ok).To(BeFalse())
		})
	})
})
