package body

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"
)

// Entry is one row of a body catalog. Color is a "#rrggbb" string.
type Entry struct {
	Name     string
	Mass     float64
	Radius   float64
	Color    string
	Position r3.Vec
	Velocity r3.Vec
}

// Body converts the entry into a Body anchored at its catalog position.
func (e Entry) Body() Body {
	return New(e.Name, e.Position, e.Velocity, e.Mass, e.Radius, ParseColor(e.Color))
}

// Fallback is used for colors that fail to parse.
var Fallback = color.RGBA{R: 200, G: 200, B: 255, A: 255}

// Gray is the display color of generated field bodies.
var Gray = color.RGBA{R: 130, G: 130, B: 130, A: 255}

// ParseColor decodes a "#rrggbb" hex string.
func ParseColor(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Fallback
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// SolarSystem holds the Sun and the eight planets at 2022-01-01 00:00 TDB.
// Heliocentric ecliptic state vectors are mapped into a Y-up frame, so the
// ecliptic is the XZ plane. The Sun's velocity cancels the planets' total
// momentum. Units are SI.
var SolarSystem = []Entry{
	{Name: "Sun", Mass: 1.9885e30, Radius: 6.957e8, Color: "#ffcb00",
		Velocity: r3.Vec{X: -5.817632204e+00, Y: 2.516075739e-01, Z: 1.462398667e+01}},
	{Name: "Mercury", Mass: 3.301e+23, Radius: 2.4397e+06, Color: "#a9a9a9",
		Position: r3.Vec{X: 5.370917652e+10, Y: -5.426164160e+09, Z: 6.098530377e+09},
		Velocity: r3.Vec{X: -3.925224108e+03, Y: 4.493231888e+03, Z: -5.058227913e+04}},
	{Name: "Venus", Mass: 4.867e+24, Radius: 6.0518e+06, Color: "#e6b800",
		Position: r3.Vec{X: -1.014594524e+10, Y: 2.055904139e+09, Z: -1.071188986e+11},
		Velocity: r3.Vec{X: -3.498429784e+04, Y: 1.970804258e+03, Z: 3.492522775e+03}},
	{Name: "Earth", Mass: 5.972e+24, Radius: 6.37814e+06, Color: "#0079f1",
		Position: r3.Vec{X: -2.613854198e+10, Y: -7.235037269e+06, Z: -1.447618567e+11},
		Velocity: r3.Vec{X: -2.980022230e+04, Y: 2.701490671e-01, Z: 5.405263179e+03}},
	{Name: "Mars", Mass: 6.417e+23, Radius: 3.3962e+06, Color: "#e62937",
		Position: r3.Vec{X: -1.296527662e+11, Y: -7.969158874e+08, Z: 1.898072765e+11},
		Velocity: r3.Vec{X: 2.091914462e+04, Y: -7.560538885e+02, Z: 1.159033564e+04}},
	{Name: "Jupiter", Mass: 1.898e+27, Radius: 7.1492e+07, Color: "#c8a27a",
		Position: r3.Vec{X: 6.969129727e+11, Y: -1.447842889e+10, Z: 2.692105029e+11},
		Velocity: r3.Vec{X: 4.548677938e+03, Y: -1.550460685e+02, Z: -1.281281419e+04}},
	{Name: "Saturn", Mass: 5.683e+26, Radius: 6.0268e+07, Color: "#d3b06a",
		Position: r3.Vec{X: 1.040637983e+12, Y: -2.308134530e+10, Z: 1.054297245e+12},
		Velocity: r3.Vec{X: 6.347164780e+03, Y: -3.701253905e+02, Z: -6.762587389e+03}},
	{Name: "Uranus", Mass: 8.681e+25, Radius: 2.5559e+07, Color: "#66bfff",
		Position: r3.Vec{X: 2.152356855e+12, Y: -2.040587712e+10, Z: -2.017008922e+12},
		Velocity: r3.Vec{X: -4.704139371e+03, Y: 7.819126691e+01, Z: -4.649458502e+03}},
	{Name: "Neptune", Mass: 1.024e+26, Radius: 2.4764e+07, Color: "#3050d0",
		Position: r3.Vec{X: 4.431904306e+12, Y: -8.954227431e+10, Z: 6.113376325e+11},
		Velocity: r3.Vec{X: 7.065518791e+02, Y: -1.277472724e+02, Z: -5.413055626e+03}},
}

// Find returns the index of the named entry, case-insensitively, or -1.
func Find(catalog []Entry, name string) int {
	for i, e := range catalog {
		if strings.EqualFold(e.Name, name) {
			return i
		}
	}
	return -1
}

// Heaviest returns the index of the most massive entry, or -1 for an empty
// catalog.
func Heaviest(catalog []Entry) int {
	idx := -1
	biggest := 0.0
	for i, e := range catalog {
		if idx == -1 || e.Mass > biggest {
			idx, biggest = i, e.Mass
		}
	}
	return idx
}

// Names lists the entry names in catalog order.
func Names(catalog []Entry) []string {
	names := make([]string, len(catalog))
	for i, e := range catalog {
		names[i] = e.Name
	}
	return names
}
