package viz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	DefaultSpan = 5e12
	minSpan     = 1e9
	maxSpan     = 1e14
	zoomFactor  = 1.25
)

// Camera looks down the Y axis onto the ecliptic (XZ) plane. Pitch tilts the
// view about X so vertical spread becomes visible.
type Camera struct {
	Span   float64 // metres from the view centre to the nearer canvas edge
	Pitch  float64 // radians
	Follow int     // body kept at the centre, -1 for the origin
}

func NewCamera() *Camera {
	return &Camera{Span: DefaultSpan, Follow: -1}
}

// ZoomIn and ZoomOut stop at the span limits. A span already outside the
// limits is never pushed further away from them.
func (c *Camera) ZoomIn()  { c.Span = math.Max(math.Min(minSpan, c.Span), c.Span/zoomFactor) }
func (c *Camera) ZoomOut() { c.Span = math.Min(math.Max(maxSpan, c.Span), c.Span*zoomFactor) }

func (c *Camera) Tilt(a float64) {
	c.Pitch = math.Max(-math.Pi/2, math.Min(math.Pi/2, c.Pitch+a))
}

// Project maps a world position onto a sw x sh sub-pixel screen, relative to
// center. The boolean reports whether the point lands on screen.
func (c *Camera) Project(p, center r3.Vec, sw, sh int) (int, int, bool) {
	rel := r3.Sub(p, center)
	if c.Pitch != 0 {
		rel = r3.NewRotation(c.Pitch, r3.Vec{X: 1}).Rotate(rel)
	}
	scale := float64(min(sw, sh)) / 2 / c.Span
	sx := int(math.Floor(rel.X*scale)) + sw/2
	sy := int(math.Floor(rel.Z*scale)) + sh/2
	return sx, sy, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}
