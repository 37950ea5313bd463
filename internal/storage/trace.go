package storage

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
)

// Trace is a sampled trajectory of the primary bodies. It is a record for
// plotting and analysis; a simulation cannot be resumed from it.
type Trace struct {
	Names     []string
	Times     []float64
	Positions [][]r3.Vec
}

func NewTrace(names []string) *Trace {
	return &Trace{Names: names}
}

// Record appends the positions of the first len(Names) bodies at time t.
func (tr *Trace) Record(t float64, bodies []body.Body) {
	row := make([]r3.Vec, len(tr.Names))
	for i := range row {
		if i < len(bodies) {
			row[i] = bodies[i].Position
		}
	}
	tr.Times = append(tr.Times, t)
	tr.Positions = append(tr.Positions, row)
}

func (tr *Trace) Len() int { return len(tr.Times) }

// Index returns the column of the named body, or -1.
func (tr *Trace) Index(name string) int {
	entries := make([]body.Entry, len(tr.Names))
	for i, n := range tr.Names {
		entries[i].Name = n
	}
	return body.Find(entries, name)
}

// Distances returns, per sample, the distance of body i from body 0.
func (tr *Trace) Distances(i int) []float64 {
	out := make([]float64, len(tr.Positions))
	for k, row := range tr.Positions {
		out[k] = r3.Norm(r3.Sub(row[i], row[0]))
	}
	return out
}

// Interval is the spacing between samples, assuming it is uniform.
func (tr *Trace) Interval() float64 {
	if len(tr.Times) < 2 {
		return 0
	}
	return (tr.Times[len(tr.Times)-1] - tr.Times[0]) / float64(len(tr.Times)-1)
}

// Offsets returns, per sample, the position of body i relative to body 0.
func (tr *Trace) Offsets(i int) []r3.Vec {
	out := make([]r3.Vec, len(tr.Positions))
	for k, row := range tr.Positions {
		out[k] = r3.Sub(row[i], row[0])
	}
	return out
}
