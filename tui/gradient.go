// Package tui draws the grid, its axes and the signal legend on a
// tcell screen. It reads the simulation and never mutates it.
package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mazznoer/colorgrad"
)

// rampLen is the number of precomputed gradient steps
const rampLen = 128

// Ramp maps a normalized signal ratio to a terminal color. The
// palette is viridis pulled halfway toward white so glyphs stay
// readable against the default background.
type Ramp struct {
	colors [rampLen]tcell.Color
}

// NewRamp precomputes the brightened viridis ramp
func NewRamp() *Ramp {
	grad := colorgrad.Viridis()
	r := &Ramp{}
	for i := range r.colors {
		c := grad.At(float64(i) / float64(rampLen-1))
		r.colors[i] = tcell.NewRGBColor(
			int32((c.R*0.5+0.5)*255),
			int32((c.G*0.5+0.5)*255),
			int32((c.B*0.5+0.5)*255),
		)
	}
	return r
}

// At returns the color for ratio in [0,1]. Ratios outside the range
// clamp to the ends; negative sums happen between debits and draw at
// the floor.
func (r *Ramp) At(ratio float64) tcell.Color {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return r.colors[int(ratio*float64(rampLen-1))]
}
