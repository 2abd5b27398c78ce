package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/seep/sim"
)

// cellCols is the terminal width of one grid cell
const cellCols = 2

// Status carries the driver state the status line shows.
type Status struct {
	Tick    sim.Tick
	Active  int
	Paused  bool
	Message string
}

// View lays the grid out on screen: row labels down the left margin,
// column labels below, the signal legend on the right and a status
// line in the top margin. Grid y grows upward, so rows draw bottom
// up and the j key moves the cursor down the screen.
type View struct {
	padTop   int
	padLeft  int
	padRight int
	legend   bool
	ramp     *Ramp
}

// NewView builds a view with the given margins
func NewView(padTop, padLeft, padRight int, legend bool) *View {
	return &View{
		padTop:   padTop,
		padLeft:  padLeft,
		padRight: padRight,
		legend:   legend,
		ramp:     NewRamp(),
	}
}

// termX maps a grid column to its terminal column
func (v *View) termX(x int) int { return v.padLeft + cellCols*x }

// termY maps a grid row to its terminal row, inverted so row zero
// sits at the bottom
func (v *View) termY(h, y int) int { return v.padTop + h - y }

// ratio normalizes a sum against the frame maximum. A dark frame
// maps everything to the floor.
func ratio(sum, max sim.Signal) float64 {
	if max <= 0 {
		return 0
	}
	return float64(sum) / float64(max)
}

// rowRatio is the legend scale position of a grid row
func rowRatio(y, h int) float64 {
	return float64(y) / float64(h)
}

// Draw renders one frame. The caller presents it with Show.
func (v *View) Draw(s tcell.Screen, g *sim.Grid, st Status) {
	s.Clear()
	d := g.Dim()

	// per frame normalization: the brightest cell anchors the ramp top
	var max sim.Signal
	g.Each(func(x, y int, c *sim.Cell) {
		if c.Sum() > max {
			max = c.Sum()
		}
	})

	dim := tcell.StyleDefault.Dim(true)
	for y := 0; y < d.H; y++ {
		ty := v.termY(d.H, y)
		drawText(s, 0, ty, fmt.Sprintf("%3d", y), dim)
		for x := 0; x < d.W; x++ {
			c := g.At(x, y)
			style := tcell.StyleDefault.Foreground(v.ramp.At(ratio(c.Sum(), max)))
			tx := v.termX(x)
			s.SetContent(tx, ty, c.Kind().Rune(), nil, style)
			s.SetContent(tx+1, ty, ' ', nil, style)
		}
	}

	// column labels every tenth cell
	labelY := v.termY(d.H, 0) + 2
	for x := 0; x < d.W; x += 10 {
		drawText(s, v.termX(x), labelY, fmt.Sprintf("%d", x), dim)
	}

	if v.legend {
		v.drawLegend(s, d, max)
	}
	v.drawStatus(s, g, st)

	cx, cy := g.Cursor()
	s.ShowCursor(v.termX(cx), v.termY(d.H, cy))
}

// drawLegend prints the signal scale down the right edge, one step
// per grid row, each value over its gradient color
func (v *View) drawLegend(s tcell.Screen, d sim.Dim, max sim.Signal) {
	x := v.termX(d.W) + v.padRight
	for y := 0; y < d.H; y++ {
		r := rowRatio(y, d.H)
		style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(v.ramp.At(r))
		drawText(s, x, v.termY(d.H, y), fmt.Sprintf(" %6.1f ", float64(max)*r), style)
	}
}

func (v *View) drawStatus(s tcell.Screen, g *sim.Grid, st Status) {
	y := 0
	if v.padTop > 1 {
		y = 1
	}
	cx, cy := g.Cursor()
	line := fmt.Sprintf("tick %-6d cursor (%d,%d) %s  frontier %d", st.Tick, cx, cy, g.At(cx, cy).Kind(), st.Active)
	if st.Paused {
		line += "  [paused]"
	}
	drawText(s, v.padLeft, y, line, tcell.StyleDefault.Bold(true))
	if st.Message != "" {
		drawText(s, v.padLeft, y+1, st.Message, tcell.StyleDefault.Dim(true))
	}
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		s.SetContent(x+i, y, ch, nil, style)
	}
}
