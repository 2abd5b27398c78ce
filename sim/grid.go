// Package sim implements a signal diffusion engine over a fixed 2D
// grid. Cells bank incoming signal in a rotating history window,
// frontier cells pay their banked sum out to orthogonal neighbors,
// and a stochastic replenishment pass feeds sources. All state lives
// in one owned array; a single goroutine drives ticks, edits and
// reads in between.
package sim

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	// DefaultBacklogUnit is the tick span of one history slot
	DefaultBacklogUnit Tick = 8
	// DefaultFlagRate is the probability a touched neighbor joins the
	// next frontier
	DefaultFlagRate = 0.8
	// DefaultReplenishPct is the share of cells refilled each tick
	DefaultReplenishPct = 20

	// sourceStrength is the per-tick replenishment deposit of a source
	sourceStrength Signal = 100
)

// neighborhood is the orthogonal scan order: east, west, north, south
var neighborhood = [4]struct{ dx, dy int }{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Options tune a Grid. A zero BacklogUnit falls back to the default
// and a zero Seed draws from the clock; zero FlagRate and
// ReplenishPct are meaningful (never flag, never replenish) and are
// taken as given.
type Options struct {
	BacklogUnit  Tick
	FlagRate     float64
	ReplenishPct int
	Seed         uint64
}

// DefaultOptions returns the stock tuning
func DefaultOptions() Options {
	return Options{
		BacklogUnit:  DefaultBacklogUnit,
		FlagRate:     DefaultFlagRate,
		ReplenishPct: DefaultReplenishPct,
	}
}

// Grid owns the cell array and the propagation frontier. Methods are
// not safe for concurrent use; the driver serializes ticks, edits and
// reads on one goroutine.
type Grid struct {
	dim   Dim
	cells []Cell

	active  []int  // frontier the next Advance will visit
	next    []int  // frontier discovered during the current Advance
	flagged []bool // membership mask of whichever frontier is being built
	perm    []int  // replenishment sampling scratch

	now Tick
	opt Options
	rng *rand.Rand

	curX, curY int
}

// New builds a w by h grid of empty cells with default options
func New(w, h int) *Grid {
	return NewWithOptions(w, h, DefaultOptions())
}

// NewWithOptions builds a grid with explicit tuning
func NewWithOptions(w, h int, opt Options) *Grid {
	if w < 1 || h < 1 {
		panic(fmt.Sprintf("sim: invalid grid %dx%d", w, h))
	}
	if opt.BacklogUnit == 0 {
		opt.BacklogUnit = DefaultBacklogUnit
	}
	seed := opt.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Grid{
		dim:     Dim{W: w, H: h},
		cells:   make([]Cell, w*h),
		flagged: make([]bool, w*h),
		opt:     opt,
		rng:     rand.New(rand.NewPCG(seed, 0)),
	}
}

// Dim returns the grid extent
func (g *Grid) Dim() Dim { return g.dim }

// Now returns the tick index of the last Advance
func (g *Grid) Now() Tick { return g.now }

// Active returns the current frontier size, at most the cell count
func (g *Grid) Active() int { return len(g.active) }

// At returns the cell at (x, y) for reading. Out of bounds panics;
// readers iterate the extent they got from Dim.
func (g *Grid) At(x, y int) *Cell {
	return &g.cells[g.dim.MustOffset(x, y)]
}

// Each visits every cell in offset order
func (g *Grid) Each(fn func(x, y int, c *Cell)) {
	for i := range g.cells {
		fn(i%g.dim.W, i/g.dim.W, &g.cells[i])
	}
}

// SetKind reclassifies the cell at (x, y), leaving its signal state
// untouched
func (g *Grid) SetKind(x, y int, k Kind) error {
	off, err := g.dim.Offset(x, y)
	if err != nil {
		return err
	}
	g.cells[off].kind = k
	return nil
}

// Flag puts (x, y) on the frontier the next Advance will visit. The
// frontier is a set; flagging a cell already on it changes nothing.
// The tick never seeds its own frontier: propagation only discovers
// neighbors of cells already on it and replenishment never flags, so
// kindling through Flag is the only way a quiet region ignites.
func (g *Grid) Flag(x, y int) error {
	off, err := g.dim.Offset(x, y)
	if err != nil {
		return err
	}
	if !g.flagged[off] {
		g.flagged[off] = true
		g.active = append(g.active, off)
	}
	return nil
}

// Advance runs one tick under the driver's counter: the window shift,
// then propagation over the frontier, then replenishment, in that
// order always.
func (g *Grid) Advance(now Tick) {
	g.now = now
	g.shift(now)
	g.propagate()
	g.replenish()
}

// shift rotates every cell's history window. The slot for this tick
// is (now / unit) mod backlogLen, so a slot holds one unit span of
// intake and the running sum covers the last backlogLen spans.
// pending stays in place afterwards; it keeps accumulating until
// propagation debits it, which is what lets a cell's sum hold steady
// across a window instead of draining on the next shift.
func (g *Grid) shift(now Tick) {
	slot := int(now/g.opt.BacklogUnit) % backlogLen
	for i := range g.cells {
		c := &g.cells[i]
		c.sum -= c.history[slot]
		c.sum += c.pending
		c.history[slot] = c.pending
	}
}

// propagate pays out every emitting frontier cell and discovers the
// frontier for the next tick. Frontiers are sets: the membership mask
// admits each cell once, which keeps the worklist inside the cell
// count no matter how densely a region reflags itself. The two lists
// swap backing arrays each tick.
func (g *Grid) propagate() {
	work := g.active
	g.next = g.next[:0]
	for _, off := range work {
		g.flagged[off] = false
	}

	var conns [len(neighborhood)]int
	for _, off := range work {
		c := &g.cells[off]
		if !c.kind.Emits() {
			continue
		}
		x, y := off%g.dim.W, off/g.dim.W
		n := 0
		for _, d := range neighborhood {
			nx, ny := x+d.dx, y+d.dy
			if !g.dim.Contains(nx, ny) {
				continue
			}
			noff := nx + ny*g.dim.W
			if !g.cells[noff].kind.Accepts() {
				continue
			}
			conns[n] = noff
			n++
		}
		if n == 0 {
			// nowhere to send: the cell sits this tick out with its
			// backlog and pending intact
			continue
		}
		share := c.sum / Signal(n)
		c.pending -= c.sum
		for _, noff := range conns[:n] {
			nc := &g.cells[noff]
			if !nc.kind.Absorbs() {
				nc.pending += share
			}
			// each touch draws its own flag chance; joining an already
			// flagged cell is a no-op
			if g.rng.Float64() < g.opt.FlagRate && !g.flagged[noff] {
				g.flagged[noff] = true
				g.next = append(g.next, noff)
			}
		}
	}
	g.active, g.next = g.next, work[:0]
}

// replenish deposits each kind's strength into a without-replacement
// sample of k = len * pct / 100 cells, capped at the cell count. It
// runs off the frontier entirely; a replenished cell stays dormant
// until something flags it.
func (g *Grid) replenish() {
	k := len(g.cells) * g.opt.ReplenishPct / 100
	if k > len(g.cells) {
		k = len(g.cells)
	}
	if k <= 0 {
		return
	}
	if g.perm == nil {
		g.perm = make([]int, len(g.cells))
		for i := range g.perm {
			g.perm[i] = i
		}
	}
	// partial Fisher-Yates, the first k entries form the sample;
	// leftover order from earlier ticks is still a permutation, so
	// the scratch never needs resetting
	for i := 0; i < k; i++ {
		j := i + g.rng.IntN(len(g.perm)-i)
		g.perm[i], g.perm[j] = g.perm[j], g.perm[i]
		c := &g.cells[g.perm[i]]
		c.pending += c.kind.Strength()
	}
}

// Cursor returns the shared edit cursor. The simulation itself never
// reads it; it rides along so the driver, editor and renderer agree
// on one position.
func (g *Grid) Cursor() (x, y int) { return g.curX, g.curY }

// SetCursor places the cursor, clamped to the grid
func (g *Grid) SetCursor(x, y int) {
	g.curX = clamp(x, 0, g.dim.W-1)
	g.curY = clamp(y, 0, g.dim.H-1)
}

// MoveCursor shifts the cursor, clamped to the grid
func (g *Grid) MoveCursor(dx, dy int) {
	g.SetCursor(g.curX+dx, g.curY+dy)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
