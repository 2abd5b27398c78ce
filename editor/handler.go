// Package editor turns key events into grid edits and run control.
// It holds no screen; the driver feeds it events and reacts to the
// returned actions.
package editor

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/seep/sim"
)

// Action tells the driver what a key did beyond any grid mutation
// the handler already applied.
type Action int

const (
	// ActionNone covers movement, edits the driver ignores, and
	// unbound keys
	ActionNone Action = iota
	// ActionQuit ends the run
	ActionQuit
	// ActionTick forces an immediate tick
	ActionTick
	// ActionPause toggles the tick clock
	ActionPause
	// ActionEdited placed a kind at the cursor
	ActionEdited
	// ActionKindled flagged the cursor cell into the frontier
	ActionKindled
)

// Handler applies vi-style keys to a grid.
type Handler struct {
	grid *sim.Grid
}

// NewHandler builds a handler over the grid
func NewHandler(g *sim.Grid) *Handler {
	return &Handler{grid: g}
}

// HandleKey applies one key event
func (h *Handler) HandleKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyLeft:
		h.grid.MoveCursor(-1, 0)
	case tcell.KeyRight:
		h.grid.MoveCursor(1, 0)
	case tcell.KeyDown:
		h.grid.MoveCursor(0, -1)
	case tcell.KeyUp:
		h.grid.MoveCursor(0, 1)
	case tcell.KeyRune:
		return h.handleRune(ev.Rune())
	}
	return ActionNone
}

// handleRune covers the vi keys. Grid y grows upward, so j and k
// move the cursor against their grid direction to keep their screen
// direction.
func (h *Handler) handleRune(r rune) Action {
	switch r {
	case 'q':
		return ActionQuit
	case 'h':
		h.grid.MoveCursor(-1, 0)
	case 'l':
		h.grid.MoveCursor(1, 0)
	case 'j':
		h.grid.MoveCursor(0, -1)
	case 'k':
		h.grid.MoveCursor(0, 1)
	case '0':
		return h.place(sim.KindEmpty)
	case '9':
		return h.place(sim.KindBedrock)
	case '1':
		return h.place(sim.KindSource)
	case 'g':
		x, y := h.grid.Cursor()
		_ = h.grid.Flag(x, y) // clamped cursor, cannot miss
		return ActionKindled
	case 't':
		return ActionTick
	case ' ':
		return ActionPause
	}
	return ActionNone
}

// place sets the cursor cell's kind. The cursor is clamped to the
// grid, so the edit cannot miss.
func (h *Handler) place(k sim.Kind) Action {
	x, y := h.grid.Cursor()
	_ = h.grid.SetKind(x, y, k) // clamped cursor, cannot miss
	return ActionEdited
}
