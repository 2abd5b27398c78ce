package sim

// Signal is the scalar cells accumulate and exchange. It is signed:
// the propagation debit can legitimately push a cell's intake below
// zero between window shifts, and that deficit must survive intact.
type Signal int32

// Tick is a monotone step index owned by the driver
type Tick uint32

// backlogLen is the number of history slots per cell, so the running
// sum spans backlogLen backlog units
const backlogLen = 4

// Cell is one grid site. The zero value is an empty cell with no
// signal. Classification and signal state are independent: editing a
// cell's kind never touches what it has accumulated.
type Cell struct {
	kind    Kind
	history [backlogLen]Signal
	sum     Signal
	pending Signal
}

// Kind returns the cell's classification
func (c *Cell) Kind() Kind { return c.kind }

// Sum returns the running backlog sum. It equals the sum of the
// history window at all times.
func (c *Cell) Sum() Signal { return c.sum }

// Pending returns the intake accumulated since the cell's current
// window slot was last written
func (c *Cell) Pending() Signal { return c.pending }
