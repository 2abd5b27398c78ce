package sim

import (
	"errors"
	"fmt"
)

// ErrOutOfRange reports a coordinate or offset outside the grid. It
// marks a caller bug; nothing retries or corrects it.
var ErrOutOfRange = errors.New("out of range")

// Dim is an immutable grid extent. Offsets are row major,
// off = x + y*W, with y growing upward.
type Dim struct {
	W, H int
}

// Len returns the cell count
func (d Dim) Len() int { return d.W * d.H }

// Contains reports whether (x, y) lies inside the extent
func (d Dim) Contains(x, y int) bool {
	return x >= 0 && x < d.W && y >= 0 && y < d.H
}

// Offset maps (x, y) to its array offset
func (d Dim) Offset(x, y int) (int, error) {
	if !d.Contains(x, y) {
		return 0, fmt.Errorf("cell (%d,%d) outside %dx%d grid: %w", x, y, d.W, d.H, ErrOutOfRange)
	}
	return x + y*d.W, nil
}

// MustOffset is Offset for callers that already hold a bounds proof.
// It panics on violation.
func (d Dim) MustOffset(x, y int) int {
	off, err := d.Offset(x, y)
	if err != nil {
		panic(err)
	}
	return off
}

// Coords maps an array offset back to (x, y)
func (d Dim) Coords(off int) (int, int, error) {
	if off < 0 || off >= d.Len() {
		return 0, 0, fmt.Errorf("offset %d outside %dx%d grid: %w", off, d.W, d.H, ErrOutOfRange)
	}
	return off % d.W, off / d.W, nil
}
