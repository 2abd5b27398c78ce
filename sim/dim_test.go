package sim

import (
	"errors"
	"testing"
)

func TestOffsetCoordsRoundTrip(t *testing.T) {
	d := Dim{W: 5, H: 3}
	seen := make(map[int]bool)
	for y := 0; y < d.H; y++ {
		for x := 0; x < d.W; x++ {
			off, err := d.Offset(x, y)
			if err != nil {
				t.Fatalf("offset (%d,%d): %v", x, y, err)
			}
			if off < 0 || off >= d.Len() {
				t.Fatalf("offset (%d,%d) = %d outside [0,%d)", x, y, off, d.Len())
			}
			if seen[off] {
				t.Fatalf("offset %d produced twice", off)
			}
			seen[off] = true
			rx, ry, err := d.Coords(off)
			if err != nil {
				t.Fatalf("coords %d: %v", off, err)
			}
			if rx != x || ry != y {
				t.Fatalf("round trip (%d,%d) -> %d -> (%d,%d)", x, y, off, rx, ry)
			}
		}
	}
}

func TestOffsetRowMajor(t *testing.T) {
	d := Dim{W: 5, H: 3}
	off, err := d.Offset(2, 1)
	if err != nil {
		t.Fatalf("offset: %v", err)
	}
	if off != 7 {
		t.Fatalf("offset (2,1) in 5x3 = %d, want 7", off)
	}
}

func TestOffsetOutOfRange(t *testing.T) {
	d := Dim{W: 5, H: 3}
	bad := [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 3}, {5, 3}, {-1, -1}}
	for _, c := range bad {
		if _, err := d.Offset(c[0], c[1]); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("offset (%d,%d): got %v, want ErrOutOfRange", c[0], c[1], err)
		}
	}
}

func TestCoordsOutOfRange(t *testing.T) {
	d := Dim{W: 5, H: 3}
	for _, off := range []int{-1, 15, 100} {
		if _, _, err := d.Coords(off); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("coords %d: got %v, want ErrOutOfRange", off, err)
		}
	}
}

func TestMustOffsetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("MustOffset(9,9) on 5x3 did not panic")
		}
	}()
	Dim{W: 5, H: 3}.MustOffset(9, 9)
}

func TestContains(t *testing.T) {
	d := Dim{W: 2, H: 2}
	if !d.Contains(0, 0) || !d.Contains(1, 1) {
		t.Fatalf("interior coordinates reported outside")
	}
	if d.Contains(2, 0) || d.Contains(0, 2) || d.Contains(-1, 0) {
		t.Fatalf("exterior coordinates reported inside")
	}
}
