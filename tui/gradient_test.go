package tui

import "testing"

func TestRampBrightensEveryStep(t *testing.T) {
	ramp := NewRamp()
	for i := 0.0; i <= 1.0; i += 0.05 {
		r, g, b := ramp.At(i).RGB()
		// the palette is pulled halfway to white, so no channel can
		// sit below the midpoint
		for _, ch := range []int32{r, g, b} {
			if ch < 127 || ch > 255 {
				t.Fatalf("ratio %.2f: channel %d outside brightened range", i, ch)
			}
		}
	}
}

func TestRampClampsOutOfRange(t *testing.T) {
	ramp := NewRamp()
	if ramp.At(-5) != ramp.At(0) {
		t.Fatalf("negative ratio did not clamp to the floor")
	}
	if ramp.At(2) != ramp.At(1) {
		t.Fatalf("ratio above one did not clamp to the ceiling")
	}
}

func TestRampSpansThePalette(t *testing.T) {
	ramp := NewRamp()
	if ramp.At(0) == ramp.At(1) {
		t.Fatalf("ramp ends are identical; the gradient collapsed")
	}
}
