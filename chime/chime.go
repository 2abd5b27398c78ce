// Package chime plays short tones as edit feedback. A failed or
// disabled speaker leaves the player mute; a silent run is still a
// run.
package chime

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player owns the speaker. A nil player and a mute player are both
// safe to cue.
type Player struct {
	ready bool
}

// NewPlayer opens the speaker when enabled. On failure the player
// comes back mute alongside the error, so the caller can log it and
// keep going without sound.
func NewPlayer(enabled bool) (*Player, error) {
	p := &Player{}
	if !enabled {
		return p, nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return p, err
	}
	p.ready = true
	return p, nil
}

func (p *Player) blip(freq float64, d time.Duration) {
	if p == nil || !p.ready {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}

// Place is the cue for setting a cell's kind
func (p *Player) Place() {
	p.blip(880, 50*time.Millisecond)
}

// Kindle is the lower cue for flagging a cell into the frontier
func (p *Player) Kindle() {
	p.blip(440, 80*time.Millisecond)
}

// Close releases the speaker
func (p *Player) Close() {
	if p == nil || !p.ready {
		return
	}
	speaker.Close()
}
