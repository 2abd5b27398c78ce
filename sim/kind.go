package sim

// Kind classifies a cell. The zero value is KindEmpty.
type Kind uint8

const (
	// KindEmpty takes no part in the simulation
	KindEmpty Kind = iota
	// KindBedrock accepts incoming signal and discards it
	KindBedrock
	// KindSource holds signal, emits its backlog when visited by the
	// frontier, and is refilled by replenishment
	KindSource
)

// Accepts reports whether the kind admits incoming signal
func (k Kind) Accepts() bool { return k == KindBedrock || k == KindSource }

// Emits reports whether the kind pays out its backlog when the
// frontier visits it
func (k Kind) Emits() bool { return k == KindSource }

// Absorbs reports whether accepted signal is discarded instead of stored
func (k Kind) Absorbs() bool { return k == KindBedrock }

// Strength is the replenishment deposit for the kind
func (k Kind) Strength() Signal {
	if k == KindSource {
		return sourceStrength
	}
	return 0
}

// Rune is the glyph drawn for the kind
func (k Kind) Rune() rune {
	switch k {
	case KindBedrock:
		return '='
	case KindSource:
		return 'o'
	default:
		return ' '
	}
}

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindBedrock:
		return "bedrock"
	case KindSource:
		return "source"
	default:
		return "invalid"
	}
}
