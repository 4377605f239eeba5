package sandpile

import (
	"fmt"
	"strings"
)

// Mode selects how a pile is driven towards stability.
type Mode uint8

const (
	// ModeIterative sweeps the whole grid once per Step, deterministic or
	// probabilistic depending on the toppling probability.
	ModeIterative Mode = iota
	// ModeRecursive resolves a single seed in one cascade with an absorbing
	// border.
	ModeRecursive
	// ModeTorus resolves a single seed in one cascade on a wrapping grid.
	ModeTorus
)

var modeNames = [...]string{
	ModeIterative: "iterative",
	ModeRecursive: "recursive",
	ModeTorus:     "torus",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// Cascade reports whether the mode resolves its seed in a single cascade.
func (m Mode) Cascade() bool { return m == ModeRecursive || m == ModeTorus }

// ParseMode maps a mode name to its Mode.
func ParseMode(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for m, n := range modeNames {
		if n == name {
			return Mode(m), nil
		}
	}
	return ModeIterative, fmt.Errorf("%w %q (want iterative, recursive or torus)", ErrUnknownMode, name)
}

// Advance moves the pile forward once using the strategy of mode. The
// iterative mode performs one sweep and ignores the seed; the cascade modes
// drop amount grains at (x, y) and resolve everything that follows.
func (s *Sandpile) Advance(mode Mode, amount uint64, x, y int) error {
	switch mode {
	case ModeIterative:
		s.Step()
		return nil
	case ModeRecursive:
		s.Topple(amount, x, y)
		return nil
	case ModeTorus:
		return s.ToppleTorus(amount, x, y)
	default:
		return fmt.Errorf("%w %v", ErrUnknownMode, mode)
	}
}
