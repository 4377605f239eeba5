package sandpile

import (
	"context"
	"fmt"

	"sandpile/internal/core"
)

// Sim drives a Sandpile from a single centred seed according to a Config.
// It satisfies core.Sim so the viewer and the batch tools can run any mode.
type Sim struct {
	cfg     Config
	pile    *Sandpile
	pending bool
	err     error
}

// NewSim builds a seeded simulation from cfg. An out-of-range probability
// is reported and replaced by the engine's clamped fallback.
func NewSim(cfg Config) (*Sim, error) {
	s := &Sim{cfg: cfg, pile: New(cfg.Width, cfg.Height)}
	s.cfg.Width, s.cfg.Height = s.pile.w, s.pile.h
	err := s.pile.SetProbability(cfg.Probability)
	s.cfg.Probability = s.pile.Probability()
	s.pile.SetToppleLimit(cfg.MaxTopples)
	s.Reset(cfg.Seed)
	return s, err
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "sandpile-" + s.cfg.Mode.String() }

// Size returns the logical grid dimensions.
func (s *Sim) Size() core.Size { return s.pile.Size() }

// Bounds returns the padded grid dimensions.
func (s *Sim) Bounds() core.Size { return s.pile.Bounds() }

// Cells exposes the raw padded grid.
func (s *Sim) Cells() []uint64 { return s.pile.Cells() }

// Pile exposes the underlying engine.
func (s *Sim) Pile() *Sandpile { return s.pile }

// Config returns the active configuration.
func (s *Sim) Config() Config { return s.cfg }

// Err returns the error of the last cascade, if any.
func (s *Sim) Err() error { return s.err }

// Reset clears the grid and places the seed pile again. A zero seed keeps
// the configured one.
func (s *Sim) Reset(seed int64) {
	if seed != 0 {
		s.cfg.Seed = seed
	}
	s.pile.Reset()
	s.pile.SetSeed(s.cfg.Seed)
	s.err = nil
	if s.cfg.Mode.Cascade() {
		s.pending = true
		return
	}
	s.pending = false
	cx, cy := s.cfg.Center()
	s.pile.Set(s.cfg.Grains, cx, cy)
}

// Step advances the pile once. Cascade modes resolve the whole seed on
// the first Step after a Reset and do nothing afterwards.
func (s *Sim) Step() {
	if !s.cfg.Mode.Cascade() {
		s.pile.Step()
		return
	}
	if !s.pending {
		return
	}
	s.pending = false
	cx, cy := s.cfg.Center()
	s.err = s.pile.Advance(s.cfg.Mode, s.cfg.Grains, cx, cy)
}

// Stable reports whether the pile has settled.
func (s *Sim) Stable() bool { return !s.pending && s.pile.Stable() }

// Stepper is anything that can be swept until stable.
type Stepper interface {
	Step()
	Stable() bool
}

// Stabilize calls Step until s is stable and returns the number of steps
// taken. It gives up with ErrSweepLimit after limit steps when limit is
// positive, and with ctx.Err() once ctx is done. A Stepper that exposes an
// Err method stops the loop as soon as it reports one.
func Stabilize(ctx context.Context, s Stepper, limit int) (int, error) {
	failing, _ := s.(interface{ Err() error })
	n := 0
	for !s.Stable() {
		if limit > 0 && n >= limit {
			return n, fmt.Errorf("%w after %d sweeps", ErrSweepLimit, n)
		}
		if err := ctx.Err(); err != nil {
			return n, err
		}
		s.Step()
		n++
		if failing != nil {
			if err := failing.Err(); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

func init() {
	for _, mode := range []Mode{ModeIterative, ModeRecursive, ModeTorus} {
		mode := mode
		core.Register("sandpile-"+mode.String(), func(cfg map[string]string) core.Sim {
			c := FromMap(cfg)
			c.Mode = mode
			sim, _ := NewSim(c)
			return sim
		})
	}
}
