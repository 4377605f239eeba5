package sandpile

import (
	"fmt"
	"math"

	"sandpile/internal/core"
)

const (
	// Threshold is the smallest grain count that topples.
	Threshold = 4
	// MinProbability is the fallback when a non-positive probability is requested.
	MinProbability = 0.001
)

// Float32Source supplies uniform samples in [0, 1) for probabilistic sweeps.
type Float32Source interface {
	Float32() float32
}

// Sandpile owns a grid of grain counts surrounded by a one cell border.
// Logical coordinate (0,0) is stored at (1,1). In bounded modes the border
// absorbs grains; the toroidal cascade never touches it.
type Sandpile struct {
	w, h   int
	grid   *core.Grid
	queue  []int
	queued []bool

	probability float64
	rand        Float32Source

	stable  bool
	toppled bool

	steps      uint64
	topples    uint64
	sweeps     uint64
	dropped    uint64
	maxTopples uint64
}

// New returns a zeroed sandpile with the given logical dimensions.
func New(w, h int) *Sandpile {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Sandpile{
		w:           w,
		h:           h,
		grid:        core.NewGrid(w+2, h+2),
		probability: 1.0,
		rand:        core.NewRNG(0),
	}
}

// Size returns the logical dimensions.
func (s *Sandpile) Size() core.Size { return core.Size{W: s.w, H: s.h} }

// Bounds returns the dimensions of the padded grid returned by Cells.
func (s *Sandpile) Bounds() core.Size { return core.Size{W: s.grid.W, H: s.grid.H} }

// Cells exposes the raw padded grid, border included, in row-major order.
func (s *Sandpile) Cells() []uint64 { return s.grid.Cells() }

// Set writes value at logical coordinate (x, y) and clears the stability
// flag. Coordinates outside the logical extent are a caller bug and panic.
func (s *Sandpile) Set(value uint64, x, y int) {
	s.grid.Cells()[s.index(x, y)] = value
	s.stable = false
}

// At reads the value at logical coordinate (x, y).
func (s *Sandpile) At(x, y int) uint64 {
	return s.grid.Cells()[s.index(x, y)]
}

func (s *Sandpile) index(x, y int) int {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		panic(fmt.Sprintf("sandpile: coordinate (%d,%d) outside %dx%d grid", x, y, s.w, s.h))
	}
	return s.grid.Index(x+1, y+1)
}

// Reset zeroes every cell including the border and clears the stability
// flags. Diagnostic counters are kept; see ResetCounters.
func (s *Sandpile) Reset() {
	s.grid.Clear()
	s.stable = false
	s.toppled = false
	s.dropped = 0
}

// ResetCounters clears the cumulative diagnostics.
func (s *Sandpile) ResetCounters() {
	s.steps = 0
	s.topples = 0
	s.sweeps = 0
}

// SetProbability sets the fraction of eligible grains moved per sweep.
// Values outside (0, 1] are clamped to MinProbability or 1 and reported as
// ErrInvalidProbability; the clamped value stays active.
func (s *Sandpile) SetProbability(p float64) error {
	switch {
	case p <= 0 || math.IsNaN(p):
		s.probability = MinProbability
	case p > 1:
		s.probability = 1.0
	default:
		s.probability = p
		return nil
	}
	return fmt.Errorf("%w: got %g, using %g", ErrInvalidProbability, p, s.probability)
}

// Probability returns the active toppling probability.
func (s *Sandpile) Probability() float64 { return s.probability }

// SetRand injects the random source used by probabilistic sweeps.
func (s *Sandpile) SetRand(src Float32Source) {
	if src == nil {
		src = core.NewRNG(0)
	}
	s.rand = src
}

// SetSeed reseeds the engine's own random source.
func (s *Sandpile) SetSeed(seed int64) {
	s.rand = core.NewRNG(seed)
}

// SetToppleLimit bounds the topples a single cascade may perform. Zero
// disables the limit.
func (s *Sandpile) SetToppleLimit(n uint64) { s.maxTopples = n }

// Stable reports whether the last sweep or cascade left no interior cell at
// or above Threshold.
func (s *Sandpile) Stable() bool { return s.stable }

// Toppled reports whether any cascade deposited grains inside the grid
// since the last Reset. It says nothing about stability.
func (s *Sandpile) Toppled() bool { return s.toppled }

// Steps counts cell visits during sweeps and deposits during cascades.
func (s *Sandpile) Steps() uint64 { return s.steps }

// Topples counts toppling events. A sweep counts one per cell it topples. A
// cascade counts one per queued cell it topples, and a cell that gathers
// several loads before its turn topples them all at once, so cascade counts
// run below those of a cell-by-cell recursion.
func (s *Sandpile) Topples() uint64 { return s.topples }

// Sweeps counts calls to Step.
func (s *Sandpile) Sweeps() uint64 { return s.sweeps }

// Mass returns the number of grains held by interior cells.
func (s *Sandpile) Mass() uint64 {
	var total uint64
	cells := s.grid.Cells()
	for y := 1; y <= s.h; y++ {
		row := cells[s.grid.Index(1, y):s.grid.Index(s.w+1, y)]
		for _, v := range row {
			total += v
		}
	}
	return total
}

// Absorbed returns the grains lost to the sink since the last Reset: those
// resting on border cells plus those dropped by bounded cascades.
func (s *Sandpile) Absorbed() uint64 {
	return s.grid.Sum() - s.Mass() + s.dropped
}

// scanStable reports whether every interior cell is below Threshold.
func (s *Sandpile) scanStable() bool {
	cells := s.grid.Cells()
	for y := 1; y <= s.h; y++ {
		for x := 1; x <= s.w; x++ {
			if cells[s.grid.Index(x, y)] >= Threshold {
				return false
			}
		}
	}
	return true
}
