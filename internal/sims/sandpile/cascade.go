package sandpile

import "fmt"

// cellQueue is a FIFO of grid indices awaiting a topple.
type cellQueue struct {
	items []int
	head  int
}

func (q *cellQueue) push(i int) { q.items = append(q.items, i) }

func (q *cellQueue) pop() (int, bool) {
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
		return 0, false
	}
	i := q.items[q.head]
	q.head++
	if q.head >= 1024 && 2*q.head >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		q.items = q.items[:n]
		q.head = 0
	}
	return i, true
}

func (q *cellQueue) reset() {
	q.items = q.items[:0]
	q.head = 0
}

// cascade holds the per-call state shared by both cascade modes.
type cascade struct {
	s     *Sandpile
	q     cellQueue
	torus bool

	// fired marks torus cells that have toppled at least once. A cascade
	// on a closed grid never ends once every cell has fired.
	fired  []bool
	nfired int
}

func (s *Sandpile) newCascade(torus bool) *cascade {
	if len(s.queued) != len(s.grid.Cells()) {
		s.queued = make([]bool, len(s.grid.Cells()))
	}
	c := &cascade{s: s, torus: torus}
	c.q.items = s.queue[:0]
	if torus {
		c.fired = make([]bool, len(s.grid.Cells()))
	}
	return c
}

// deposit adds amount to logical cell (x, y). In bounded mode anything
// outside the logical extent falls into the sink.
func (c *cascade) deposit(amount uint64, x, y int) {
	s := c.s
	s.steps++
	if c.torus {
		x, y = wrap(x, s.w), wrap(y, s.h)
	} else if x < 0 || x >= s.w || y < 0 || y >= s.h {
		s.dropped += amount
		return
	}
	i := s.grid.Index(x+1, y+1)
	cells := s.grid.Cells()
	cells[i] += amount
	s.toppled = true
	if cells[i] >= Threshold && !s.queued[i] {
		s.queued[i] = true
		c.q.push(i)
	}
}

// drain topples queued cells until none remain, or until limit topples
// have run when limit is non-zero.
func (c *cascade) drain(limit uint64) error {
	s := c.s
	cells := s.grid.Cells()
	stride := s.grid.W
	var n uint64
	for {
		i, ok := c.q.pop()
		if !ok {
			break
		}
		s.queued[i] = false
		v := cells[i]
		if v < Threshold {
			continue
		}
		if limit > 0 && n >= limit {
			c.abandon(i)
			return fmt.Errorf("%w: %d topples", ErrToppleLimit, n)
		}
		m := v / Threshold
		cells[i] -= Threshold * m
		s.topples++
		n++

		x, y := i%stride-1, i/stride-1
		c.deposit(m, x-1, y)
		c.deposit(m, x, y-1)
		c.deposit(m, x+1, y)
		c.deposit(m, x, y+1)

		if c.fired != nil && !c.fired[i] {
			c.fired[i] = true
			c.nfired++
			if c.nfired == s.w*s.h {
				c.abandon(-1)
				return fmt.Errorf("%w: every cell of the %dx%d torus toppled", ErrNeverStable, s.w, s.h)
			}
		}
	}
	s.queue = c.q.items[:0]
	return nil
}

// abandon clears the queued marks left behind by an interrupted drain.
func (c *cascade) abandon(current int) {
	s := c.s
	if current >= 0 {
		s.queued[current] = false
	}
	for {
		i, ok := c.q.pop()
		if !ok {
			break
		}
		s.queued[i] = false
	}
	c.q.reset()
	s.queue = c.q.items
}

func wrap(v, n int) int {
	return (v%n + n) % n
}

// Topple adds amount grains at logical cell (x, y) and resolves the whole
// cascade it triggers, visiting neighbours left, up, right, down. Grains
// that leave the logical extent are absorbed. Afterwards Stable reflects a
// full scan of the interior.
func (s *Sandpile) Topple(amount uint64, x, y int) {
	c := s.newCascade(false)
	c.deposit(amount, x, y)
	// Bounded cascades always terminate since every topple next to the edge
	// loses grains to the sink.
	_ = c.drain(0)
	s.stable = s.scanStable()
}

// ToppleTorus is Topple on a grid whose edges wrap around, so no grain is
// ever lost. It fails with ErrNeverStable, leaving the grid untouched, when
// the total mass would exceed what a stable grid can hold. A cascade that
// topples every cell at least once can never settle either; it stops there
// with ErrNeverStable and the grid in its partly toppled state. The limit
// set by SetToppleLimit ends a cascade early with ErrToppleLimit.
func (s *Sandpile) ToppleTorus(amount uint64, x, y int) error {
	capacity := uint64(Threshold-1) * uint64(s.w) * uint64(s.h)
	if mass := s.Mass(); mass > capacity || amount > capacity-mass {
		return fmt.Errorf("%w: %d grains on %dx%d torus", ErrNeverStable, s.Mass()+amount, s.w, s.h)
	}
	c := s.newCascade(true)
	c.deposit(amount, x, y)
	err := c.drain(s.maxTopples)
	s.stable = err == nil && s.scanStable()
	return err
}
