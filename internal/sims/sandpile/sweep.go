package sandpile

// Step performs one sweep over the interior, top to bottom and left to
// right within a row. With probability 1 every over-threshold cell topples
// in full; otherwise each of its four grains moves with that probability.
// The sweep writes into the live grid, so cells later in the same sweep see
// grains toppled onto them earlier.
func (s *Sandpile) Step() {
	s.sweeps++
	var active bool
	if s.probability == 1.0 {
		active = s.sweepDeterministic()
	} else {
		active = s.sweepProbabilistic()
	}
	if !active {
		s.stable = true
	}
}

func (s *Sandpile) sweepDeterministic() bool {
	cells := s.grid.Cells()
	stride := s.grid.W
	toppled := false
	for y := 1; y <= s.h; y++ {
		for x := 1; x <= s.w; x++ {
			s.steps++
			i := y*stride + x
			v := cells[i]
			if v < Threshold {
				continue
			}
			// Large piles move every multiple of four at once.
			m := uint64(1)
			if v >= 2*Threshold {
				m = v / Threshold
			}
			cells[i] -= Threshold * m
			cells[i-1] += m
			cells[i-stride] += m
			cells[i+1] += m
			cells[i+stride] += m
			s.topples++
			toppled = true
		}
	}
	return toppled
}

func (s *Sandpile) sweepProbabilistic() bool {
	cells := s.grid.Cells()
	stride := s.grid.W
	offsets := [4]int{-1, -stride, 1, stride}
	active := false
	for y := 1; y <= s.h; y++ {
		for x := 1; x <= s.w; x++ {
			s.steps++
			i := y*stride + x
			if cells[i] < Threshold {
				continue
			}
			// An over-threshold cell keeps the pass active even when no
			// grain happens to move.
			active = true

			var draws [4]float32
			for d := range draws {
				draws[d] = s.rand.Float32()
			}
			var moved uint64
			for d, off := range offsets {
				if float64(draws[d]) < s.probability {
					cells[i+off]++
					moved++
				}
			}
			if moved > 0 {
				cells[i] -= moved
				s.topples++
			}
		}
	}
	return active
}
