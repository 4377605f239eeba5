package core

import (
	"testing"
	"time"
)

func TestGridIndex(t *testing.T) {
	g := NewGrid(4, 3)
	if idx := g.Index(2, 1); idx != 6 {
		t.Fatalf("Index(2,1) = %d, expected 6", idx)
	}
}

func TestGridSumAndClear(t *testing.T) {
	g := NewGrid(0, -2)
	if g.W != 1 || g.H != 1 {
		t.Fatalf("non-positive dimensions should clamp to 1, got %dx%d", g.W, g.H)
	}

	g = NewGrid(3, 3)
	cells := g.Cells()
	cells[0] = 5
	cells[8] = 7
	if got := g.Sum(); got != 12 {
		t.Fatalf("Sum = %d, expected 12", got)
	}
	g.Clear()
	if got := g.Sum(); got != 0 {
		t.Fatalf("Sum after Clear = %d, expected 0", got)
	}
}

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	for i := 0; i < 32; i++ {
		va, vb := a.Float32(), b.Float32()
		if va != vb {
			t.Fatalf("draw %d differs: %f vs %f", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("draw %d out of range: %f", i, va)
		}
	}

	first := NewRNG(11).Float32()
	a.Seed(11)
	if got := a.Float32(); got != first {
		t.Fatalf("Seed should restart the sequence: got %f, expected %f", got, first)
	}
}

func TestFixedStepDue(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return clock }

	if n := fs.Due(); n != 1 {
		t.Fatalf("first call should release the primed sweep, got %d", n)
	}
	clock = clock.Add(50 * time.Millisecond)
	if n := fs.Due(); n != 0 {
		t.Fatalf("half a period should not be due, got %d", n)
	}
	clock = clock.Add(250 * time.Millisecond)
	if n := fs.Due(); n != 3 {
		t.Fatalf("expected 3 sweeps due, got %d", n)
	}
	clock = clock.Add(10 * time.Second)
	if n := fs.Due(); n != maxCatchUp {
		t.Fatalf("stall should be capped at %d, got %d", maxCatchUp, n)
	}
}

func TestRegistry(t *testing.T) {
	Register("", nil)
	if _, ok := Sims()[""]; ok {
		t.Fatal("empty registrations must be ignored")
	}
}

func TestParameterControlClamp(t *testing.T) {
	c := ParameterControl{Min: 0.001, Max: 1, HasMin: true, HasMax: true}
	if got := c.Clamp(2); got != 1 {
		t.Fatalf("Clamp(2) = %f, expected 1", got)
	}
	if got := c.Clamp(-1); got != 0.001 {
		t.Fatalf("Clamp(-1) = %f, expected 0.001", got)
	}
}
