// Package batch runs many independent sandpiles, one per probability value,
// to build frame sequences and statistics.
package batch

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"sandpile/internal/sims/sandpile"
)

// SweepConfig describes a probability sweep. Frame i runs with probability
// (i+1)/Frames, so the last frame is always the deterministic pile.
type SweepConfig struct {
	Base    sandpile.Config
	Frames  int
	Workers int
	// Progress, when set, is called once per finished frame. Calls are
	// serialised but arrive in completion order.
	Progress func(done int, stats FrameStats)
}

// FrameStats summarises one settled frame.
type FrameStats struct {
	Index       int
	Probability float64
	Sweeps      int
	Topples     uint64
	Mass        uint64
	Absorbed    uint64
}

// Frame is a settled grid together with its statistics. Cells is the raw
// padded grid of Bounds dimensions.
type Frame struct {
	Stats  FrameStats
	Cells  []uint64
	Width  int
	Height int
}

// Probability returns the toppling probability of frame i out of n.
func Probability(i, n int) float64 {
	return float64(i+1) / float64(n)
}

// Sweep runs every frame to stability on its own engine and returns the
// frames in order. The first failing frame cancels the rest.
func Sweep(ctx context.Context, cfg SweepConfig) ([]Frame, error) {
	if cfg.Frames <= 0 {
		return nil, fmt.Errorf("sweep needs at least one frame, got %d", cfg.Frames)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	frames := make([]Frame, cfg.Frames)
	done := make(chan FrameStats)
	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		n := 0
		for stats := range done {
			n++
			if cfg.Progress != nil {
				cfg.Progress(n, stats)
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < cfg.Frames; i++ {
		i := i
		g.Go(func() error {
			frame, err := runFrame(gctx, cfg.Base, i, cfg.Frames)
			if err != nil {
				return err
			}
			frames[i] = frame
			done <- frame.Stats
			return nil
		})
	}
	err := g.Wait()
	close(done)
	<-progressDone
	if err != nil {
		return nil, err
	}
	return frames, nil
}

func runFrame(ctx context.Context, base sandpile.Config, i, n int) (Frame, error) {
	cfg := base
	cfg.Mode = sandpile.ModeIterative
	cfg.Probability = Probability(i, n)
	cfg.Seed = base.Seed + int64(i)

	sim, err := sandpile.NewSim(cfg)
	if err != nil {
		return Frame{}, fmt.Errorf("frame %d: %w", i, err)
	}
	sweeps, err := sandpile.Stabilize(ctx, sim, cfg.MaxSweeps)
	if err != nil {
		return Frame{}, fmt.Errorf("frame %d (p=%g): %w", i, cfg.Probability, err)
	}

	pile := sim.Pile()
	b := pile.Bounds()
	return Frame{
		Stats: FrameStats{
			Index:       i,
			Probability: cfg.Probability,
			Sweeps:      sweeps,
			Topples:     pile.Topples(),
			Mass:        pile.Mass(),
			Absorbed:    pile.Absorbed(),
		},
		Cells:  append([]uint64(nil), pile.Cells()...),
		Width:  b.W,
		Height: b.H,
	}, nil
}

// Stats extracts the statistics of every frame.
func Stats(frames []Frame) []FrameStats {
	out := make([]FrameStats, len(frames))
	for i, f := range frames {
		out[i] = f.Stats
	}
	return out
}
