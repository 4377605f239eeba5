package batch

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"sandpile/internal/sims/sandpile"
)

func smallBase() sandpile.Config {
	cfg := sandpile.DefaultConfig()
	cfg.Width, cfg.Height, cfg.Grains = 9, 9, 200
	cfg.MaxSweeps = 1_000_000
	return cfg
}

func TestSweep(t *testing.T) {
	Convey("Given a probability sweep over a small pile", t, func() {
		cfg := SweepConfig{Base: smallBase(), Frames: 4, Workers: 2}
		var calls int
		cfg.Progress = func(done int, stats FrameStats) { calls++ }

		frames, err := Sweep(context.Background(), cfg)

		Convey("Every frame settles and arrives in order", func() {
			So(err, ShouldBeNil)
			So(frames, ShouldHaveLength, 4)
			So(calls, ShouldEqual, 4)
			for i, f := range frames {
				So(f.Stats.Index, ShouldEqual, i)
				So(f.Stats.Probability, ShouldAlmostEqual, float64(i+1)/4)
				So(f.Width, ShouldEqual, 11)
				So(f.Height, ShouldEqual, 11)
				So(f.Cells, ShouldHaveLength, 121)
				So(f.Stats.Mass+f.Stats.Absorbed, ShouldEqual, 200)
			}
		})

		Convey("The last frame is the deterministic pile", func() {
			sim, _ := sandpile.NewSim(cfg.Base)
			_, err := sandpile.Stabilize(context.Background(), sim, 0)
			So(err, ShouldBeNil)
			So(frames[3].Cells, ShouldResemble, sim.Cells())
		})

		Convey("Rerunning the sweep reproduces every frame", func() {
			again, err := Sweep(context.Background(), SweepConfig{Base: smallBase(), Frames: 4, Workers: 3})
			So(err, ShouldBeNil)
			for i := range frames {
				So(again[i].Cells, ShouldResemble, frames[i].Cells)
				So(again[i].Stats, ShouldResemble, frames[i].Stats)
			}
		})
	})

	Convey("Given a sweep cap that is too small", t, func() {
		base := smallBase()
		base.MaxSweeps = 2
		_, err := Sweep(context.Background(), SweepConfig{Base: base, Frames: 3, Workers: 1})

		Convey("The sweep fails with the limit error", func() {
			So(errors.Is(err, sandpile.ErrSweepLimit), ShouldBeTrue)
		})
	})

	Convey("Given no frames", t, func() {
		_, err := Sweep(context.Background(), SweepConfig{Base: smallBase()})

		Convey("The sweep is rejected", func() {
			So(err, ShouldNotBeNil)
		})
	})
}
