package main

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"sandpile/internal/batch"
	"sandpile/internal/export"
	"sandpile/internal/render"
	"sandpile/internal/sims/sandpile"
)

// options holds the flags shared by every subcommand.
type options struct {
	grains      uint64
	side        int
	probability float64
	mode        string
	seed        int64
	out         string
	maxSweeps   int
	maxTopples  uint64
	scale       int
	frames      int
	workers     int
	fps         int
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	defaults := sandpile.DefaultConfig()

	root := &cobra.Command{
		Use:   "sandpile",
		Short: "Simulate and render Abelian sandpiles",
		Long: `Drop a pile of grains on the centre of a square grid, topple it until
it settles and render the result.

Without a subcommand a PNG of the configured pile is rendered followed by a
GIF sweeping the toppling probability from 1/frames to 1. The GIF is skipped
for the recursive and torus modes, which have no probability.

Examples:
  sandpile -n 50000 -l 175
  sandpile png -n 20000 -l 101 --mode torus
  sandpile gif -n 10000 -l 81 --frames 30`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if err := runPNG(cmd, opts); err != nil {
				return err
			}
			if cfg.Mode.Cascade() {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipping probability sweep in %s mode\n", cfg.Mode)
				return nil
			}
			return runGIF(cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.Uint64VarP(&opts.grains, "num-grains", "n", defaults.Grains, "Number of grains in the centre pile")
	pf.IntVarP(&opts.side, "len-sides", "l", defaults.Width, "Side length of the grid")
	pf.Float64VarP(&opts.probability, "probability", "p", defaults.Probability, "Toppling probability in (0.0, 1.0]")
	pf.StringVar(&opts.mode, "mode", defaults.Mode.String(), "Toppling mode: iterative, recursive or torus")
	pf.Int64Var(&opts.seed, "seed", defaults.Seed, "Seed for probabilistic toppling")
	pf.StringVarP(&opts.out, "out", "o", ".", "Output root directory")
	pf.IntVar(&opts.maxSweeps, "max-sweeps", 0, "Give up after this many sweeps (0 = no limit)")
	pf.Uint64Var(&opts.maxTopples, "max-topples", 0, "Give up a cascade after this many topples (0 = no limit)")
	pf.IntVar(&opts.scale, "scale", 1, "Pixel scale multiplier for images")
	pf.IntVar(&opts.frames, "frames", 30, "Frames in a probability sweep")
	pf.IntVar(&opts.workers, "workers", runtime.NumCPU(), "Frames computed in parallel")
	pf.IntVar(&opts.fps, "fps", 10, "Frames per second for videos")

	root.AddCommand(
		&cobra.Command{
			Use:   "png",
			Short: "Render the settled pile as a PNG",
			RunE:  func(cmd *cobra.Command, args []string) error { return runPNG(cmd, opts) },
		},
		&cobra.Command{
			Use:   "gif",
			Short: "Render a probability sweep as an animated GIF",
			RunE:  func(cmd *cobra.Command, args []string) error { return runGIF(cmd, opts) },
		},
		&cobra.Command{
			Use:   "video",
			Short: "Render a probability sweep as an MJPEG video",
			RunE:  func(cmd *cobra.Command, args []string) error { return runVideo(cmd, opts) },
		},
		&cobra.Command{
			Use:   "chart",
			Short: "Chart sweeps and topples against toppling probability",
			RunE:  func(cmd *cobra.Command, args []string) error { return runChart(cmd, opts) },
		},
		&cobra.Command{
			Use:   "print",
			Short: "Print the settled pile to the terminal",
			RunE:  func(cmd *cobra.Command, args []string) error { return runPrint(cmd, opts) },
		},
	)
	return root
}

// config validates the shared flags and turns them into an engine config.
func (o *options) config() (sandpile.Config, error) {
	cfg := sandpile.DefaultConfig()
	if o.side <= 0 {
		return cfg, fmt.Errorf("side length must be positive, got %d", o.side)
	}
	if o.grains == 0 {
		return cfg, fmt.Errorf("number of grains must be positive")
	}
	mode, err := sandpile.ParseMode(o.mode)
	if err != nil {
		return cfg, err
	}
	if err := sandpile.New(1, 1).SetProbability(o.probability); err != nil {
		return cfg, err
	}
	cfg.Width, cfg.Height = o.side, o.side
	cfg.Grains = o.grains
	cfg.Probability = o.probability
	cfg.Mode = mode
	cfg.Seed = o.seed
	cfg.MaxSweeps = o.maxSweeps
	cfg.MaxTopples = o.maxTopples
	return cfg, nil
}

// settle runs the configured pile to stability.
func settle(ctx context.Context, cfg sandpile.Config) (*sandpile.Sim, error) {
	sim, err := sandpile.NewSim(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := sandpile.Stabilize(ctx, sim, cfg.MaxSweeps); err != nil {
		return nil, err
	}
	return sim, nil
}

func (o *options) sweep(cmd *cobra.Command, cfg sandpile.Config) ([]batch.Frame, error) {
	if cfg.Mode != sandpile.ModeIterative {
		return nil, fmt.Errorf("probability sweeps need the iterative mode, got %s", cfg.Mode)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Processing frames!")
	return batch.Sweep(cmd.Context(), batch.SweepConfig{
		Base:    cfg,
		Frames:  o.frames,
		Workers: o.workers,
		Progress: func(done int, stats batch.FrameStats) {
			fmt.Fprintf(out, "%3d of %-3d with probability %g\n", done, o.frames, stats.Probability)
		},
	})
}

func (o *options) images(frames []batch.Frame, pal render.Palette) []*image.RGBA {
	imgs := make([]*image.RGBA, len(frames))
	for i, f := range frames {
		imgs[i] = render.Upscale(render.Image(f.Cells, f.Width, f.Height, pal), o.scale)
	}
	return imgs
}

func runPNG(cmd *cobra.Command, o *options) error {
	cfg, err := o.config()
	if err != nil {
		return err
	}
	sim, err := settle(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	b := sim.Bounds()
	img := render.Upscale(render.Image(sim.Cells(), b.W, b.H, render.DefaultPalette()), o.scale)

	name := export.PNGName(cfg.Grains, cfg.Width, cfg.Height, cfg.Probability)
	if cfg.Mode.Cascade() {
		name = export.ModeName(cfg.Grains, cfg.Width, cfg.Height, cfg.Mode.String(), "png")
	}
	path := filepath.Join(o.out, export.RenderDir, name)
	if err := export.SavePNG(path, img); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d sweeps, %d topples)\n", path, sim.Pile().Sweeps(), sim.Pile().Topples())
	return nil
}

func runGIF(cmd *cobra.Command, o *options) error {
	cfg, err := o.config()
	if err != nil {
		return err
	}
	frames, err := o.sweep(cmd, cfg)
	if err != nil {
		return err
	}
	pal := render.DefaultPalette()
	path := filepath.Join(o.out, export.GIFDir, export.GIFName(cfg.Grains, cfg.Width, cfg.Height, o.frames))
	if err := export.SaveGIF(path, o.images(frames, pal), pal, export.DefaultGIFOptions()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runVideo(cmd *cobra.Command, o *options) error {
	cfg, err := o.config()
	if err != nil {
		return err
	}
	frames, err := o.sweep(cmd, cfg)
	if err != nil {
		return err
	}
	path := filepath.Join(o.out, export.VideoDir, export.SweepName(cfg.Grains, cfg.Width, cfg.Height, o.frames, "avi"))
	if err := export.SaveMJPEG(path, o.images(frames, render.OpaquePalette()), o.fps); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runChart(cmd *cobra.Command, o *options) error {
	cfg, err := o.config()
	if err != nil {
		return err
	}
	frames, err := o.sweep(cmd, cfg)
	if err != nil {
		return err
	}
	path := filepath.Join(o.out, export.ChartDir, export.SweepName(cfg.Grains, cfg.Width, cfg.Height, o.frames, "png"))
	if err := export.SaveChart(path, batch.Stats(frames)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
