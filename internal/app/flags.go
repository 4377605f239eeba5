package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim         string
	Scale       int
	TPS         int
	SPS         int
	Seed        int64
	Width       int
	Height      int
	Grains      uint64
	Probability float64
	MaxTopples  uint64
	HUDWidth    int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:         "sandpile-iterative",
		Scale:       4,
		TPS:         60,
		SPS:         60,
		Seed:        1337,
		Width:       175,
		Height:      175,
		Grains:      50_000,
		Probability: 1.0,
		HUDWidth:    240,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.SPS, "sps", c.SPS, "sweeps per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Width, "w", c.Width, "grid width")
	fs.IntVar(&c.Height, "h", c.Height, "grid height")
	fs.Uint64Var(&c.Grains, "grains", c.Grains, "grains in the centre pile")
	fs.Float64Var(&c.Probability, "p", c.Probability, "toppling probability in (0, 1]")
	fs.Uint64Var(&c.MaxTopples, "max-topples", c.MaxTopples, "give up a cascade after this many topples (0 = no limit)")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 hides it)")
}

// SimConfig renders the simulation settings in the key=value form sim
// factories accept.
func (c *Config) SimConfig() map[string]string {
	return map[string]string{
		"w":           strconv.Itoa(c.Width),
		"h":           strconv.Itoa(c.Height),
		"grains":      strconv.FormatUint(c.Grains, 10),
		"p":           strconv.FormatFloat(c.Probability, 'f', -1, 64),
		"seed":        strconv.FormatInt(c.Seed, 10),
		"max_topples": strconv.FormatUint(c.MaxTopples, 10),
	}
}
