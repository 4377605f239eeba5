package sandpile

import "strconv"

// Config controls a sandpile run.
type Config struct {
	Width  int
	Height int

	// Grains is the size of the single pile seeded at Center.
	Grains      uint64
	Probability float64
	Mode        Mode
	Seed        int64

	// MaxSweeps bounds Stabilize for iterative runs; zero means unbounded.
	MaxSweeps int
	// MaxTopples bounds a single toroidal cascade; zero means unbounded.
	MaxTopples uint64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:       175,
		Height:      175,
		Grains:      50_000,
		Probability: 1.0,
		Mode:        ModeIterative,
		Seed:        1337,
	}
}

// Center returns the logical coordinate the seed pile is placed at.
func (c Config) Center() (int, int) {
	return (c.Width - 1) / 2, (c.Height - 1) / 2
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["grains"]; ok {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil && parsed > 0 {
			c.Grains = parsed
		}
	}
	if v, ok := cfg["p"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 && parsed <= 1 {
			c.Probability = parsed
		}
	}
	if v, ok := cfg["mode"]; ok {
		if parsed, err := ParseMode(v); err == nil {
			c.Mode = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["max_sweeps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.MaxSweeps = parsed
		}
	}
	if v, ok := cfg["max_topples"]; ok {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.MaxTopples = parsed
		}
	}
	return c
}
