package main

import (
	"sandpile/internal/app"
	"sandpile/internal/sims/sandpile"
)

// checkConfig rejects viewer settings the engine would otherwise clamp.
func checkConfig(cfg *app.Config) error {
	return sandpile.New(1, 1).SetProbability(cfg.Probability)
}
