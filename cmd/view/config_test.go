package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sandpile/internal/app"
	"sandpile/internal/sims/sandpile"
)

func TestCheckConfigProbability(t *testing.T) {
	cfg := app.NewConfig()
	require.NoError(t, checkConfig(cfg))

	for _, p := range []float64{0, -0.5, 1.5} {
		cfg.Probability = p
		require.ErrorIs(t, checkConfig(cfg), sandpile.ErrInvalidProbability, "p=%g", p)
	}
}
