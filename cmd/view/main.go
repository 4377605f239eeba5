//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"sandpile/internal/app"
	"sandpile/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if err := checkConfig(cfg); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q (available: %v)", cfg.Sim, core.SimNames())
	}

	sim := factory(cfg.SimConfig())
	game := app.New(sim, cfg)
	b := sim.Bounds()

	ebiten.SetWindowTitle("sandpile: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(b.W*cfg.Scale+cfg.HUDWidth, b.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
