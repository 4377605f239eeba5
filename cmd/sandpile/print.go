package main

import (
	"github.com/spf13/cobra"

	"sandpile/internal/console"
)

func runPrint(cmd *cobra.Command, o *options) error {
	cfg, err := o.config()
	if err != nil {
		return err
	}
	sim, err := settle(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	b := sim.Bounds()
	return console.Print(cmd.OutOrStdout(), sim.Cells(), b.W, b.H)
}
