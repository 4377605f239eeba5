// Package console pretty-prints sandpile grids to a terminal.
package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

const block = "██"

var (
	shades = [...]*color.Color{
		color.New(color.FgBlack),
		color.New(color.FgBlue),
		color.New(color.FgGreen),
		color.New(color.FgRed),
	}
	overflow = color.New(color.FgMagenta)
)

// Print writes every cell of a w*h row-major grid as a coloured block, one
// row per line, followed by a blank line.
func Print(w io.Writer, cells []uint64, width, height int) error {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if _, err := shade(cells[y*width+x]).Fprint(w, block); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func shade(v uint64) *color.Color {
	if v < uint64(len(shades)) {
		return shades[v]
	}
	return overflow
}
