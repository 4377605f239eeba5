package export

import (
	"errors"
	"image"
	"image/gif"
	"io"

	"golang.org/x/image/draw"

	"sandpile/internal/render"
)

// ErrNoFrames reports an animation request without frames.
var ErrNoFrames = errors.New("no frames to encode")

// GIFOptions controls animation timing.
type GIFOptions struct {
	// Delay between frames in hundredths of a second.
	Delay int
	// HoldLast repeats the final frame this many extra times.
	HoldLast int
}

// DefaultGIFOptions matches the sweep animations: no delay and the last
// frame held for ten extra frames.
func DefaultGIFOptions() GIFOptions {
	return GIFOptions{Delay: 0, HoldLast: 10}
}

// WriteGIF encodes frames as a looping animation using the palette the
// frames were rendered with.
func WriteGIF(w io.Writer, frames []*image.RGBA, pal render.Palette, opts GIFOptions) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	colors := pal.Colors()
	anim := &gif.GIF{LoopCount: 0}
	var last *image.Paletted
	for _, frame := range frames {
		last = image.NewPaletted(frame.Bounds(), colors)
		draw.Draw(last, last.Bounds(), frame, frame.Bounds().Min, draw.Src)
		anim.Image = append(anim.Image, last)
		anim.Delay = append(anim.Delay, opts.Delay)
	}
	for i := 0; i < opts.HoldLast; i++ {
		anim.Image = append(anim.Image, last)
		anim.Delay = append(anim.Delay, opts.Delay)
	}
	return gif.EncodeAll(w, anim)
}

// SaveGIF writes the animation to path, creating parent directories.
func SaveGIF(path string, frames []*image.RGBA, pal render.Palette, opts GIFOptions) error {
	return save(path, func(w io.Writer) error { return WriteGIF(w, frames, pal, opts) })
}
