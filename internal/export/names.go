package export

import (
	"fmt"
	"strconv"
)

// Default output directories, relative to the working directory.
const (
	RenderDir = "render"
	GIFDir    = "gif"
	VideoDir  = "video"
	ChartDir  = "chart"
)

// PNGName names a single-run image after its grains, size and probability.
func PNGName(grains uint64, w, h int, p float64) string {
	return fmt.Sprintf("img_%d_grains_%dx%dpx_probability_%s.png", grains, w, h, formatProbability(p))
}

// GIFName names a probability sweep animation after its frame count.
func GIFName(grains uint64, w, h, frames int) string {
	return fmt.Sprintf("img_%d_grains_%dx%dpx_%d_frames.gif", grains, w, h, frames)
}

// ModeName names an output after the toppling algorithm that produced it.
func ModeName(grains uint64, w, h int, mode, ext string) string {
	return fmt.Sprintf("img_%d_grains_%dx%dpx_%s.%s", grains, w, h, mode, ext)
}

// SweepName names per-sweep outputs such as videos and charts.
func SweepName(grains uint64, w, h, frames int, ext string) string {
	return fmt.Sprintf("img_%d_grains_%dx%dpx_%d_frames.%s", grains, w, h, frames, ext)
}

func formatProbability(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
