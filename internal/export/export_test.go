package export

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"sandpile/internal/batch"
	"sandpile/internal/render"
)

func testFrame(v uint64) *image.RGBA {
	cells := []uint64{0, 1, 2, 3, v, 0, 1, 2, 3}
	return render.Image(cells, 3, 3, render.DefaultPalette())
}

func TestNames(t *testing.T) {
	require.Equal(t, "img_50000_grains_175x175px_probability_1.png", PNGName(50000, 175, 175, 1.0))
	require.Equal(t, "img_100_grains_5x5px_probability_0.5.png", PNGName(100, 5, 5, 0.5))
	require.Equal(t, "img_100_grains_5x5px_30_frames.gif", GIFName(100, 5, 5, 30))
	require.Equal(t, "img_100_grains_5x5px_torus.png", ModeName(100, 5, 5, "torus", "png"))
	require.Equal(t, "img_100_grains_5x5px_30_frames.avi", SweepName(100, 5, 5, 30, "avi"))
}

func TestWritePNGRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, testFrame(7)))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 3, 3), img.Bounds())
	r, g, b, a := img.At(1, 0).RGBA()
	require.Equal(t, [4]uint32{0, 0, 0xffff, 0xffff}, [4]uint32{r, g, b, a})
	_, _, _, a = img.At(1, 1).RGBA()
	require.Zero(t, a, "overflow cells are transparent")
}

func TestSavePNGCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), RenderDir, PNGName(9, 3, 3, 1))
	require.NoError(t, SavePNG(path, testFrame(4)))
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NotZero(t, info.Size())
}

func TestWriteGIFHoldsLastFrame(t *testing.T) {
	frames := []*image.RGBA{testFrame(4), testFrame(5), testFrame(3)}
	var buf bytes.Buffer
	require.NoError(t, WriteGIF(&buf, frames, render.DefaultPalette(), DefaultGIFOptions()))

	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, anim.Image, 13)
	require.Equal(t, 0, anim.LoopCount)

	last := anim.Image[12]
	require.Equal(t, color.RGBA{R: 255, A: 255}, color.RGBAModel.Convert(last.At(1, 1)))
	require.Equal(t, color.RGBA{G: 255, A: 255}, color.RGBAModel.Convert(anim.Image[0].At(2, 0)))

	require.ErrorIs(t, WriteGIF(&buf, nil, render.DefaultPalette(), DefaultGIFOptions()), ErrNoFrames)
}

func TestSaveMJPEG(t *testing.T) {
	pal := render.OpaquePalette()
	frames := []*image.RGBA{
		render.Upscale(render.Image([]uint64{0, 1, 2, 3}, 2, 2, pal), 8),
		render.Upscale(render.Image([]uint64{3, 2, 1, 0}, 2, 2, pal), 8),
	}
	path := filepath.Join(t.TempDir(), VideoDir, "sweep.avi")
	require.NoError(t, SaveMJPEG(path, frames, 5))
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NotZero(t, info.Size())

	require.ErrorIs(t, SaveMJPEG(path, nil, 5), ErrNoFrames)
}

func TestWriteChart(t *testing.T) {
	stats := []batch.FrameStats{
		{Index: 0, Probability: 0.5, Sweeps: 40, Topples: 900},
		{Index: 1, Probability: 1, Sweeps: 12, Topples: 300},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteChart(&buf, stats))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 800, img.Bounds().Dx())

	require.ErrorIs(t, WriteChart(&buf, stats[:1]), ErrNoFrames)
}
