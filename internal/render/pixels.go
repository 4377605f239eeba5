package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Palette maps grain counts to colours. Every count from 4 upwards shares
// the Overflow colour.
type Palette struct {
	Empty    color.RGBA
	One      color.RGBA
	Two      color.RGBA
	Three    color.RGBA
	Overflow color.RGBA
}

// DefaultPalette is the export palette: opaque black for empty cells and a
// fully transparent overflow marker.
func DefaultPalette() Palette {
	return Palette{
		Empty:    color.RGBA{A: 255},
		One:      color.RGBA{B: 255, A: 255},
		Two:      color.RGBA{G: 255, A: 255},
		Three:    color.RGBA{R: 255, A: 255},
		Overflow: color.RGBA{},
	}
}

// OpaquePalette is DefaultPalette with a visible purple overflow marker.
func OpaquePalette() Palette {
	p := DefaultPalette()
	p.Overflow = color.RGBA{R: 160, B: 200, A: 255}
	return p
}

// Color returns the colour for a grain count.
func (p Palette) Color(v uint64) color.RGBA {
	switch v {
	case 0:
		return p.Empty
	case 1:
		return p.One
	case 2:
		return p.Two
	case 3:
		return p.Three
	default:
		return p.Overflow
	}
}

// Colors lists the palette entries in grain-count order.
func (p Palette) Colors() color.Palette {
	return color.Palette{p.Empty, p.One, p.Two, p.Three, p.Overflow}
}

// FillRGBA converts cell values into RGBA pixels in buf, four bytes per cell.
func FillRGBA(buf []byte, cells []uint64, p Palette) {
	for i, v := range cells {
		col := p.Color(v)
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Image renders a w*h row-major grid into a new RGBA image.
func Image(cells []uint64, w, h int, p Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	n := w * h
	if len(cells) < n {
		n = len(cells)
	}
	FillRGBA(img.Pix, cells[:n], p)
	return img
}

// Upscale enlarges img by an integer factor without smoothing cell edges.
func Upscale(img *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
