// Package ascii converts raster frames into character grids.
//
// Conversion is a pure function of the image, the target width and the
// palette: frames are downsampled with bilinear filtering, each pixel is
// reduced to its luma and the luma picks a glyph from the palette.
package ascii

import (
	"image"
	"image/color"
	"math"

	"github.com/nfnt/resize"
)

// Size returns the character grid dimensions for a source of srcW x srcH
// pixels rendered width columns wide. Rows are halved because terminal
// cells are roughly twice as tall as they are wide.
func Size(srcW, srcH, width int) (int, int) {
	width = max(1, width)
	height := int(math.Round(float64(width) * float64(srcH) / float64(srcW) / 2))
	return width, max(1, height)
}

// Convert downsamples img and maps every pixel to a palette glyph.
// A nil or zero-area image yields an empty canvas.
func Convert(img image.Image, width int, palette Palette) *Canvas {
	if img == nil || img.Bounds().Empty() {
		return &Canvas{}
	}
	palette = palette.orDefault()

	src := img.Bounds()
	w, h := Size(src.Dx(), src.Dy(), width)
	small := resize.Resize(uint(w), uint(h), img, resize.Bilinear)
	b := small.Bounds()

	c := &Canvas{Width: w, Height: h, Cells: make([]Cell, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := color.RGBAModel.Convert(small.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			c.Cells[y*w+x] = Cell{
				Glyph: palette.Glyph(Luma(px.R, px.G, px.B)),
				R:     px.R,
				G:     px.G,
				B:     px.B,
			}
		}
	}
	return c
}

// Render converts img and serializes it in one step.
func Render(img image.Image, width int, colored bool, palette Palette) string {
	return Convert(img, width, palette).Text(colored)
}
