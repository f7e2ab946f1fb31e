package ascii

import (
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x * 255 / max(1, w-1))
			img.SetRGBA(x, y, color.RGBA{R: v, G: uint8(y % 256), B: 255 - v, A: 255})
		}
	}
	return img
}

func TestSize(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		width      int
		wantW      int
		wantH      int
	}{
		{"16:9 at 80", 1920, 1080, 80, 80, 23},
		{"4:3 at 40", 640, 480, 40, 40, 15},
		{"square at 10", 100, 100, 10, 10, 5},
		{"rounds half up", 10, 3, 5, 5, 1},
		{"very wide clamps height", 1000, 1, 10, 10, 1},
		{"tall source", 100, 400, 10, 10, 20},
		{"zero width clamps to one", 100, 100, 0, 1, 1},
		{"negative width clamps to one", 100, 100, -5, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := Size(tt.srcW, tt.srcH, tt.width)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Size(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.srcW, tt.srcH, tt.width, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestConvertDimensions(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		width int
	}{
		{"downscale", 320, 180, 40},
		{"upscale", 4, 4, 16},
		{"single pixel", 1, 1, 1},
		{"odd sizes", 97, 61, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Convert(gradient(tt.w, tt.h), tt.width, DefaultPalette)
			wantW, wantH := Size(tt.w, tt.h, tt.width)
			if c.Width != wantW || c.Height != wantH {
				t.Fatalf("canvas = %dx%d, want %dx%d", c.Width, c.Height, wantW, wantH)
			}
			if len(c.Cells) != wantW*wantH {
				t.Fatalf("len(Cells) = %d, want %d", len(c.Cells), wantW*wantH)
			}

			lines := strings.Split(c.Text(false), "\n")
			if len(lines) != wantH {
				t.Fatalf("got %d lines, want %d", len(lines), wantH)
			}
			for i, line := range lines {
				if n := len([]rune(line)); n != wantW {
					t.Errorf("line %d has %d glyphs, want %d", i, n, wantW)
				}
			}
		})
	}
}

func TestConvertMonotonic(t *testing.T) {
	prev := -1
	for v := 0; v <= 255; v++ {
		c := Convert(solid(8, 8, color.RGBA{R: uint8(v), G: uint8(v), B: uint8(v), A: 255}), 4, DefaultPalette)
		idx := strings.IndexRune(DefaultPalette.String(), c.At(0, 0).Glyph)
		if idx < prev {
			t.Fatalf("gray %d maps to index %d, below index %d of a darker gray", v, idx, prev)
		}
		prev = idx
	}
}

func TestRenderBlackAndWhite(t *testing.T) {
	black := Convert(solid(4, 4, color.RGBA{A: 255}), 2, DefaultPalette)
	white := Convert(solid(4, 4, color.RGBA{R: 255, G: 255, B: 255, A: 255}), 2, DefaultPalette)

	if got := black.At(0, 0).Glyph; got != DefaultPalette[0] {
		t.Errorf("black glyph = %q, want %q", got, DefaultPalette[0])
	}
	if got := white.At(0, 0).Glyph; got != DefaultPalette[len(DefaultPalette)-1] {
		t.Errorf("white glyph = %q, want %q", got, DefaultPalette[len(DefaultPalette)-1])
	}

	blackText := black.Text(true)
	whiteText := white.Text(true)
	if !strings.HasPrefix(blackText, "\x1b[38;2;0;0;0m ") {
		t.Errorf("colored black = %q, want black escape then space", blackText)
	}
	if !strings.HasPrefix(whiteText, "\x1b[38;2;255;255;255m@") {
		t.Errorf("colored white = %q, want white escape then @", whiteText)
	}
}

func TestRenderColoredRows(t *testing.T) {
	out := Render(gradient(64, 32), 8, true, DefaultPalette)
	_, h := Size(64, 32, 8)

	rows := strings.SplitAfter(out, "\n")
	// SplitAfter leaves a trailing empty element after the final newline.
	if rows[len(rows)-1] != "" {
		t.Fatalf("colored output does not end with a newline: %q", out)
	}
	rows = rows[:len(rows)-1]
	if len(rows) != h {
		t.Fatalf("got %d rows, want %d", len(rows), h)
	}
	for i, row := range rows {
		if !strings.HasSuffix(row, Reset+"\n") {
			t.Errorf("row %d = %q, want reset before newline", i, row)
		}
		if n := strings.Count(row, "\x1b[38;2;"); n != 8 {
			t.Errorf("row %d has %d color escapes, want 8", i, n)
		}
	}
}

func TestRenderIdempotent(t *testing.T) {
	img := gradient(123, 77)
	for _, colored := range []bool{false, true} {
		a := Render(img, 30, colored, DefaultPalette)
		b := Render(img, 30, colored, DefaultPalette)
		if a != b {
			t.Errorf("colored=%v: renders differ", colored)
		}
	}
}

func TestRenderMalformed(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
	}{
		{"nil", nil},
		{"zero width", image.NewRGBA(image.Rect(0, 0, 0, 10))},
		{"zero height", image.NewRGBA(image.Rect(0, 0, 10, 0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.img, 10, true, DefaultPalette); got != "" {
				t.Errorf("Render = %q, want empty", got)
			}
			if c := Convert(tt.img, 10, DefaultPalette); !c.Empty() {
				t.Errorf("Convert = %dx%d, want empty canvas", c.Width, c.Height)
			}
		})
	}
}

func TestRenderCustomPalette(t *testing.T) {
	p := Palette("ab")
	out := Render(solid(4, 4, color.RGBA{R: 255, G: 255, B: 255, A: 255}), 2, false, p)
	if out != "bb" {
		t.Errorf("Render = %q, want %q", out, "bb")
	}

	out = Render(solid(4, 4, color.RGBA{A: 255}), 2, false, nil)
	if out != "  " {
		t.Errorf("Render with nil palette = %q, want default sparsest glyphs", out)
	}
}
