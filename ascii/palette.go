package ascii

import (
	"fmt"
	"unicode/utf8"
)

// Palette is an ordered set of glyphs from visually sparsest to densest.
type Palette []rune

// DefaultPalette is the ten-level ramp used when no palette is given.
var DefaultPalette = Palette(" .:-=+*#%@")

// ParsePalette builds a palette from a string of glyphs ordered sparse to dense.
func ParsePalette(s string) (Palette, error) {
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("palette is not valid UTF-8")
	}
	p := Palette(s)
	if len(p) < 2 {
		return nil, fmt.Errorf("palette needs at least 2 glyphs, got %d", len(p))
	}
	return p, nil
}

// Index maps an 8-bit luma value to a palette position: floor(luma/255 * (len-1)).
func (p Palette) Index(luma uint8) int {
	if len(p) == 0 {
		return 0
	}
	return int(luma) * (len(p) - 1) / 255
}

// Glyph returns the glyph for an 8-bit luma value.
func (p Palette) Glyph(luma uint8) rune {
	return p[p.Index(luma)]
}

func (p Palette) String() string {
	return string(p)
}

// orDefault keeps the zero value usable.
func (p Palette) orDefault() Palette {
	if len(p) == 0 {
		return DefaultPalette
	}
	return p
}
