package ascii

import "unicode/utf8"

// Cell is one character of a rendered frame together with the color of
// the pixel it stands for.
type Cell struct {
	Glyph   rune
	R, G, B uint8
}

// Canvas is a row-major grid of cells.
type Canvas struct {
	Width  int
	Height int
	Cells  []Cell
}

// At returns the cell at column x, row y.
func (c *Canvas) At(x, y int) Cell {
	return c.Cells[y*c.Width+x]
}

// Empty reports whether the canvas has no cells.
func (c *Canvas) Empty() bool {
	return c == nil || c.Width == 0 || c.Height == 0
}

// Text serializes the canvas. Plain output joins rows with newlines.
// Colored output prefixes every glyph with its foreground color and ends
// each row with a reset and a newline so color never bleeds past the row.
func (c *Canvas) Text(colored bool) string {
	if c.Empty() {
		return ""
	}
	if !colored {
		return c.plain()
	}

	// 19 bytes is the longest foreground escape ("\x1b[38;2;255;255;255m").
	buf := make([]byte, 0, c.Height*(c.Width*(19+utf8.UTFMax)+len(Reset)+1))
	for y := 0; y < c.Height; y++ {
		row := c.Cells[y*c.Width : (y+1)*c.Width]
		for _, cell := range row {
			buf = appendTrueColorFg(buf, cell.R, cell.G, cell.B)
			buf = utf8.AppendRune(buf, cell.Glyph)
		}
		buf = append(buf, Reset...)
		buf = append(buf, '\n')
	}
	return string(buf)
}

func (c *Canvas) plain() string {
	buf := make([]byte, 0, c.Height*(c.Width+1))
	for y := 0; y < c.Height; y++ {
		if y > 0 {
			buf = append(buf, '\n')
		}
		for _, cell := range c.Cells[y*c.Width : (y+1)*c.Width] {
			buf = utf8.AppendRune(buf, cell.Glyph)
		}
	}
	return string(buf)
}
