package ascii

import "strconv"

// Reset clears all SGR attributes.
const Reset = "\x1b[0m"

// TrueColorFg returns the 24-bit foreground color escape for r, g, b.
func TrueColorFg(r, g, b uint8) string {
	return string(appendTrueColorFg(nil, r, g, b))
}

func appendTrueColorFg(dst []byte, r, g, b uint8) []byte {
	dst = append(dst, "\x1b[38;2;"...)
	dst = strconv.AppendUint(dst, uint64(r), 10)
	dst = append(dst, ';')
	dst = strconv.AppendUint(dst, uint64(g), 10)
	dst = append(dst, ';')
	dst = strconv.AppendUint(dst, uint64(b), 10)
	return append(dst, 'm')
}

// Luma returns the BT.601 weighted intensity of an RGB triple.
// Integer weights keep black at 0 and white at 255 exactly.
func Luma(r, g, b uint8) uint8 {
	return uint8((299*uint32(r) + 587*uint32(g) + 114*uint32(b) + 500) / 1000)
}
