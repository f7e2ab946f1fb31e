package ascii

import "testing"

func TestTrueColorFg(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    string
	}{
		{"black", 0, 0, 0, "\x1b[38;2;0;0;0m"},
		{"white", 255, 255, 255, "\x1b[38;2;255;255;255m"},
		{"red", 255, 0, 0, "\x1b[38;2;255;0;0m"},
		{"mixed", 12, 128, 7, "\x1b[38;2;12;128;7m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrueColorFg(tt.r, tt.g, tt.b)
			if got != tt.want {
				t.Errorf("TrueColorFg(%d, %d, %d) = %q, want %q",
					tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestLuma(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    uint8
	}{
		{"black", 0, 0, 0, 0},
		{"white", 255, 255, 255, 255},
		{"red", 255, 0, 0, 76},
		{"green", 0, 255, 0, 150},
		{"blue", 0, 0, 255, 29},
		{"mid gray", 128, 128, 128, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Luma(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("Luma(%d, %d, %d) = %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestPaletteIndex(t *testing.T) {
	p := DefaultPalette
	if got := p.Index(0); got != 0 {
		t.Errorf("Index(0) = %d, want 0", got)
	}
	if got := p.Index(255); got != len(p)-1 {
		t.Errorf("Index(255) = %d, want %d", got, len(p)-1)
	}

	prev := 0
	for v := 0; v <= 255; v++ {
		idx := p.Index(uint8(v))
		if idx < prev || idx >= len(p) {
			t.Fatalf("Index(%d) = %d after %d", v, idx, prev)
		}
		prev = idx
	}
}

func TestParsePalette(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantLen int
		wantErr bool
	}{
		{"default ramp", " .:-=+*#%@", 10, false},
		{"two glyphs", " #", 2, false},
		{"unicode blocks", " ░▒▓█", 5, false},
		{"empty", "", 0, true},
		{"single glyph", "@", 0, true},
		{"invalid utf8", "\xff\xfe", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePalette(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePalette(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && len(p) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(p), tt.wantLen)
			}
		})
	}
}
