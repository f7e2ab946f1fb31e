package main

import (
	"errors"
	"image"
	"io"
	"strings"
	"testing"

	"github.com/njyeung/asciireel/player"
)

type listSource struct{ frames []*player.Frame }

func (s *listSource) NextFrame() (*player.Frame, error) {
	if len(s.frames) == 0 {
		return nil, io.EOF
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	return f, nil
}

func (s *listSource) FrameCount() int    { return 0 }
func (s *listSource) FrameRate() float64 { return 0 }
func (s *listSource) Close() error       { return nil }

func frame(w int) *player.Frame {
	return &player.Frame{Image: image.NewRGBA(image.Rect(0, 0, w, 2))}
}

func TestNthFrame(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		wantWidth int
		wantErr   string
	}{
		{"first", 0, 1, ""},
		{"skips empty frames", 1, 3, ""},
		{"last", 2, 4, ""},
		{"past the end", 3, 0, "only 3 frames"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &listSource{frames: []*player.Frame{frame(1), frame(0), frame(3), frame(4)}}
			got, err := nthFrame(src, tt.n)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if w := got.Image.Bounds().Dx(); w != tt.wantWidth {
				t.Errorf("frame width = %d, want %d", w, tt.wantWidth)
			}
		})
	}
}

func TestNthFrameDecodeError(t *testing.T) {
	boom := errors.New("boom")
	src := failingSource{err: boom}
	if _, err := nthFrame(src, 0); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

type failingSource struct{ err error }

func (s failingSource) NextFrame() (*player.Frame, error) { return nil, s.err }
func (s failingSource) FrameCount() int                   { return 0 }
func (s failingSource) FrameRate() float64                { return 0 }
func (s failingSource) Close() error                      { return nil }
