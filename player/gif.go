package player

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"time"
)

// GifSource plays an animated GIF, compositing one frame at a time
type GifSource struct {
	g      *gif.GIF
	canvas *image.RGBA
	next   int
}

// OpenGif decodes the GIF at path
func OpenGif(path string) (*GifSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gif: %w", err)
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil {
		return nil, fmt.Errorf("decode gif: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("gif has no frames")
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Dx(), b.Dy()
	}

	return &GifSource{
		g:      g,
		canvas: image.NewRGBA(image.Rect(0, 0, w, h)),
	}, nil
}

// NextFrame composites the next GIF frame onto the canvas, respecting the
// previous frame's disposal mode
func (s *GifSource) NextFrame() (*Frame, error) {
	if s.g == nil || s.next >= len(s.g.Image) {
		return nil, io.EOF
	}

	i := s.next
	s.next++

	frame := s.g.Image[i]
	disposal := s.disposal(i)

	var prev *image.RGBA
	if disposal == gif.DisposalPrevious {
		prev = cloneRGBA(s.canvas)
	}

	draw.Draw(s.canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
	out := cloneRGBA(s.canvas)

	switch disposal {
	case gif.DisposalBackground:
		draw.Draw(s.canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
	case gif.DisposalPrevious:
		s.canvas = prev
	}

	return &Frame{Image: out}, nil
}

// FrameCount returns the number of frames in the GIF
func (s *GifSource) FrameCount() int {
	if s.g == nil {
		return 0
	}
	return len(s.g.Image)
}

// FrameRate derives a rate from the average frame delay
func (s *GifSource) FrameRate() float64 {
	if s.g == nil || len(s.g.Image) == 0 {
		return 0
	}
	var total time.Duration
	for i := range s.g.Image {
		total += s.delay(i)
	}
	return float64(len(s.g.Image)) / total.Seconds()
}

// Close drops the decoded GIF
func (s *GifSource) Close() error {
	s.g = nil
	s.canvas = nil
	return nil
}

func (s *GifSource) disposal(i int) byte {
	if i < len(s.g.Disposal) {
		return s.g.Disposal[i]
	}
	return 0
}

// delay follows the browser convention: delays under 20ms play at 100ms
func (s *GifSource) delay(i int) time.Duration {
	var d time.Duration
	if i < len(s.g.Delay) {
		d = time.Duration(s.g.Delay[i]) * 10 * time.Millisecond
	}
	if d < 20*time.Millisecond {
		d = 100 * time.Millisecond
	}
	return d
}

func cloneRGBA(img *image.RGBA) *image.RGBA {
	cp := image.NewRGBA(img.Bounds())
	copy(cp.Pix, img.Pix)
	return cp
}
