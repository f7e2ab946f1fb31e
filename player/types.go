package player

import (
	"image"
	"time"
)

// Source supplies decoded frames in presentation order.
type Source interface {
	// NextFrame returns the next frame, or io.EOF once the stream is exhausted
	NextFrame() (*Frame, error)

	// FrameCount returns the number of frames in the stream, 0 if unknown
	FrameCount() int

	// FrameRate returns the native frame rate, 0 if unknown
	FrameRate() float64

	// Close releases the decoder and the underlying file
	Close() error
}

// Screen is the terminal output sink
type Screen interface {
	// Columns returns the terminal width in cells
	Columns() int

	// Clear erases the screen and homes the cursor
	Clear() error

	// Write queues text for output
	Write(text string) error

	// Flush pushes queued output to the terminal
	Flush() error

	// Reset restores default colors and cursor visibility
	Reset() error
}

// Keyboard reports keypresses without blocking
type Keyboard interface {
	// PollKey returns the pending key, if any, lowercased
	PollKey() (rune, bool)
}

// Opener opens a decode source for a path
type Opener func(path string) (Source, error)

// Frame represents a decoded video frame
type Frame struct {
	Image *image.RGBA
}

// Empty reports whether the frame carries no pixels
func (f *Frame) Empty() bool {
	return f == nil || f.Image == nil || f.Image.Bounds().Empty()
}

const (
	// FallbackFPS is used when neither the caller nor the source supplies a rate
	FallbackFPS = 24

	// PausePollInterval is how often input is polled while paused
	PausePollInterval = 50 * time.Millisecond

	// DefaultColumns is assumed when the terminal width cannot be queried
	DefaultColumns = 80
)

const (
	keyPause     = ' '
	keyQuit      = 'q'
	keyInterrupt = 0x03 // ctrl+c in raw mode
)

// NoKeys is a Keyboard that never reports a key
type NoKeys struct{}

func (NoKeys) PollKey() (rune, bool) { return 0, false }
