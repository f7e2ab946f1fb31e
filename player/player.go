package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/njyeung/asciireel/ascii"
)

// Options configures a playback
type Options struct {
	// Width in characters; 0 derives it from the terminal at start
	Width int

	// FPS overrides the source's native rate when positive
	FPS float64

	// Colored emits 24-bit color escapes around every glyph
	Colored bool

	// Palette defaults to ascii.DefaultPalette
	Palette ascii.Palette

	Logger *slog.Logger
}

// Result describes how a playback ended
type Result struct {
	State  State
	Frames int   // frames rendered
	Err    error // NotFound, OpenFailure or a decode/write failure
}

// Controller owns a decode source for the duration of Play and drives
// decode, render, write, input poll and sleep strictly in sequence.
type Controller struct {
	open   Opener
	screen Screen
	keys   Keyboard
	opts   Options
	log    *slog.Logger

	// sleep blocks for d or until ctx is done
	sleep func(ctx context.Context, d time.Duration) error
}

// NewController creates a controller; keys may be nil when no keyboard is available
func NewController(open Opener, screen Screen, keys Keyboard, opts Options) *Controller {
	if keys == nil {
		keys = NoKeys{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if len(opts.Palette) == 0 {
		opts.Palette = ascii.DefaultPalette
	}
	return &Controller{
		open:   open,
		screen: screen,
		keys:   keys,
		opts:   opts,
		log:    logger,
		sleep:  sleepContext,
	}
}

// Play opens path and plays it until the stream ends, the user quits or
// ctx is cancelled. Every failure is reported on the screen and in the
// returned Result; none escape as a panic or an unhandled error.
func (c *Controller) Play(ctx context.Context, path string) Result {
	if err := checkFile(path); err != nil {
		c.notice(errorStyle, fmt.Sprintf("Error: '%s' not found.", path))
		return Result{State: Idle, Err: err}
	}

	src, err := c.open(path)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.notice(errorStyle, fmt.Sprintf("Error: '%s' not found.", path))
		} else {
			c.notice(errorStyle, "Failed to open video.")
			if !errors.Is(err, ErrOpenFailure) {
				err = fmt.Errorf("%w: %w", ErrOpenFailure, err)
			}
		}
		c.log.Debug("open failed", "path", path, "err", err)
		return Result{State: Idle, Err: err}
	}

	defer func() {
		if err := c.screen.Reset(); err != nil {
			c.log.Warn("terminal reset failed", "err", err)
		}
	}()
	defer func() {
		if err := src.Close(); err != nil {
			c.log.Warn("closing source failed", "err", err)
		}
	}()

	s := c.newSession(src)
	c.log.Debug("playback starting",
		"path", path,
		"width", s.width,
		"fps", s.fps,
		"native_fps", src.FrameRate(),
		"frames", s.total,
		"colored", s.colored,
	)

	return s.run(ctx)
}

func (c *Controller) newSession(src Source) *session {
	width := c.opts.Width
	if width <= 0 {
		width = c.screen.Columns() / 2
	}
	width = max(1, width)

	fps := c.opts.FPS
	if fps <= 0 {
		fps = src.FrameRate()
	}
	if fps <= 0 {
		fps = FallbackFPS
	}

	return &session{
		c:        c,
		src:      src,
		state:    Running,
		width:    width,
		colored:  c.opts.Colored,
		fps:      fps,
		interval: time.Duration(float64(time.Second) / fps),
		total:    src.FrameCount(),
	}
}

// notice writes a one-line message below whatever is on screen
func (c *Controller) notice(style lipgloss.Style, msg string) {
	if err := c.screen.Write("\n" + style.Render(msg) + "\n"); err != nil {
		c.log.Warn("writing notice failed", "err", err)
		return
	}
	if err := c.screen.Flush(); err != nil {
		c.log.Warn("flushing notice failed", "err", err)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
