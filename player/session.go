package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/njyeung/asciireel/ascii"
)

// session is the mutable state of one playback. Only its own loop touches it.
type session struct {
	c   *Controller
	src Source

	state    State
	frames   int // frames rendered so far
	total    int // frames in the stream, 0 if unknown
	width    int
	colored  bool
	fps      float64
	interval time.Duration
}

// run is the tick loop. While running: pull, render, clear+write+flush,
// count, poll, sleep one frame interval. While paused: poll, sleep briefly.
// Sleeps are fixed, so slow rendering delays frames rather than dropping them.
func (s *session) run(ctx context.Context) Result {
	for {
		if ctx.Err() != nil {
			return s.finish(evInterrupt, nil)
		}

		if s.state == Running {
			frame, err := s.src.NextFrame()
			if errors.Is(err, io.EOF) {
				return s.finish(evEndOfStream, nil)
			}
			if err != nil {
				s.c.log.Warn("decode failed", "frame", s.frames, "err", err)
				return s.finish(evEndOfStream, fmt.Errorf("decode frame %d: %w", s.frames, err))
			}

			if frame.Empty() {
				s.c.log.Debug("skipping empty frame", "after", s.frames)
			} else if err := s.show(frame); err != nil {
				s.c.log.Warn("write failed", "frame", s.frames, "err", err)
				return s.finish(evEndOfStream, fmt.Errorf("write frame %d: %w", s.frames, err))
			}
		}

		if key, ok := s.c.keys.PollKey(); ok {
			if ev, ok := keyEvent(key); ok {
				if res, done := s.handle(ev); done {
					return res
				}
			}
		}

		d := s.interval
		if s.state == Paused {
			d = PausePollInterval
		}
		if err := s.c.sleep(ctx, d); err != nil {
			return s.finish(evInterrupt, nil)
		}
	}
}

func (s *session) show(frame *Frame) error {
	text := ascii.Render(frame.Image, s.width, s.colored, s.c.opts.Palette)

	scr := s.c.screen
	if err := scr.Clear(); err != nil {
		return err
	}
	if err := scr.Write(text); err != nil {
		return err
	}
	if err := scr.Flush(); err != nil {
		return err
	}
	s.frames++
	return nil
}

// handle applies a key event; done is true when the loop must stop
func (s *session) handle(ev event) (Result, bool) {
	if ev != evTogglePause {
		return s.finish(ev, nil), true
	}

	s.setState(transition(s.state, ev))
	if s.state == Paused {
		s.c.notice(statusStyle, s.status("[Paused]"))
	} else {
		s.c.notice(statusStyle, s.status("[Resumed]"))
	}
	return Result{}, false
}

// status builds the pause line, truncated so it never wraps
func (s *session) status(label string) string {
	line := label
	if s.state == Paused {
		if s.total > 0 {
			line = fmt.Sprintf("%s frame %d/%d", label, s.frames, s.total)
		} else {
			line = fmt.Sprintf("%s frame %d", label, s.frames)
		}
	}
	return runewidth.Truncate(line, max(1, s.c.screen.Columns()), "…")
}

func (s *session) setState(next State) {
	if next != s.state {
		s.c.log.Debug("state change", "from", s.state, "to", next, "frames", s.frames)
		s.state = next
	}
}

// finish moves to a terminal state and prints the matching message
func (s *session) finish(ev event, err error) Result {
	s.setState(transition(s.state, ev))

	switch {
	case err != nil:
		s.c.notice(errorStyle, "Playback stopped: "+err.Error())
	case ev == evEndOfStream:
		s.c.notice(doneStyle, "Done! Video playback finished.")
	case ev == evQuit:
		s.c.notice(stopStyle, "Quit by user.")
	case ev == evInterrupt:
		s.c.notice(stopStyle, "Interrupted by user.")
	}

	return Result{State: s.state, Frames: s.frames, Err: err}
}
