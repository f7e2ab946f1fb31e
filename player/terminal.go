package player

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

const (
	syncBegin  = "\x1b[?2026h"
	syncEnd    = "\x1b[?2026l"
	clearHome  = "\x1b[H\x1b[2J"
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
	sgrReset   = "\x1b[0m"
)

// Terminal is a Screen backed by a buffered writer. Each frame between
// Clear and Flush is wrapped in a synchronized update so supporting
// terminals present it at once.
type Terminal struct {
	out     *bufio.Writer
	columns func() int
	syncing bool
}

// NewTerminal writes to f and queries its window size
func NewTerminal(f *os.File) *Terminal {
	fd := int(f.Fd())
	return newTerminal(f, func() int {
		cols, _, _, _, err := GetTerminalSize(fd)
		if err != nil || cols == 0 {
			return DefaultColumns
		}
		return cols
	})
}

func newTerminal(w io.Writer, columns func() int) *Terminal {
	return &Terminal{
		out:     bufio.NewWriterSize(w, 64*1024),
		columns: columns,
	}
}

// Columns returns the terminal width in cells
func (t *Terminal) Columns() int {
	return t.columns()
}

// Clear starts a synchronized update and erases the screen
func (t *Terminal) Clear() error {
	if !t.syncing {
		t.out.WriteString(syncBegin)
		t.syncing = true
	}
	_, err := t.out.WriteString(hideCursor + clearHome)
	return err
}

// Write queues text
func (t *Terminal) Write(text string) error {
	_, err := t.out.WriteString(text)
	return err
}

// Flush ends any open synchronized update and writes everything out
func (t *Terminal) Flush() error {
	if t.syncing {
		t.out.WriteString(syncEnd)
		t.syncing = false
	}
	return t.out.Flush()
}

// Reset restores colors and the cursor
func (t *Terminal) Reset() error {
	if _, err := t.out.WriteString(sgrReset + showCursor); err != nil {
		return err
	}
	return t.Flush()
}

// GetTerminalSize returns terminal dimensions (cols, rows, widthPx, heightPx)
func GetTerminalSize(fd int) (cols, rows, widthPx, heightPx int, err error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return int(ws.Col), int(ws.Row), int(ws.Xpixel), int(ws.Ypixel), nil
}
