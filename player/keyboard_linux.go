//go:build linux

package player

import (
	"fmt"
	"os"
	"unicode"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// RawKeyboard reads single keypresses from a terminal without blocking.
// The terminal is put in non-canonical mode with VMIN=0 and VTIME=0 so a
// read returns immediately when nothing is pending.
type RawKeyboard struct {
	fd      int
	old     *unix.Termios
	buf     [32]byte
	pending []byte // read but not yet returned
}

// OpenKeyboard switches f into non-blocking, no-echo input mode.
// Call Close to restore the previous settings.
func OpenKeyboard(f *os.File) (*RawKeyboard, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}

	old, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, fmt.Errorf("failed to read terminal settings: %w", err)
	}

	// ISIG stays on so ctrl+c still raises SIGINT
	raw := *old
	raw.Lflag &^= unix.ECHO | unix.ICANON
	raw.Iflag &^= unix.IXON | unix.ICRNL
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		return nil, fmt.Errorf("failed to set terminal settings: %w", err)
	}

	return &RawKeyboard{fd: fd, old: old}, nil
}

// PollKey returns the next pending keypress, lowercased. Bytes that arrive
// together are queued and handed out one per call. An escape sequence
// (arrow keys and the like) is consumed whole and reports no key.
func (k *RawKeyboard) PollKey() (rune, bool) {
	if len(k.pending) == 0 {
		n, err := unix.Read(k.fd, k.buf[:])
		if err != nil || n <= 0 {
			return 0, false
		}
		k.pending = k.buf[:n]
	}

	b := k.pending[0]
	if b == 0x1b {
		k.pending = k.pending[escapeLen(k.pending):]
		return 0, false
	}
	k.pending = k.pending[1:]
	return unicode.ToLower(rune(b)), true
}

// escapeLen returns the length of the escape sequence at the start of p.
// CSI sequences run to their final byte, SS3 sequences take one more byte
// and anything else is a lone ESC.
func escapeLen(p []byte) int {
	if len(p) < 2 {
		return len(p)
	}
	switch p[1] {
	case '[':
		for i := 2; i < len(p); i++ {
			if p[i] >= 0x40 && p[i] <= 0x7e {
				return i + 1
			}
		}
		return len(p)
	case 'O':
		return min(3, len(p))
	}
	return 1
}

// Close restores the terminal settings saved by OpenKeyboard
func (k *RawKeyboard) Close() error {
	return unix.IoctlSetTermios(k.fd, unix.TCSETS, k.old)
}
