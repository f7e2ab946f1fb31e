//go:build !linux

package player

import (
	"fmt"
	"os"
	"runtime"
)

// RawKeyboard is only implemented on linux
type RawKeyboard struct{}

// OpenKeyboard reports that raw input is unavailable; callers fall back to NoKeys
func OpenKeyboard(f *os.File) (*RawKeyboard, error) {
	return nil, fmt.Errorf("raw keyboard input is not supported on %s", runtime.GOOS)
}

func (k *RawKeyboard) PollKey() (rune, bool) { return 0, false }

func (k *RawKeyboard) Close() error { return nil }
