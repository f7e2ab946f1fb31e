package player

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is returned when the path does not name an existing file
	ErrNotFound = errors.New("not found")

	// ErrOpenFailure is returned when no decoder can open the file
	ErrOpenFailure = errors.New("failed to open video")
)

// Open picks a decode source for path by extension. GIFs are decoded in
// Go; everything else goes through FFmpeg.
func Open(path string) (Source, error) {
	if err := checkFile(path); err != nil {
		return nil, err
	}

	var (
		src Source
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif":
		src, err = OpenGif(path)
	default:
		src, err = OpenVideo(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenFailure, err)
	}
	return src, nil
}

func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}
	return nil
}
