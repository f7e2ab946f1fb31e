package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, closeFn, err := New(tt.verbose, "")
			if err != nil {
				t.Fatal(err)
			}
			defer closeFn()

			ctx := context.Background()
			if got := logger.Enabled(ctx, slog.LevelDebug); got != tt.wantDebug {
				t.Errorf("debug enabled = %v, want %v", got, tt.wantDebug)
			}
			if !logger.Enabled(ctx, slog.LevelWarn) {
				t.Error("warn should always be enabled")
			}
		})
	}
}

func TestNewLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "play.log")
	logger, closeFn, err := New(true, path)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("state change", "to", "paused")
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "state change") || !strings.Contains(out, "to=paused") {
		t.Errorf("log file = %q, want the debug record", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("log file contains color escapes: %q", out)
	}
}

func TestNewLogFileError(t *testing.T) {
	_, closeFn, err := New(false, filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	if err == nil {
		t.Fatal("expected an error for an unwritable path")
	}
	if closeFn == nil {
		t.Fatal("close func must never be nil")
	}
}
