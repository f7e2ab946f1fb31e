package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/njyeung/asciireel/ascii"
	"github.com/njyeung/asciireel/player"
	"github.com/spf13/cobra"
)

var (
	frameIndex int
	width      int
	colored    bool
)

var rootCmd = &cobra.Command{
	Use:          "snapshot <video>",
	Short:        "Print a single frame of a video as ASCII art",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().IntVarP(&frameIndex, "frame", "n", 0, "Zero-based index of the frame to print")
	rootCmd.Flags().IntVarP(&width, "width", "w", 80, "Width in characters")
	rootCmd.Flags().BoolVarP(&colored, "color", "c", false, "Render with 24-bit color")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	src, err := player.Open(args[0])
	if err != nil {
		return err
	}
	defer src.Close()

	frame, err := nthFrame(src, frameIndex)
	if err != nil {
		return err
	}

	out := ascii.Render(frame.Image, width, colored, ascii.DefaultPalette)
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// nthFrame skips n non-empty frames and returns the next one
func nthFrame(src player.Source, n int) (*player.Frame, error) {
	for i := 0; ; {
		frame, err := src.NextFrame()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("video has only %d frames", i)
		}
		if err != nil {
			return nil, err
		}
		if frame.Empty() {
			continue
		}
		if i == n {
			return frame, nil
		}
		i++
	}
}
