package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/njyeung/asciireel/ascii"
	"github.com/njyeung/asciireel/internal/logging"
	"github.com/njyeung/asciireel/player"
	"github.com/njyeung/asciireel/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// flag values
var (
	width   int
	fps     float64
	colored bool
	palette string
	verbose bool
	logFile string
)

// exitError carries a failure that was already shown to the user
type exitError struct{ err error }

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:   "asciireel [video]",
	Short: "Play a video as ASCII art in the terminal",
	Long: `Play a video as ASCII art in the terminal.

Without a video argument the path, width, fps and color mode are asked for
interactively. During playback space pauses and resumes, q quits.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	rootCmd.Flags().IntVarP(&width, "width", "w", 0, "Width in characters (0 = half the terminal)")
	rootCmd.Flags().Float64VarP(&fps, "fps", "f", 0, "Playback rate (0 = the video's own rate)")
	rootCmd.Flags().BoolVarP(&colored, "color", "c", false, "Render with 24-bit color")
	rootCmd.Flags().StringVar(&palette, "palette", ascii.DefaultPalette.String(), "Glyphs from sparsest to densest")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var shown *exitError
		if !errors.As(err, &shown) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	if width < 0 {
		return fmt.Errorf("--width must be positive")
	}
	if fps < 0 {
		return fmt.Errorf("--fps must be positive")
	}
	pal, err := ascii.ParsePalette(palette)
	if err != nil {
		return fmt.Errorf("--palette: %w", err)
	}

	logger, closeLog, err := logging.New(verbose, logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	settings := tui.Settings{Width: width, FPS: fps, Colored: colored}
	if len(args) == 1 {
		settings.Path = args[0]
	} else {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("no video given and stdin is not a terminal to ask for one")
		}
		settings, err = tui.Prompt(settings)
		if errors.Is(err, tui.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var keys player.Keyboard = player.NoKeys{}
	if kb, err := player.OpenKeyboard(os.Stdin); err != nil {
		logger.Debug("keyboard controls disabled", "err", err)
	} else {
		defer kb.Close()
		keys = kb
	}

	c := player.NewController(player.Open, player.NewTerminal(os.Stdout), keys, player.Options{
		Width:   settings.Width,
		FPS:     settings.FPS,
		Colored: settings.Colored,
		Palette: pal,
		Logger:  logger,
	})

	res := c.Play(ctx, settings.Path)
	logger.Debug("playback ended", "state", res.State, "frames", res.Frames)
	if res.Err != nil {
		return &exitError{res.Err}
	}
	return nil
}
