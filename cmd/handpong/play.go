package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hand-pong/internal/platform/tui"
	"github.com/vovakirdan/hand-pong/internal/registry"
	"github.com/vovakirdan/hand-pong/internal/storage"
)

var (
	flagSource string
	flagScript string
	flagUser   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a hand-pong session in the terminal.

The menu asks for the mode (single player vs AI, or two players), your
name in single player, and the difficulty. With the keyboard source the
hands are simulated:

Controls:
  W/S        - Move the left hand
  Up/Down    - Move the right hand (the left one in single player)
  P          - Pause
  R          - Play again (after a round ends)
  B/Esc      - Back to menu
  Q/Ctrl+C   - Quit

Single-player wins are saved to the leaderboard.

Examples:
  handpong play
  handpong play --user ada --seed 7
  handpong play --source replay --script run.yaml
  handpong play --log ~/.handpong/handpong.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSource, "source", tui.DefaultSource, "Hand input source (see 'handpong sources')")
	playCmd.Flags().StringVar(&flagScript, "script", "", "Hand script for the replay source")
	playCmd.Flags().StringVar(&flagUser, "user", os.Getenv("USER"), "Default player name")
}

func runPlay(_ *cobra.Command, _ []string) {
	if !registry.Exists(flagSource) {
		fmt.Fprintf(os.Stderr, "Error: unknown hand source %q\n", flagSource)
		fmt.Fprintln(os.Stderr, "Run 'handpong sources' to see available sources.")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Logs would corrupt the alt screen, so they only go to --log.
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(tui.Options{
		Config:   cfg,
		Store:    store,
		Logger:   logger,
		Source:   flagSource,
		Script:   flagScript,
		FPS:      flagFPS,
		Seed:     flagSeed,
		Username: flagUser,
		Width:    width,
		Height:   height,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}
