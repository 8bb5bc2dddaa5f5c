// handpong is a hand-tracked pong game for the terminal.
//
// Usage:
//
//	handpong play              - Play locally (keyboard-driven virtual hands)
//	handpong simulate          - Run a recorded hand script headless
//	handpong scores            - Show the leaderboard
//	handpong serve             - Start SSH server for remote play
//	handpong sources           - List hand input sources
//
// Global flags:
//
//	--fps <rate>     - Display refresh rate (default: 60)
//	--seed <value>   - RNG seed for reproducible serves
//	--db <path>      - Database path (default: ~/.handpong/scores.db)
//	--config <path>  - Gameplay config YAML
//	--log <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hand-pong/internal/config"
	// Import hand sources to register them
	_ "github.com/vovakirdan/hand-pong/internal/handinput"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "handpong",
	Short: "Hand Pong - two-paddle pong steered by your hands",
	Long: `Hand Pong is a two-paddle pong game where tracked hands move the paddles
and can bat the ball directly. In the terminal the hands are simulated from
the keyboard; recorded hand scripts can be replayed headless.

Available commands:
  play      - Play in the terminal
  simulate  - Replay a hand script and print the final state
  scores    - View the leaderboard
  serve     - Start SSH server for remote play
  sources   - List hand input sources

Examples:
  handpong play
  handpong play --seed 42
  handpong simulate --script run.yaml
  handpong serve --ssh :2222
  handpong scores`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Display refresh rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.handpong/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom gameplay config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sourcesCmd)
}

// loadConfig reads the gameplay configuration named by --config.
func loadConfig() (config.Config, error) {
	return config.Load(flagConfig)
}

// newLogger returns a logger writing to --log, or to fallback when no log
// file is set. The returned close function is always safe to call.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	w := fallback
	closeFn := func() {}
	if flagLogPath != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogPath), 0o755); err != nil {
			return nil, closeFn, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closeFn, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "handpong",
	})
	return logger, closeFn, nil
}
