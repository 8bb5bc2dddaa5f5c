package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/hand-pong/internal/config"
	"github.com/vovakirdan/hand-pong/internal/core"
	"github.com/vovakirdan/hand-pong/internal/handinput"
	"github.com/vovakirdan/hand-pong/internal/names"
	"github.com/vovakirdan/hand-pong/internal/pong"
	"github.com/vovakirdan/hand-pong/internal/sim"
)

var (
	flagSimScript     string
	flagSimMode       string
	flagSimDifficulty string
	flagSimStop       bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay a hand script headless",
	Long: `Run a session on a recorded hand script without a terminal UI and print
the final state as YAML, with a hash of the simulated fields.

A script lists rendered frames: the frame delta in milliseconds and the
hands tracked during that frame. Equal scripts and seeds always produce
the same hash, whatever the frame deltas were.

Script format:
  seed: 42
  mode: single          # single | two
  difficulty: normal    # easy | normal | hard
  frames:
    - delta_ms: 16.7
      repeat: 120
      hands:
        - id: 0
          control: {x: 250, y: 300}

Examples:
  handpong simulate --script run.yaml
  handpong simulate --script run.yaml --difficulty hard --seed 7
  handpong simulate --script run.yaml --stop-at-round-end`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagSimScript, "script", "", "Hand script YAML (required)")
	simulateCmd.Flags().StringVar(&flagSimMode, "mode", "", "Override the script mode: single, two")
	simulateCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "", "Override the script difficulty: easy, normal, hard")
	simulateCmd.Flags().BoolVar(&flagSimStop, "stop-at-round-end", false, "Stop as soon as a side wins")
	_ = simulateCmd.MarkFlagRequired("script")
}

// simulation is the report printed by the simulate command.
type simulation struct {
	Session    string        `yaml:"session"`
	Seed       int64         `yaml:"seed"`
	Mode       string        `yaml:"mode"`
	Difficulty string        `yaml:"difficulty"`
	State      string        `yaml:"state"`
	Frames     uint64        `yaml:"frames"`
	Ticks      uint64        `yaml:"ticks"`
	Elapsed    string        `yaml:"elapsed"`
	Players    [2]string     `yaml:"players"`
	Winner     string        `yaml:"winner,omitempty"`
	Hash       string        `yaml:"hash"`
	Snapshot   pong.Snapshot `yaml:"snapshot"`
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	script, err := handinput.LoadScript(flagSimScript)
	if err != nil {
		return err
	}
	if flagSimMode != "" {
		script.Mode = flagSimMode
	}
	if flagSimDifficulty != "" {
		script.Difficulty = flagSimDifficulty
	}
	if flagSeed != 0 {
		script.Seed = flagSeed
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	report, err := simulate(cfg, script, logger, flagSimStop)
	if err != nil {
		return err
	}
	return writeReport(cmd.OutOrStdout(), report)
}

// simulate runs script to its end, or to the first round end when stop is set.
func simulate(cfg config.Config, script *handinput.Script, logger *log.Logger, stop bool) (simulation, error) {
	if script.Mode == "" {
		script.Mode = pong.ModeSinglePlayer.String()
	}
	mode, err := pong.ParseMode(script.Mode)
	if err != nil {
		return simulation{}, err
	}
	difficulty, err := config.ParseDifficulty(script.Difficulty)
	if err != nil {
		return simulation{}, err
	}

	session := sim.NewSession(cfg, sim.SessionOptions{
		Random: core.NewRandom(script.Seed),
		Logger: logger,
		Names:  names.New(core.NewRandom(script.Seed + 1)),
		Listener: sim.ListenerFuncs{
			ScoreChanged: func(p1, p2 int) {
				logger.Debug("score", "left", p1, "right", p2)
			},
		},
	})
	if err := session.ChooseMode(mode); err != nil {
		return simulation{}, err
	}
	if mode == pong.ModeSinglePlayer {
		if err := session.SetUsername("replay"); err != nil {
			return simulation{}, err
		}
	}
	if err := session.ChooseDifficulty(difficulty); err != nil {
		return simulation{}, err
	}
	if err := session.Start(); err != nil {
		return simulation{}, err
	}

	replay := handinput.NewReplay(script)
	loop := sim.NewLoop(session, cfg.Gameplay, sim.LoopOptions{
		Sampler: replay,
		Logger:  logger,
	})
	for {
		delta, ok := replay.Next()
		if !ok {
			break
		}
		loop.Frame(delta)
		if stop && session.State() == sim.StateRoundEnd {
			break
		}
	}

	engine := session.Engine()
	if engine == nil {
		return simulation{}, errors.New("simulate: session has no engine")
	}
	snap := engine.Snapshot()
	stats := loop.Stats()
	left, right := session.Players()
	report := simulation{
		Session:    session.ID(),
		Seed:       script.Seed,
		Mode:       mode.String(),
		Difficulty: string(difficulty),
		State:      session.State().String(),
		Frames:     stats.Frames,
		Ticks:      stats.Ticks,
		Elapsed:    session.ElapsedText(),
		Players:    [2]string{left, right},
		Hash:       fmt.Sprintf("%016x", snap.Hash()),
		Snapshot:   snap,
	}
	if session.State() == sim.StateRoundEnd {
		report.Winner = session.Result().WinnerName()
	}
	if stats.SampleErrors > 0 {
		logger.Warn("hand samples failed", "count", stats.SampleErrors)
	}
	return report, nil
}

func writeReport(w io.Writer, report simulation) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("simulate: encode report: %w", err)
	}
	return enc.Close()
}
