// Package sim drives the physics engine in real time: a fixed-timestep loop
// fed by frame deltas, and the session state machine that decides when the
// engine may run.
package sim

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/hand-pong/internal/config"
	"github.com/vovakirdan/hand-pong/internal/core"
	"github.com/vovakirdan/hand-pong/internal/names"
	"github.com/vovakirdan/hand-pong/internal/pong"
)

// Session errors.
var (
	ErrInvalidTransition = errors.New("sim: invalid session transition")
	ErrUsernameTooShort  = errors.New("sim: username must be at least 2 characters")
	ErrNoMode            = errors.New("sim: no session mode chosen")
)

// State is a session state.
type State int

const (
	StateIdle State = iota
	StateModeChosen
	StateDifficultyChosen
	StateActive
	StateRoundEnd
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateModeChosen:
		return "ModeChosen"
	case StateDifficultyChosen:
		return "DifficultyChosen"
	case StateActive:
		return "Active"
	case StateRoundEnd:
		return "RoundEnd"
	default:
		return "Unknown"
	}
}

// Listener receives session signals. Calls happen on the goroutine driving
// the loop, inside Loop.Frame.
type Listener interface {
	OnScoreChanged(player1, player2 int)
	OnRoundEnd(winner pong.Side)
}

// ListenerFuncs adapts optional functions to Listener.
type ListenerFuncs struct {
	ScoreChanged func(player1, player2 int)
	RoundEnd     func(winner pong.Side)
}

// OnScoreChanged calls ScoreChanged if set.
func (f ListenerFuncs) OnScoreChanged(player1, player2 int) {
	if f.ScoreChanged != nil {
		f.ScoreChanged(player1, player2)
	}
}

// OnRoundEnd calls RoundEnd if set.
func (f ListenerFuncs) OnRoundEnd(winner pong.Side) {
	if f.RoundEnd != nil {
		f.RoundEnd(winner)
	}
}

// SessionOptions configures a Session.
type SessionOptions struct {
	Random   core.Random      // Defaults to a source seeded with 0
	Logger   *log.Logger      // Defaults to a discard logger
	Listener Listener         // May be nil
	Names    *names.Generator // Nil selects the fallback names
	Width    float64          // Canvas width; defaults to the config
	Height   float64          // Canvas height; defaults to the config
}

// RoundResult summarizes a finished round.
type RoundResult struct {
	SessionID  string
	Mode       pong.Mode
	Difficulty config.Difficulty
	Username   string
	Player1    string
	Player2    string
	Score1     int
	Score2     int
	Winner     pong.Side
	Elapsed    time.Duration
}

// WinnerName returns the display name of the winning side.
func (r RoundResult) WinnerName() string {
	if r.Winner == pong.SideRight {
		return r.Player2
	}
	return r.Player1
}

// Session is the game session state machine:
// Idle -> ModeChosen -> DifficultyChosen -> Active -> RoundEnd -> Active | Idle.
// The engine only advances while Active.
type Session struct {
	cfg      config.Config
	id       string
	rng      core.Random
	logger   *log.Logger
	listener Listener
	names    *names.Generator

	state      State
	mode       pong.Mode
	difficulty config.Difficulty
	username   string
	players    [2]string
	width      float64
	height     float64

	engine    *pong.Engine
	elapsedMS float64
	winner    pong.Side
	rounds    int
}

// NewSession creates an idle session.
func NewSession(cfg config.Config, opts SessionOptions) *Session {
	if opts.Random == nil {
		opts.Random = core.NewRandom(0)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Width <= 0 {
		opts.Width = float64(cfg.Canvas.Width)
	}
	if opts.Height <= 0 {
		opts.Height = float64(cfg.Canvas.Height)
	}
	return &Session{
		cfg:      cfg,
		id:       uuid.NewString(),
		rng:      opts.Random,
		logger:   opts.Logger,
		listener: opts.Listener,
		names:    opts.Names,
		width:    opts.Width,
		height:   opts.Height,
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Mode returns the chosen mode.
func (s *Session) Mode() pong.Mode { return s.mode }

// Difficulty returns the chosen difficulty.
func (s *Session) Difficulty() config.Difficulty { return s.difficulty }

// Username returns the single-player username.
func (s *Session) Username() string { return s.username }

// Active reports whether the engine may run.
func (s *Session) Active() bool { return s.state == StateActive }

// Engine returns the running engine, or nil before the first round.
func (s *Session) Engine() *pong.Engine { return s.engine }

// Winner returns the winner of the last finished round.
func (s *Session) Winner() pong.Side { return s.winner }

// SetListener replaces the signal listener.
func (s *Session) SetListener(l Listener) { s.listener = l }

// ChooseMode selects single-player or two-player play. It is allowed from
// Idle and to re-pick while still choosing.
func (s *Session) ChooseMode(m pong.Mode) error {
	if m != pong.ModeSinglePlayer && m != pong.ModeTwoPlayer {
		return fmt.Errorf("%w: unknown mode %d", ErrNoMode, m)
	}
	if s.state != StateIdle && s.state != StateModeChosen {
		return fmt.Errorf("%w: choose mode from %s", ErrInvalidTransition, s.state)
	}
	s.mode = m
	s.state = StateModeChosen
	return nil
}

// SetUsername records the single-player name, trimmed and cut to 20 runes.
func (s *Session) SetUsername(name string) error {
	if !names.Valid(name) {
		return ErrUsernameTooShort
	}
	s.username = names.Normalize(name)
	return nil
}

// ChooseDifficulty selects the difficulty and moves to DifficultyChosen.
func (s *Session) ChooseDifficulty(d config.Difficulty) error {
	switch s.state {
	case StateModeChosen, StateDifficultyChosen:
	case StateIdle:
		return ErrNoMode
	default:
		return fmt.Errorf("%w: choose difficulty from %s", ErrInvalidTransition, s.state)
	}
	if _, err := config.ParseDifficulty(string(d)); err != nil {
		return err
	}
	s.difficulty = d
	s.state = StateDifficultyChosen
	return nil
}

// Start begins the first round. Single-player sessions need a username.
func (s *Session) Start() error {
	if s.state != StateDifficultyChosen {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, s.state)
	}
	if s.mode == pong.ModeSinglePlayer && s.username == "" {
		return ErrUsernameTooShort
	}

	s.assignPlayers()
	s.engine = pong.NewEngine(s.cfg, pong.Options{
		Mode:       s.mode,
		Difficulty: s.difficulty,
		Width:      s.width,
		Height:     s.height,
		Random:     s.rng,
	})
	s.beginRound()
	s.logger.Info("session started",
		"session", s.id,
		"mode", s.mode,
		"difficulty", s.difficulty,
		"left", s.players[0],
		"right", s.players[1],
	)
	return nil
}

// PlayAgain starts a new round with the same players after a round end.
func (s *Session) PlayAgain() error {
	if s.state != StateRoundEnd {
		return fmt.Errorf("%w: play again from %s", ErrInvalidTransition, s.state)
	}
	s.engine.Start()
	s.beginRound()
	return nil
}

// BackToMenu returns to Idle, clearing mode, username and names. The next
// game gets a fresh session ID.
func (s *Session) BackToMenu() {
	s.id = uuid.NewString()
	s.rounds = 0
	s.state = StateIdle
	s.mode = pong.ModeNone
	s.difficulty = ""
	s.username = ""
	s.players = [2]string{}
	s.engine = nil
	s.elapsedMS = 0
}

func (s *Session) beginRound() {
	s.elapsedMS = 0
	s.rounds++
	s.state = StateActive
	s.notifyScore()
}

func (s *Session) assignPlayers() {
	switch s.mode {
	case pong.ModeSinglePlayer:
		s.players[0] = s.username
		if s.names != nil {
			s.players[1] = s.names.Next()
		} else {
			s.players[1] = names.Fallback(s.rounds)
		}
	case pong.ModeTwoPlayer:
		if s.names != nil {
			s.players[0], s.players[1] = s.names.Pair()
		} else {
			s.players[0], s.players[1] = names.Fallback(0), names.Fallback(1)
		}
	}
}

// Players returns the display names of the left and right sides.
func (s *Session) Players() (string, string) {
	left, right := s.players[0], s.players[1]
	if s.mode == pong.ModeTwoPlayer {
		if left == "" {
			left = "Player 1"
		}
		if right == "" {
			right = "Player 2"
		}
		return left, right
	}
	if left == "" {
		left = "You"
	}
	if right == "" {
		right = "AI"
	}
	return left, right
}

// Resize adopts new canvas dimensions; a running engine re-serves.
func (s *Session) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	if s.engine != nil {
		s.engine.Resize(width, height)
	}
}

// Elapsed returns the active play time of the current round, accumulated
// from the supplied frame deltas.
func (s *Session) Elapsed() time.Duration {
	return time.Duration(s.elapsedMS * float64(time.Millisecond))
}

// ElapsedText formats Elapsed as mm:ss.
func (s *Session) ElapsedText() string {
	secs := int(s.Elapsed() / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// Result summarizes the current or last round.
func (s *Session) Result() RoundResult {
	left, right := s.Players()
	r := RoundResult{
		SessionID:  s.id,
		Mode:       s.mode,
		Difficulty: s.difficulty,
		Username:   s.username,
		Player1:    left,
		Player2:    right,
		Winner:     s.winner,
		Elapsed:    s.Elapsed(),
	}
	if s.engine != nil {
		r.Score1 = s.engine.Score.Player1
		r.Score2 = s.engine.Score.Player2
	}
	return r
}

// addElapsed accumulates active time.
func (s *Session) addElapsed(deltaMS float64) {
	if s.state == StateActive {
		s.elapsedMS += deltaMS
	}
}

// tick runs one fixed step when Active.
func (s *Session) tick(hands core.HandFrame, dt float64) {
	if s.state != StateActive || s.engine == nil {
		return
	}
	s.engine.ApplyHands(hands)
	s.engine.Advance(dt)

	point, scored := s.engine.CheckScore()
	if !scored {
		return
	}
	s.notifyScore()
	if point.Won {
		s.endRound(point.Winner)
	}
}

func (s *Session) endRound(winner pong.Side) {
	s.state = StateRoundEnd
	s.winner = winner
	r := s.Result()
	s.logger.Info("round ended",
		"session", s.id,
		"winner", r.WinnerName(),
		"score", fmt.Sprintf("%d-%d", r.Score1, r.Score2),
		"elapsed", s.ElapsedText(),
	)
	if s.listener != nil {
		s.listener.OnRoundEnd(winner)
	}
}

func (s *Session) notifyScore() {
	if s.listener != nil && s.engine != nil {
		s.listener.OnScoreChanged(s.engine.Score.Player1, s.engine.Score.Player2)
	}
}

// interpolate updates the ball's render position while Active.
func (s *Session) interpolate(alpha float64) {
	if s.state == StateActive && s.engine != nil {
		s.engine.Interpolate(alpha)
	}
}
