package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hand-pong/internal/config"
	"github.com/vovakirdan/hand-pong/internal/core"
	"github.com/vovakirdan/hand-pong/internal/handinput"
	"github.com/vovakirdan/hand-pong/internal/names"
	"github.com/vovakirdan/hand-pong/internal/pong"
	"github.com/vovakirdan/hand-pong/internal/registry"
	"github.com/vovakirdan/hand-pong/internal/sim"
	"github.com/vovakirdan/hand-pong/internal/storage"
)

// DefaultSource is the hand source used when none is named.
const DefaultSource = "keyboard"

// Options configures a Model.
type Options struct {
	Config   config.Config
	Store    *storage.Store // May be nil; scores are then not saved
	Logger   *log.Logger    // Defaults to a discard logger
	Source   string         // Registered hand source name
	Script   string         // Script path for the replay source
	FPS      int            // Display refresh rate
	Seed     int64          // 0 means seed from the clock
	Username string         // Pre-fills the name prompt
	Width    int            // Terminal width in cells
	Height   int            // Terminal height in cells
}

// view is the screen the model is showing.
type view int

const (
	viewMenu view = iota
	viewGame
	viewScores
)

// Model is the top-level Bubble Tea model: menu -> game -> menu, with the
// leaderboard reachable from the menu. Every display frame drives the
// fixed-step loop with the real frame delta.
type Model struct {
	cfg      config.Config
	store    *storage.Store
	logger   *log.Logger
	runtime  core.RuntimeConfig
	username string

	session  *sim.Session
	loop     *sim.Loop
	keyboard *handinput.Keyboard // Nil unless the source is the keyboard

	screen    *core.Screen
	input     core.InputFrame
	keyMapper *KeyMapper
	keys      GameKeyMap
	help      help.Model

	menu   MenuModel
	scores ScoreboardModel
	view   view

	paused   bool
	recorded bool // The finished round has been stored
	status   string
	quitting bool
}

// NewModel creates the host model and its hand source.
func NewModel(opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Source == "" {
		opts.Source = DefaultSource
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	runtime := core.DefaultConfig()
	if opts.FPS > 0 {
		runtime.TickRate = opts.FPS
	}
	runtime.Seed = opts.Seed
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = runtime.ScreenW, runtime.ScreenH
	}
	runtime = canvasFor(runtime, opts.Config, opts.Width, opts.Height)

	sampler, err := registry.Create(opts.Source, registry.Options{
		CanvasW:    float64(runtime.CanvasW),
		CanvasH:    float64(runtime.CanvasH),
		ScriptPath: opts.Script,
		Landmarks:  true,
	})
	if err != nil {
		return Model{}, fmt.Errorf("tui: hand source: %w", err)
	}
	keyboard, _ := sampler.(*handinput.Keyboard)

	session := sim.NewSession(opts.Config, sim.SessionOptions{
		Random: core.NewRandom(opts.Seed),
		Logger: opts.Logger,
		Names:  names.New(core.NewRandom(opts.Seed + 1)),
		Width:  float64(runtime.CanvasW),
		Height: float64(runtime.CanvasH),
	})
	loop := sim.NewLoop(session, opts.Config.Gameplay, sim.LoopOptions{
		Sampler: sampler,
		Logger:  opts.Logger,
	})

	h := help.New()
	h.Width = opts.Width

	return Model{
		cfg:       opts.Config,
		store:     opts.Store,
		logger:    opts.Logger,
		runtime:   runtime,
		username:  opts.Username,
		session:   session,
		loop:      loop,
		keyboard:  keyboard,
		screen:    core.NewScreen(runtime.ScreenW, runtime.ScreenH),
		input:     core.NewInputFrame(),
		keyMapper: NewKeyMapper(),
		help:      h,
		menu:      NewMenuModel(session, opts.Username, opts.Width, opts.Height),
	}, nil
}

// canvasFor sizes the screen and canvas for a terminal of w x h cells. The
// bottom row is kept for the help bar.
func canvasFor(rc core.RuntimeConfig, cfg config.Config, w, h int) core.RuntimeConfig {
	return rc.WithScreen(w, core.Max(h-1, 1), cfg.Canvas.CellWidth, cfg.Canvas.CellHeight)
}

// Init starts the frame driver.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		return m.handleFrame(time.Time(msg))

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		switch m.view {
		case viewGame:
			return m.handleGameKey(msg)
		case viewScores:
			return m.updateScores(msg)
		default:
			return m.updateMenu(msg)
		}
	}

	if m.view == viewMenu {
		return m.updateMenu(msg)
	}
	return m, nil
}

// handleFrame advances the loop by the real time since the last frame.
// Hands keep being sampled outside of play; physics only runs while Active.
func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	if !m.paused {
		m.loop.FrameAt(now)
	}
	if m.session.State() == sim.StateRoundEnd && !m.recorded {
		m.recordRound()
	}
	return m, frameCmd(m.runtime.TickRate)
}

// handleResize adopts the new terminal size; the session re-serves on the
// new canvas.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime = canvasFor(m.runtime, m.cfg, msg.Width, msg.Height)
	m.screen.Resize(m.runtime.ScreenW, m.runtime.ScreenH)
	cw, ch := float64(m.runtime.CanvasW), float64(m.runtime.CanvasH)
	m.session.Resize(cw, ch)
	if m.keyboard != nil {
		m.keyboard.Resize(cw, ch)
	}
	m.help.Width = msg.Width

	m.menu, _ = m.menu.Update(msg)
	if m.view == viewScores {
		sb, _ := m.scores.Update(msg)
		if s, ok := sb.(ScoreboardModel); ok {
			m.scores = s
		}
	}
	return m, nil
}

// updateMenu forwards to the menu and starts play once it is complete.
func (m Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.store, m.session.Username(), m.runtime.ScreenW, m.runtime.ScreenH+1)
		m.view = viewScores
		return m, nil

	case m.menu.Ready():
		if err := m.session.Start(); err != nil {
			m.logger.Error("could not start session", "error", err)
			m.session.BackToMenu()
			m.menu = m.newMenu()
			return m, nil
		}
		m.view = viewGame
		m.paused = false
		m.recorded = false
		m.status = ""
		m.keys = DefaultGameKeyMap(m.session.Mode() == pong.ModeTwoPlayer)
		return m, nil
	}
	return m, cmd
}

// updateScores forwards to the scoreboard. Its own quit command is dropped
// when it only wants to go back.
func (m Model) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	sb, cmd := m.scores.Update(msg)
	if s, ok := sb.(ScoreboardModel); ok {
		m.scores = s
	}
	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		m.view = viewMenu
		m.menu = m.newMenu()
		return m, nil
	}
	return m, cmd
}

// handleGameKey processes keyboard input during play.
func (m Model) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if m.session.Mode() == pong.ModeSinglePlayer {
		action = SinglePlayerAction(action)
	}
	m.input.Set(action)
	defer m.input.Clear()

	switch {
	case m.input.Has(core.ActionPause):
		if m.session.Active() {
			m.paused = !m.paused
		}

	case m.input.Has(core.ActionRestart):
		if m.session.State() == sim.StateRoundEnd {
			if err := m.session.PlayAgain(); err != nil {
				m.logger.Warn("could not restart round", "error", err)
				return m, nil
			}
			m.recorded = false
			m.status = ""
		}

	case m.input.Has(core.ActionBack):
		m.session.BackToMenu()
		m.paused = false
		m.view = viewMenu
		m.menu = m.newMenu()

	default:
		if m.keyboard != nil && !m.paused {
			m.keyboard.Apply(m.input)
		}
	}
	return m, nil
}

func (m Model) newMenu() MenuModel {
	name := m.username
	if u := m.session.Username(); u != "" {
		name = u
	}
	return NewMenuModel(m.session, name, m.runtime.ScreenW, m.runtime.ScreenH+1)
}

// recordRound stores the finished round. A single-player win also goes on
// the leaderboard with the player's points and play time.
func (m *Model) recordRound() {
	m.recorded = true
	if m.store == nil {
		return
	}

	r := m.session.Result()
	secs := int(r.Elapsed / time.Second)
	_, err := m.store.SaveRound(storage.RoundRecord{
		SessionID:  r.SessionID,
		Mode:       r.Mode.String(),
		Difficulty: string(r.Difficulty),
		Player1:    r.Player1,
		Player2:    r.Player2,
		Score1:     r.Score1,
		Score2:     r.Score2,
		Winner:     r.Winner.String(),
		Duration:   secs,
	})
	if err != nil {
		m.logger.Warn("could not save round", "error", err)
	}

	if r.Mode != pong.ModeSinglePlayer || r.Winner != pong.SideLeft {
		return
	}
	if _, err := m.store.SaveScore(r.Username, r.Score1, secs, string(r.Difficulty)); err != nil {
		m.logger.Warn("could not save score", "user", r.Username, "error", err)
		m.status = "Score could not be saved"
		return
	}
	m.status = "Score saved to the leaderboard"
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewMenu:
		return m.menu.View()
	case viewScores:
		return m.scores.View()
	}

	engine := m.session.Engine()
	if engine == nil {
		return ""
	}
	w, h := engine.Size()
	left, right := m.session.Players()
	pong.Render(m.screen, engine.Snapshot(), w, h, pong.Labels{
		Left:  left,
		Right: right,
		Timer: m.session.ElapsedText(),
	})

	switch {
	case m.session.State() == sim.StateRoundEnd:
		r := m.session.Result()
		lines := []string{
			fmt.Sprintf("%s wins %d - %d", r.WinnerName(), r.Score1, r.Score2),
			"Time " + m.session.ElapsedText(),
		}
		if m.status != "" {
			lines = append(lines, m.status)
		}
		lines = append(lines, "R: play again   B: menu   Q: quit")
		overlayBanner(m.screen, core.ColorBrightYellow, lines...)
	case m.paused:
		overlayBanner(m.screen, core.ColorBrightWhite, "PAUSED", "P: resume")
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Session returns the driven session.
func (m Model) Session() *sim.Session {
	return m.session
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}
