package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hand-pong/internal/config"
	"github.com/vovakirdan/hand-pong/internal/names"
	"github.com/vovakirdan/hand-pong/internal/pong"
	"github.com/vovakirdan/hand-pong/internal/sim"
)

// menuStage is the current question the menu is asking.
type menuStage int

const (
	stageMode menuStage = iota
	stageName
	stageDifficulty
)

// modeItem is a selectable game mode.
type modeItem struct {
	Mode  pong.Mode
	Title string
}

var modeItems = []modeItem{
	{Mode: pong.ModeSinglePlayer, Title: "Single player (vs AI)"},
	{Mode: pong.ModeTwoPlayer, Title: "Two players"},
}

// MenuModel walks a session from Idle to DifficultyChosen: mode, then the
// username for single-player, then difficulty.
type MenuModel struct {
	session   *sim.Session
	stage     menuStage
	cursor    int
	name      textinput.Model
	keyMapper *KeyMapper
	width     int
	height    int
	errMsg    string

	ready          bool // Difficulty chosen, the session can start
	quitting       bool
	openScoreboard bool
}

// NewMenuModel creates a menu driving session. defaultName pre-fills the
// username field.
func NewMenuModel(session *sim.Session, defaultName string, width, height int) MenuModel {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = names.MaxUsernameLength
	ti.Width = names.MaxUsernameLength + 1
	ti.SetValue(names.Normalize(defaultName))

	return MenuModel{
		session:   session,
		name:      ti,
		keyMapper: NewKeyMapper(),
		width:     width,
		height:    height,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.stage == stageName {
			return m.updateName(msg)
		}
		return m.handleKey(msg)
	}
	if m.stage == stageName {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes list navigation in the mode and difficulty stages.
func (m MenuModel) handleKey(msg tea.KeyMsg) (MenuModel, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < m.itemCount()-1 {
			m.cursor++
		}

	case MenuActionSelect:
		return m.selectItem()

	case MenuActionBack:
		m.errMsg = ""
		if m.stage == stageDifficulty {
			if m.session.Mode() == pong.ModeSinglePlayer {
				return m.enterName()
			}
			m.stage = stageMode
			m.cursor = 0
		}

	case MenuActionScoreboard:
		if m.stage == stageMode {
			m.openScoreboard = true
		}
	}
	return m, nil
}

func (m MenuModel) selectItem() (MenuModel, tea.Cmd) {
	m.errMsg = ""
	switch m.stage {
	case stageMode:
		item := modeItems[m.cursor]
		if err := m.session.ChooseMode(item.Mode); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		if item.Mode == pong.ModeSinglePlayer {
			return m.enterName()
		}
		m.enterDifficulty()

	case stageDifficulty:
		d := config.Difficulties[m.cursor]
		if err := m.session.ChooseDifficulty(d); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.ready = true
	}
	return m, nil
}

func (m MenuModel) enterName() (MenuModel, tea.Cmd) {
	m.stage = stageName
	m.name.CursorEnd()
	return m, m.name.Focus()
}

func (m *MenuModel) enterDifficulty() {
	m.stage = stageDifficulty
	m.cursor = 0
	for i, d := range config.Difficulties {
		if d == config.DifficultyNormal {
			m.cursor = i
		}
	}
}

// updateName handles the username text field.
func (m MenuModel) updateName(msg tea.KeyMsg) (MenuModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, nil
	case "esc":
		m.name.Blur()
		m.errMsg = ""
		m.stage = stageMode
		m.cursor = 0
		return m, nil
	case "enter":
		if err := m.session.SetUsername(m.name.Value()); err != nil {
			if errors.Is(err, sim.ErrUsernameTooShort) {
				m.errMsg = fmt.Sprintf("Name needs at least %d characters", names.MinUsernameLength)
			} else {
				m.errMsg = err.Error()
			}
			return m, nil
		}
		m.name.Blur()
		m.errMsg = ""
		m.enterDifficulty()
		return m, nil
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

func (m MenuModel) itemCount() int {
	if m.stage == stageDifficulty {
		return len(config.Difficulties)
	}
	return len(modeItems)
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(bannerStyle.Render("H A N D   P O N G"), m.width))
	b.WriteString("\n\n")

	switch m.stage {
	case stageMode:
		b.WriteString(centerText(titleStyle.Render("Select a mode"), m.width))
		b.WriteString("\n\n")
		for i, item := range modeItems {
			b.WriteString(centerText(cursorLine(i == m.cursor, item.Title), m.width))
			b.WriteString("\n")
		}

	case stageName:
		b.WriteString(centerText(titleStyle.Render("Enter your name"), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(m.name.View(), m.width))
		b.WriteString("\n")

	case stageDifficulty:
		b.WriteString(centerText(titleStyle.Render("Select difficulty"), m.width))
		b.WriteString("\n\n")
		for i, d := range config.Difficulties {
			b.WriteString(centerText(cursorLine(i == m.cursor, d.Title()), m.width))
			b.WriteString("\n")
		}
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(centerText(errorStyle.Render(m.errMsg), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.controls()), m.width))
	b.WriteString("\n")
	return b.String()
}

func (m MenuModel) controls() string {
	switch m.stage {
	case stageName:
		return "Enter: Continue  |  Esc: Back  |  Ctrl+C: Quit"
	case stageDifficulty:
		return "Up/Down: Navigate  |  Enter: Play  |  Esc: Back  |  Q: Quit"
	}
	return "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
}

func cursorLine(selected bool, title string) string {
	if selected {
		return "> " + title
	}
	return "  " + title
}

// Ready reports whether mode, name and difficulty are all chosen.
func (m MenuModel) Ready() bool {
	return m.ready
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}
