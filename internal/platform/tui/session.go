package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/games/t2048"
	"github.com/vovakirdan/t2048/internal/registry"
	"github.com/vovakirdan/t2048/internal/storage"
)

// stage is the screen a SessionModel is showing.
type stage int

const (
	stageMenu stage = iota
	stageOptions
	stageGame
	stageScores
)

// configurable is implemented by games that accept an engine config.
type configurable interface {
	Configure(cfg t2048.Config)
}

// SessionModel manages the full session flow:
// menu -> options -> game -> menu, with the scoreboard reachable from the menu.
// It is the top-level model for SSH sessions and the local menu command.
type SessionModel struct {
	recorder   *storage.Recorder
	engine     t2048.Config
	config     core.RuntimeConfig
	painter    *Painter
	stage      stage
	selectedID string
	menu       MenuModel
	options    T2048OptionsModel
	scores     ScoreboardModel
	gameModel  *GameModel
	quitting   bool
}

// NewSessionModel creates a new session model. engine seeds the options
// screen of every game started from the menu.
func NewSessionModel(rec *storage.Recorder, engine t2048.Config, cfg core.RuntimeConfig, painter *Painter) SessionModel {
	return SessionModel{
		recorder: rec,
		engine:   engine,
		config:   cfg,
		painter:  painter,
		menu:     NewMenuModel(cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.stage {
	case stageOptions:
		return m.updateOptions(msg)
	case stageGame:
		return m.updateGame(msg)
	case stageScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.stage = stageScores
		m.scores = NewScoreboardModel(m.recorder.Store(), m.config.ScreenW, m.config.ScreenH)
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		m.selectedID = m.menu.Selected().GameID
		m.stage = stageOptions
		m.options = NewT2048OptionsModel(m.engine, strings.HasSuffix(m.selectedID, "_endless"),
			m.config.ScreenW, m.config.ScreenH)
		return m, m.options.Init()
	}

	return m, cmd
}

// updateOptions handles updates on the options screen.
func (m SessionModel) updateOptions(msg tea.Msg) (tea.Model, tea.Cmd) {
	newOptions, cmd := m.options.Update(msg)
	if optionsModel, ok := newOptions.(T2048OptionsModel); ok {
		m.options = optionsModel
	}

	switch {
	case m.options.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.options.WantsBack():
		return m.backToMenu()

	case m.options.Started():
		game, err := registry.Create(m.selectedID)
		if err != nil {
			// Shouldn't happen since menu only shows registered games
			return m.backToMenu()
		}
		if c, ok := game.(configurable); ok {
			c.Configure(m.options.Config())
		}

		gameModel := NewGameModel(game, m.recorder, m.config, m.painter)
		m.gameModel = &gameModel
		m.stage = stageGame
		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		return m.backToMenu()
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateScores handles updates on the scoreboard.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScores, cmd := m.scores.Update(msg)
	if scoresModel, ok := newScores.(ScoreboardModel); ok {
		m.scores = scoresModel
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		// The scoreboard quits when run on its own; here it returns to the menu.
		return m.backToMenu()
	}

	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.stage = stageMenu
	m.selectedID = ""
	m.menu = NewMenuModel(m.config)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.stage {
	case stageOptions:
		return m.options.View()
	case stageGame:
		return m.gameModel.View()
	case stageScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(rec *storage.Recorder, engine t2048.Config, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(rec, engine, cfg, nil),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
