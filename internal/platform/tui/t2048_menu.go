package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/games/t2048"
)

// Board sizes offered by the options screen.
const (
	minOptionRows = 3
	maxOptionRows = 8
)

// Option rows, top to bottom.
const (
	focusSize = iota
	focusTarget
	focusStart
	focusCount
)

// T2048OptionsModel lets the player pick the board size and win target
// before a game is dealt.
type T2048OptionsModel struct {
	endless   bool
	base      t2048.Config
	rows      int
	level     int // index into t2048.Levels
	focus     int
	width     int
	height    int
	keyMapper *KeyMapper
	started   bool
	back      bool
	quitting  bool
}

// NewT2048OptionsModel creates the options screen. base supplies the
// starting values and the settings the screen does not expose.
func NewT2048OptionsModel(base t2048.Config, endless bool, width, height int) T2048OptionsModel {
	return T2048OptionsModel{
		endless:   endless,
		base:      base,
		rows:      core.Clamp(base.Rows, minOptionRows, maxOptionRows),
		level:     levelIndex(base.WinValue),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// levelIndex finds the level whose target is v, falling back to classic 2048.
func levelIndex(v int) int {
	fallback := 0
	for i, lvl := range t2048.Levels {
		if lvl.Target == v {
			return i
		}
		if lvl.Target == t2048.DefaultWinValue {
			fallback = i
		}
	}
	return fallback
}

// Init initializes the model.
func (m T2048OptionsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m T2048OptionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m T2048OptionsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
	case MenuActionUp:
		m.focus = m.nextFocus(-1)
	case MenuActionDown:
		m.focus = m.nextFocus(1)
	case MenuActionLeft:
		m.adjust(-1)
	case MenuActionRight:
		m.adjust(1)
	case MenuActionSelect:
		m.started = true
	}
	return m, nil
}

// nextFocus moves the cursor, skipping the target row in endless mode.
func (m T2048OptionsModel) nextFocus(delta int) int {
	f := m.focus + delta
	if m.endless && f == focusTarget {
		f += delta
	}
	return core.Clamp(f, 0, focusCount-1)
}

func (m *T2048OptionsModel) adjust(delta int) {
	switch m.focus {
	case focusSize:
		m.rows = core.Clamp(m.rows+delta, minOptionRows, maxOptionRows)
	case focusTarget:
		m.level = core.Clamp(m.level+delta, 0, t2048.LevelCount()-1)
	}
}

// Config returns the engine config for the chosen options.
func (m T2048OptionsModel) Config() t2048.Config {
	cfg := m.base
	cfg.Rows = m.rows
	cfg.StartTiles = core.Clamp(cfg.StartTiles, 1, m.rows*m.rows)
	if m.endless {
		cfg.WinValue = 0
		return cfg
	}
	return t2048.Levels[m.level].Apply(cfg)
}

// View renders the options screen.
func (m T2048OptionsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("2 0 4 8", m.width))
	b.WriteString("\n\n")
	mode := "Classic"
	if m.endless {
		mode = "Endless"
	}
	b.WriteString(centerText(mode+" options", m.width))
	b.WriteString("\n\n")

	target := "none (endless)"
	if !m.endless {
		lvl := t2048.Levels[m.level]
		target = fmt.Sprintf("< %d %s >", lvl.Target, lvl.Name)
	}

	lines := []string{
		fmt.Sprintf("Board size   < %dx%d >", m.rows, m.rows),
		"Target       " + target,
		"Start game",
	}
	for i, line := range lines {
		cursor := "  "
		if i == m.focus {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Option  |  Left/Right: Change  |  Enter: Play  |  Esc: Back", m.width))

	return b.String()
}

// Started returns true once the player confirmed the options.
func (m T2048OptionsModel) Started() bool {
	return m.started
}

// WantsBack returns true if user pressed back.
func (m T2048OptionsModel) WantsBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit.
func (m T2048OptionsModel) IsQuitting() bool {
	return m.quitting
}
