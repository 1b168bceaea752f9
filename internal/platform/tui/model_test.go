package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/games/t2048"
	"github.com/vovakirdan/t2048/internal/storage"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func newTestRecorder(t *testing.T) *storage.Recorder {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	rec := storage.NewRecorder(store, nil, nil)
	t.Cleanup(func() { rec.Close() })
	return rec
}

func sendGame(m GameModel, msgs ...tea.Msg) GameModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(GameModel)
	}
	return m
}

func tick() tea.Msg {
	return TickMsg(time.Now())
}

func startedGame(t *testing.T, rec *storage.Recorder) GameModel {
	t.Helper()
	m := NewGameModel(t2048.New(), rec, testRuntime(), nil)
	require.NotNil(t, m.Init())
	return sendGame(m, tick())
}

func TestGameModelDefaults(t *testing.T) {
	m := NewGameModel(t2048.New(), nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, nil)

	assert.NotZero(t, m.config.Seed)
	assert.Equal(t, 60, m.config.TickRate)
	assert.NotEmpty(t, m.sessionID)
	assert.NotNil(t, m.painter)
}

func TestGameModelPlays(t *testing.T) {
	m := startedGame(t, nil)
	require.Equal(t, 4, m.State().Rows)
	require.Equal(t, 0, m.State().Turns)

	// Try every direction; a fresh board always allows at least one.
	for _, key := range []tea.KeyType{tea.KeyLeft, tea.KeyRight, tea.KeyUp, tea.KeyDown} {
		m = sendGame(m, tea.KeyMsg{Type: key}, tick())
		if m.State().Turns > 0 {
			break
		}
		// Let a possible animation finish before the next key.
		for range 20 {
			m = sendGame(m, tick())
		}
	}

	assert.Equal(t, 1, m.State().Turns)
	assert.Contains(t, m.View(), "Turn 1")
}

func TestGameModelShowsControls(t *testing.T) {
	m := startedGame(t, nil)
	assert.Contains(t, m.View(), "N: New game")

	narrow := NewGameModel(t2048.New(), nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 24, Seed: 1}, nil)
	narrow = sendGame(narrow, tick())
	assert.NotContains(t, narrow.View(), "N: New game")
}

func TestGameModelBackOnlyWhenPaused(t *testing.T) {
	m := startedGame(t, nil)

	m = sendGame(m, tea.KeyMsg{Type: tea.KeyEsc}, tick())
	assert.False(t, m.BackToMenu())

	m = sendGame(m, runeKey('p'), tick())
	require.True(t, m.State().Paused)

	m = sendGame(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.BackToMenu())
}

func TestGameModelQuit(t *testing.T) {
	m := startedGame(t, nil)

	next, cmd := m.Update(runeKey('q'))
	assert.True(t, next.(GameModel).IsQuitting())
	assert.NotNil(t, cmd)
	assert.Empty(t, next.View())
}

func TestGameModelStandaloneBackQuits(t *testing.T) {
	m := startedGame(t, nil)
	m.standalone = true

	m = sendGame(m, runeKey('p'), tick(), tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.IsQuitting())
	assert.False(t, m.BackToMenu())
}

func TestGameModelNewGameStartsNewRound(t *testing.T) {
	m := startedGame(t, nil)
	first := m.sessionID
	m.scoreSaved = true

	m = sendGame(m, runeKey('n'), tick())
	assert.NotEqual(t, first, m.sessionID)
	assert.False(t, m.scoreSaved)
}

func TestGameModelResizeKeepsBoard(t *testing.T) {
	game := t2048.New()
	m := NewGameModel(game, nil, testRuntime(), nil)
	m.Init()
	before := game.Session().Board()

	m = sendGame(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.True(t, before.Equal(game.Session().Board()))
	assert.Equal(t, 100, m.screen.Width())
}

func TestGameModelRecord(t *testing.T) {
	rec := newTestRecorder(t)
	m := startedGame(t, rec)
	m.gameState = core.GameState{Score: 512, MaxTile: 128, GameOver: true, Rows: 4, Turns: 90}

	m.record()

	scores, err := rec.Store().TopScores("2048", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 512, scores[0].Score)
	assert.Equal(t, 128, scores[0].MaxTile)
	assert.Equal(t, 90, scores[0].Turns)
	assert.False(t, scores[0].Won)
}

func TestGameModelSkipsEmptyScore(t *testing.T) {
	rec := newTestRecorder(t)
	m := startedGame(t, rec)
	m.gameState = core.GameState{GameOver: true, Rows: 4}

	m.record()

	scores, err := rec.Store().TopScores("2048", 10)
	require.NoError(t, err)
	assert.Empty(t, scores)
}
