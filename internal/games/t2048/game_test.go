package t2048

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// settle steps with empty input until no animation is running.
func settle(g *Game) {
	for g.anim.active() {
		g.Step(frame())
	}
}

func TestGameRegistered(t *testing.T) {
	g, ok := registry.Get("2048")
	require.True(t, ok)
	assert.Equal(t, "2048", g.ID())

	e, ok := registry.Get("2048_endless")
	require.True(t, ok)
	assert.Equal(t, "2048 (Endless)", e.Title())
}

func TestGameDeterministicReset(t *testing.T) {
	g1 := New()
	g1.Reset(testRuntime(12345))
	g2 := New()
	g2.Reset(testRuntime(12345))

	assert.Equal(t, g1.Session().Snapshot(), g2.Session().Snapshot())
}

func TestGameStepMoves(t *testing.T) {
	g := New()
	g.Reset(testRuntime(42))
	g.session.board = rowBoard(t, [4]int{2, 2, 0, 0})

	res := g.Step(frame(core.ActionLeft))
	assert.Equal(t, 4, res.State.Score)
	assert.Equal(t, 4, res.State.MaxTile)
	assert.False(t, res.State.GameOver)
	assert.True(t, g.anim.active())

	// Input during the animation is dropped.
	g.Step(frame(core.ActionRight))
	assert.Equal(t, 1, g.Session().Turns())

	settle(g)
	assert.False(t, g.anim.active())

	g.Step(frame(core.ActionRight))
	assert.Equal(t, 2, g.Session().Turns())
}

func TestGamePause(t *testing.T) {
	g := New()
	g.Reset(testRuntime(42))
	g.session.board = rowBoard(t, [4]int{0, 0, 0, 2})

	res := g.Step(frame(core.ActionPause))
	assert.True(t, res.State.Paused)

	g.Step(frame(core.ActionLeft))
	assert.Equal(t, 0, g.Session().Turns())

	res = g.Step(frame(core.ActionPause))
	assert.False(t, res.State.Paused)
	g.Step(frame(core.ActionLeft))
	assert.Equal(t, 1, g.Session().Turns())
}

func TestGameNewGame(t *testing.T) {
	g := New()
	g.Reset(testRuntime(42))
	g.session.board = rowBoard(t, [4]int{2, 2, 0, 0})
	g.Step(frame(core.ActionLeft))

	res := g.Step(frame(core.ActionNewGame))
	assert.True(t, res.Reset)
	assert.Equal(t, 0, res.State.Score)
	assert.False(t, g.anim.active())
	assert.Equal(t, 1, g.Session().Board().Count())
}

func TestGameWonState(t *testing.T) {
	SetConfig(&Config{Rows: 2, WinValue: 2048, StartTiles: 1})
	defer SetConfig(nil)

	g := New()
	g.Reset(testRuntime(7))
	require.Equal(t, 2, g.Session().Config().Rows)
	g.session.board = mustBoard(t, [][]int{
		{1024, 1024},
		{2, 4},
	})

	res := g.Step(frame(core.ActionLeft))
	assert.True(t, res.State.GameOver)
	assert.True(t, res.State.Won)

	// Moves after the end are ignored; the platform restarts the game.
	settle(g)
	res = g.Step(frame(core.ActionRight))
	assert.Equal(t, 2048, res.State.Score)
}

func TestGameEndlessMode(t *testing.T) {
	g := NewEndless()
	g.Reset(testRuntime(42))
	assert.Equal(t, 0, g.Session().Config().WinValue)

	g.session.board = rowBoard(t, [4]int{1024, 1024, 0, 0})
	res := g.Step(frame(core.ActionLeft))
	assert.False(t, res.State.GameOver)
	assert.False(t, res.State.Won)
}

func TestGameBadConfigFallsBack(t *testing.T) {
	SetConfig(&Config{Rows: 1})
	defer SetConfig(nil)

	g := New()
	g.Reset(testRuntime(1))
	assert.Equal(t, DefaultConfig(), g.Session().Config())
}

func TestGameFallbackAlwaysDealsASession(t *testing.T) {
	SetConfig(&Config{Rows: MaxBoardSize + 1, WinValue: 3})
	defer SetConfig(nil)

	for _, g := range []*Game{New(), NewEndless()} {
		t.Run(g.ID(), func(t *testing.T) {
			require.NotPanics(t, func() { g.Reset(testRuntime(1)) })
			require.NotNil(t, g.Session())
			assert.Equal(t, BoardSize, g.Session().Config().Rows)
			assert.Equal(t, StateOngoing, g.Session().State())
		})
	}
}

func TestGameTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 5, Seed: 1})

	res := g.Step(frame(core.ActionLeft))
	assert.True(t, res.State.Paused)
	assert.Equal(t, 0, g.Session().Turns())

	scr := core.NewScreen(20, 5)
	g.Render(scr)
	assert.Contains(t, scr.String(), "small")
}

func TestGameRender(t *testing.T) {
	g := New()
	g.Reset(testRuntime(42))
	g.session.board = rowBoard(t, [4]int{128, 0, 0, 0})

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	out := scr.String()

	assert.Contains(t, out, "Score: 0")
	assert.Contains(t, out, "Target: 2048")
	assert.Contains(t, out, "128")
	assert.Contains(t, out, "┌")
}

func TestAnimatorPhases(t *testing.T) {
	var a animator
	assert.False(t, a.active())

	a.start(Turn{
		Moved: true,
		Transitions: []Transition{
			{TileID: 2, From: Position{X: 2, Y: 0}, To: Position{X: 0, Y: 0}, Merged: true, Value: 4},
			{TileID: 3, From: Position{X: 3, Y: 0}, To: Position{X: 1, Y: 0}, Value: 2},
		},
		Spawned: &PlacedTile{Position: Position{X: 3, Y: 3}, Tile: Tile{ID: 4, Value: 2}},
	})
	require.True(t, a.active())
	require.Len(t, a.slides, 2)
	assert.Equal(t, 2, a.slides[0].Value)

	v, hidden := a.hiddenValue(Position{X: 0, Y: 0})
	assert.True(t, hidden)
	assert.Equal(t, 2, v)
	_, hidden = a.hiddenValue(Position{X: 3, Y: 3})
	assert.True(t, hidden)

	for range slideAnimationDuration {
		a.update()
	}
	assert.Equal(t, PhasePop, a.phase)
	_, hidden = a.hiddenValue(Position{X: 0, Y: 0})
	assert.False(t, hidden)

	for range popAnimationDuration {
		a.update()
	}
	assert.False(t, a.active())
}

func TestEaseOutQuad(t *testing.T) {
	assert.InDelta(t, 0.0, easeOutQuad(0), 1e-9)
	assert.InDelta(t, 0.75, easeOutQuad(0.5), 1e-9)
	assert.InDelta(t, 1.0, easeOutQuad(1), 1e-9)
}

func TestGameConfigureOverridesGlobal(t *testing.T) {
	SetConfig(&Config{Rows: 6, WinValue: 2048, StartTiles: 1})
	defer SetConfig(nil)

	g := New()
	g.Configure(Config{Rows: 3, WinValue: 256, StartTiles: 2})
	g.Reset(testRuntime(1))

	assert.Equal(t, 3, g.Session().Config().Rows)
	assert.Equal(t, 2, g.Session().Board().Count())
	assert.Equal(t, 3, g.State().Rows)

	other := New()
	other.Reset(testRuntime(1))
	assert.Equal(t, 6, other.Session().Config().Rows)
}

func TestGameResizeKeepsBoard(t *testing.T) {
	g := New()
	g.Reset(testRuntime(42))
	g.session.board = rowBoard(t, [4]int{0, 0, 0, 2})
	g.Step(frame(core.ActionLeft))
	settle(g)
	before := g.Session().Snapshot()

	g.Resize(20, 5)
	assert.True(t, g.State().Paused)

	g.Resize(80, 24)
	assert.False(t, g.State().Paused)
	assert.Equal(t, before, g.Session().Snapshot())
	assert.Equal(t, 1, g.State().Turns)
}
