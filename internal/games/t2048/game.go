package t2048

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeEndless Mode = "endless"
)

// Game adapts a Session to the tick-driven terminal runtime: it maps input
// actions to directions, animates transitions and renders the board.
type Game struct {
	mode    Mode
	cfg     Config
	session *Session
	tick    uint64

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool
	paused   bool

	anim animator

	// override is set per instance by Configure and wins over SetConfig.
	override *Config
}

// Package-level variables for config
var (
	selectedConfig *Config
)

// SetConfig sets the engine config used by the next Reset of any new game.
// nil restores the mode defaults.
func SetConfig(cfg *Config) {
	selectedConfig = cfg
}

// New creates a classic 2048 game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewEndless creates a 2048 game that never ends in a win.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register("2048", func() registry.Game {
		return New()
	})
	registry.Register("2048_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "2048_endless"
	}
	return "2048"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "2048 (Endless)"
	}
	return "2048"
}

// Configure sets the engine config for this instance only. It takes effect
// on the next Reset.
func (g *Game) Configure(cfg Config) {
	g.override = &cfg
}

// config resolves the engine config for this game's mode.
func (g *Game) config() Config {
	cfg := DefaultConfig()
	switch {
	case g.override != nil:
		cfg = *g.override
	case selectedConfig != nil:
		cfg = *selectedConfig
	}
	if g.mode == ModeEndless {
		cfg.WinValue = 0
	}
	return cfg
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.anim = animator{}

	g.cfg = g.config()
	session, err := NewSession(g.cfg, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		// A bad file or flag config must not leave the player without a game.
		g.cfg = DefaultConfig()
		if g.mode == ModeEndless {
			g.cfg.WinValue = 0
		}
		session, err = NewSession(g.cfg, rand.New(rand.NewSource(cfg.Seed)))
		if err != nil {
			panic(fmt.Sprintf("t2048: default config rejected: %v", err))
		}
	}
	g.session = session

	g.checkScreenSize()
}

// Session exposes the underlying engine session.
func (g *Game) Session() *Session {
	return g.session
}

// Resize adapts to a new terminal size without dealing a new board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	boardW, boardH := boardExtent(g.cfg.Rows)
	g.tooSmall = g.screenW < boardW+4 || g.screenH < boardH+hudHeight+2
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.anim.update()

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.session.State().Terminal() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionNewGame) {
		return g.newGame()
	}

	if g.session.State().Terminal() {
		// Restart is handled by the platform so it can store the score first.
		return core.StepResult{State: g.State()}
	}

	// Input arriving mid-animation is dropped so swipes never overlap.
	if g.anim.active() {
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFor(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	turn, err := g.session.ApplyDirection(dir)
	if err == nil && turn.Moved {
		g.anim.start(turn)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) newGame() core.StepResult {
	// NewGame only fails on an invalid config, which NewSession already rejected.
	_ = g.session.NewGame()
	g.anim = animator{}
	return core.StepResult{State: g.State(), Reset: true}
}

// directionFor maps the first move action in the frame to a direction.
func directionFor(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	state := g.session.State()
	return core.GameState{
		Score:    g.session.Score(),
		MaxTile:  g.session.board.MaxValue(),
		GameOver: state.Terminal(),
		Won:      state == StateWon,
		Paused:   g.paused || g.tooSmall,
		Rows:     g.cfg.Rows,
		Turns:    g.session.Turns(),
	}
}
