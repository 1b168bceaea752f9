// Package registry keeps the game variants the front ends can start.
// Variants register themselves in init(), so the TUI, the SSH server and
// the CLI discover them without importing each one by name.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/t2048/internal/core"
)

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is what a front end drives on every tick.
// Implementations hold no Bubble Tea state; the platform maps keys to
// actions, owns the clock and paints the screen buffer.
type Game interface {
	// ID returns a unique identifier (e.g. "2048", "2048_endless").
	// Used for CLI arguments and score storage.
	ID() string

	// Title returns a human-readable name for menus.
	Title() string

	// Reset deals a new game for the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the pre-cleared buffer.
	Render(dst *core.Screen)

	// State returns the current score and status.
	State() core.GameState
}

// Controller is implemented by games that describe their key bindings.
type Controller interface {
	Controls() string
}

// Resizer is implemented by games that can follow a terminal resize
// without dealing a new game.
type Resizer interface {
	Resize(w, h int)
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return f(), nil
}

// Get is Create for callers that only care whether the ID exists.
func Get(id string) (Game, bool) {
	g, err := Create(id)
	return g, err == nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Title returns the display title for id, or id itself if unknown.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if t, ok := titles[id]; ok {
		return t
	}
	return id
}
