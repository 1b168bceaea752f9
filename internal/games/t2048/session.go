package t2048

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// DefaultWinValue is the classic winning tile.
const DefaultWinValue = 2048

// State is the terminal status of a session.
type State string

const (
	StateOngoing State = "ongoing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Terminal reports whether the session has ended.
func (s State) Terminal() bool {
	return s == StateWon || s == StateLost
}

// Config holds the settings fixed at session construction.
type Config struct {
	Rows       int     `json:"rows"`
	WinValue   int     `json:"win_value"` // 0 disables winning (endless)
	StartTiles int     `json:"start_tiles"`
	FourChance float64 `json:"four_chance"`
}

// DefaultConfig returns the classic 4x4, 2048, one starting tile setup.
func DefaultConfig() Config {
	return Config{
		Rows:       BoardSize,
		WinValue:   DefaultWinValue,
		StartTiles: 1,
		FourChance: 0,
	}
}

// Validate checks that a session can be built from c.
func (c Config) Validate() error {
	switch {
	case c.Rows < MinBoardSize || c.Rows > MaxBoardSize:
		return fmt.Errorf("%w: rows %d is outside %d..%d", ErrInvalidConfig, c.Rows, MinBoardSize, MaxBoardSize)
	case c.WinValue != 0 && (!isTileValue(c.WinValue) || c.WinValue <= BaseTileValue):
		return fmt.Errorf("%w: win value %d must be a power of two above %d", ErrInvalidConfig, c.WinValue, BaseTileValue)
	case c.StartTiles < 1 || c.StartTiles > c.Rows*c.Rows:
		return fmt.Errorf("%w: start tiles %d must be within 1..%d", ErrInvalidConfig, c.StartTiles, c.Rows*c.Rows)
	case c.FourChance < 0 || c.FourChance > 1:
		return fmt.Errorf("%w: four chance %.2f must be within 0..1", ErrInvalidConfig, c.FourChance)
	}
	return nil
}

// Turn is everything a front end needs to present one applied direction.
type Turn struct {
	Direction   Direction    `json:"direction"`
	Moved       bool         `json:"moved"`
	Transitions []Transition `json:"transitions"`
	ScoreDelta  int          `json:"score_delta"`
	Spawned     *PlacedTile  `json:"spawned,omitempty"`
	Score       int          `json:"score"`
	State       State        `json:"state"`
}

// EventKind identifies a session event.
type EventKind string

const (
	EventTurn         EventKind = "turn"
	EventStateChanged EventKind = "state_changed"
	EventReset        EventKind = "reset"
)

// Event is delivered to listeners after the session changed.
type Event struct {
	Kind     EventKind `json:"kind"`
	Turn     *Turn     `json:"turn,omitempty"`
	Snapshot Snapshot  `json:"snapshot"`
}

// Listener observes session events. It runs synchronously inside the
// session call that produced the event and must not call back into it.
type Listener func(Event)

// Option customizes a Session.
type Option func(*Session)

// WithLogger sets the logger used for per-turn debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithListener registers a listener for session events.
func WithListener(fn Listener) Option {
	return func(s *Session) {
		if fn != nil {
			s.listeners = append(s.listeners, fn)
		}
	}
}

// Session runs one game: it applies directions, keeps the score and
// decides when the game is won or lost. It is not safe for concurrent use.
type Session struct {
	cfg       Config
	spawner   *Spawner
	board     *Board
	score     int
	turns     int
	state     State
	listeners []Listener
	logger    *log.Logger
}

// NewSession validates cfg and deals a fresh game.
func NewSession(cfg Config, rng Source, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}

	s := &Session{
		cfg:     cfg,
		spawner: NewSpawner(rng, cfg.FourChance),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.deal(); err != nil {
		return nil, err
	}
	return s, nil
}

// deal clears everything and places the starting tiles.
func (s *Session) deal() error {
	board, err := NewBoard(s.cfg.Rows)
	if err != nil {
		return err
	}
	for range s.cfg.StartTiles {
		if _, err := s.spawner.Spawn(board); err != nil {
			return err
		}
	}
	s.board = board
	s.score = 0
	s.turns = 0
	// A 4 start tile already wins a game played to 4.
	s.state = s.evaluate()
	return nil
}

// NewGame discards the current game and deals a new one. Legal in any state.
func (s *Session) NewGame() error {
	if err := s.deal(); err != nil {
		return fmt.Errorf("new game: %w", err)
	}
	s.logger.Debug("new game", "rows", s.cfg.Rows, "tiles", s.board.Count())
	s.emit(Event{Kind: EventReset, Snapshot: s.Snapshot()})
	return nil
}

// ApplyDirection plays one turn. A direction that moves nothing returns a
// Turn with Moved == false and changes nothing.
func (s *Session) ApplyDirection(d Direction) (Turn, error) {
	if !d.Valid() {
		return Turn{}, fmt.Errorf("apply: %w: %d", ErrInvalidDirection, int(d))
	}
	if s.state.Terminal() {
		return Turn{}, fmt.Errorf("apply %s: %w (%s)", d, ErrSessionOver, s.state)
	}

	res, err := Resolve(s.board, d)
	if err != nil {
		return Turn{}, err
	}

	turn := Turn{Direction: d, Score: s.score, State: s.state}
	if !res.Moved {
		s.logger.Debug("no-op swipe", "direction", d)
		return turn, nil
	}

	// A turn that moved always leaves an empty cell: either a tile slid into
	// one or a merge freed one.
	spawned, err := s.spawner.Spawn(res.Board)
	if err != nil {
		return Turn{}, fmt.Errorf("apply %s: %w", d, err)
	}

	s.board = res.Board
	s.score += res.ScoreDelta
	s.turns++

	prev := s.state
	s.state = s.evaluate()

	turn.Moved = true
	turn.Transitions = res.Transitions
	turn.ScoreDelta = res.ScoreDelta
	turn.Spawned = &spawned
	turn.Score = s.score
	turn.State = s.state

	s.logger.Debug("turn",
		"direction", d,
		"moves", len(res.Transitions),
		"gained", res.ScoreDelta,
		"score", s.score,
		"state", s.state,
	)

	snap := s.Snapshot()
	s.emit(Event{Kind: EventTurn, Turn: &turn, Snapshot: snap})
	if s.state != prev {
		s.logger.Info("game finished", "state", s.state, "score", s.score, "max", snap.MaxTile)
		s.emit(Event{Kind: EventStateChanged, Turn: &turn, Snapshot: snap})
	}

	return turn, nil
}

// evaluate decides the state of the current board. Reaching the win value
// wins even on a full board.
func (s *Session) evaluate() State {
	if s.cfg.WinValue > 0 && s.board.MaxValue() >= s.cfg.WinValue {
		return StateWon
	}
	if IsGameOver(s.board) {
		return StateLost
	}
	return StateOngoing
}

func (s *Session) emit(ev Event) {
	for _, fn := range s.listeners {
		fn(ev)
	}
}

// Board returns a copy of the current board.
func (s *Session) Board() *Board {
	return s.board.Clone()
}

// Score returns the accumulated score.
func (s *Session) Score() int {
	return s.score
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Turns returns the number of turns that moved at least one tile.
func (s *Session) Turns() int {
	return s.turns
}

// Config returns the settings the session was built with.
func (s *Session) Config() Config {
	return s.cfg
}
