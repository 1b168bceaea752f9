package t2048

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, cfg Config, seed int64, opts ...Option) *Session {
	t.Helper()
	s, err := NewSession(cfg, rand.New(rand.NewSource(seed)), opts...)
	require.NoError(t, err)
	return s
}

// smallConfig is a 2x2 game, which makes terminal boards easy to set up.
func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Rows = 2
	return cfg
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"endless", func(c *Config) { c.WinValue = 0 }, true},
		{"big board", func(c *Config) { c.Rows = 8 }, true},
		{"win at 4", func(c *Config) { c.WinValue = 4 }, true},
		{"largest board", func(c *Config) { c.Rows = MaxBoardSize }, true},
		{"board too small", func(c *Config) { c.Rows = 1 }, false},
		{"board too large", func(c *Config) { c.Rows = MaxBoardSize + 1 }, false},
		{"board area overflows", func(c *Config) { c.Rows = 3037000499 }, false},
		{"win not power of two", func(c *Config) { c.WinValue = 1000 }, false},
		{"win at base value", func(c *Config) { c.WinValue = 2 }, false},
		{"no start tiles", func(c *Config) { c.StartTiles = 0 }, false},
		{"too many start tiles", func(c *Config) { c.StartTiles = 17 }, false},
		{"negative four chance", func(c *Config) { c.FourChance = -0.1 }, false},
		{"four chance above one", func(c *Config) { c.FourChance = 1.5 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), 1)

	assert.Equal(t, StateOngoing, s.State())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 0, s.Turns())
	assert.Equal(t, 1, s.Board().Count())
	assert.Equal(t, BaseTileValue, s.Board().MaxValue())

	_, err := NewSession(DefaultConfig(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	bad := DefaultConfig()
	bad.Rows = 0
	_, err = NewSession(bad, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSessionStartTiles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartTiles = 2
	s := newTestSession(t, cfg, 3)
	assert.Equal(t, 2, s.Board().Count())
}

func TestSessionBoardIsACopy(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), 1)
	b := s.Board()
	for _, p := range b.EmptyPositions() {
		require.NoError(t, b.SetTile(p, &Tile{Value: 2}))
	}
	assert.Equal(t, 1, s.Board().Count())
}

func TestApplyDirectionMergesAndSpawns(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), 5)
	s.board = rowBoard(t, [4]int{2, 2, 0, 0})

	turn, err := s.ApplyDirection(DirLeft)
	require.NoError(t, err)

	assert.True(t, turn.Moved)
	assert.Equal(t, DirLeft, turn.Direction)
	assert.Equal(t, 4, turn.ScoreDelta)
	assert.Equal(t, 4, turn.Score)
	assert.Equal(t, 4, s.Score())
	assert.Equal(t, 1, s.Turns())
	assert.Equal(t, StateOngoing, turn.State)
	require.Len(t, turn.Transitions, 1)
	assert.True(t, turn.Transitions[0].Merged)

	require.NotNil(t, turn.Spawned)
	assert.Equal(t, 2, s.Board().Count())
	tile, err := s.Board().TileAt(turn.Spawned.Position)
	require.NoError(t, err)
	require.NotNil(t, tile)
	assert.Equal(t, turn.Spawned.Tile, *tile)

	merged, err := s.Board().TileAt(Position{X: 0, Y: 0})
	require.NoError(t, err)
	require.NotNil(t, merged)
	assert.Equal(t, 4, merged.Value)
}

func TestApplyDirectionNoOp(t *testing.T) {
	var events []Event
	s := newTestSession(t, DefaultConfig(), 5, WithListener(func(ev Event) {
		events = append(events, ev)
	}))
	s.board = rowBoard(t, [4]int{4, 2, 0, 0})
	before := s.Board()

	turn, err := s.ApplyDirection(DirLeft)
	require.NoError(t, err)

	assert.False(t, turn.Moved)
	assert.Nil(t, turn.Spawned)
	assert.Empty(t, turn.Transitions)
	assert.Equal(t, 0, s.Turns())
	assert.Equal(t, 0, s.Score())
	assert.True(t, before.Equal(s.Board()))
	assert.Empty(t, events)
}

func TestApplyDirectionInvalid(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), 5)
	before := s.Snapshot()

	_, err := s.ApplyDirection(Direction(-1))
	assert.ErrorIs(t, err, ErrInvalidDirection)

	_, err = s.ApplyDirection(Direction(4))
	assert.ErrorIs(t, err, ErrInvalidDirection)

	if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
		t.Errorf("invalid direction changed the session (-want +got):\n%s", diff)
	}
}

func TestSessionLost(t *testing.T) {
	var kinds []EventKind
	s := newTestSession(t, smallConfig(), 1, WithListener(func(ev Event) {
		kinds = append(kinds, ev.Kind)
	}))
	s.board = mustBoard(t, [][]int{
		{4, 8},
		{16, 0},
	})

	// Right moves 16 into the corner; the 2 spawned in the only gap
	// leaves a full board without equal neighbours.
	turn, err := s.ApplyDirection(DirRight)
	require.NoError(t, err)

	assert.Equal(t, StateLost, turn.State)
	assert.Equal(t, StateLost, s.State())
	assert.True(t, s.State().Terminal())
	assert.Equal(t, [][]int{{4, 8}, {2, 16}}, s.Board().Values())
	assert.Equal(t, []EventKind{EventTurn, EventStateChanged}, kinds)

	_, err = s.ApplyDirection(DirLeft)
	assert.ErrorIs(t, err, ErrSessionOver)
}

func TestSessionWonOnFullBoard(t *testing.T) {
	cfg := smallConfig()
	s := newTestSession(t, cfg, 1)
	s.board = mustBoard(t, [][]int{
		{1024, 1024},
		{2, 4},
	})

	// The result is full and has no moves left, yet reaching 2048 wins.
	turn, err := s.ApplyDirection(DirLeft)
	require.NoError(t, err)

	assert.Equal(t, [][]int{{2048, 2}, {2, 4}}, s.Board().Values())
	assert.False(t, CanMove(s.Board()))
	assert.Equal(t, StateWon, turn.State)
	assert.Equal(t, 2048, turn.ScoreDelta)

	_, err = s.ApplyDirection(DirUp)
	assert.ErrorIs(t, err, ErrSessionOver)
}

func TestSessionEndlessNeverWins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WinValue = 0
	s := newTestSession(t, cfg, 1)
	s.board = rowBoard(t, [4]int{2048, 2048, 0, 0})

	turn, err := s.ApplyDirection(DirLeft)
	require.NoError(t, err)
	assert.Equal(t, StateOngoing, turn.State)
	assert.Equal(t, 4096, s.Board().MaxValue())
}

func TestSessionNewGame(t *testing.T) {
	var events []Event
	s := newTestSession(t, smallConfig(), 1, WithListener(func(ev Event) {
		events = append(events, ev)
	}))
	s.board = mustBoard(t, [][]int{
		{4, 8},
		{16, 0},
	})
	_, err := s.ApplyDirection(DirRight)
	require.NoError(t, err)
	require.Equal(t, StateLost, s.State())

	require.NoError(t, s.NewGame())

	assert.Equal(t, StateOngoing, s.State())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 0, s.Turns())
	assert.Equal(t, 1, s.Board().Count())

	last := events[len(events)-1]
	assert.Equal(t, EventReset, last.Kind)
	assert.Nil(t, last.Turn)
	assert.Equal(t, s.Snapshot(), last.Snapshot)

	// Legal on a fresh game too.
	require.NoError(t, s.NewGame())
	assert.Equal(t, StateOngoing, s.State())
}

func TestSessionDeterministic(t *testing.T) {
	play := func() []Snapshot {
		s := newTestSession(t, DefaultConfig(), 2024)
		var snaps []Snapshot
		for i := range 200 {
			if s.State().Terminal() {
				break
			}
			_, err := s.ApplyDirection(Directions[i%len(Directions)])
			require.NoError(t, err)
			snaps = append(snaps, s.Snapshot())
		}
		return snaps
	}

	if diff := cmp.Diff(play(), play()); diff != "" {
		t.Errorf("same seed diverged (-first +second):\n%s", diff)
	}
}

func TestSessionRandomPlayInvariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		cfg := DefaultConfig()
		cfg.FourChance = 0.1
		s := newTestSession(t, cfg, seed)
		moves := rand.New(rand.NewSource(seed * 31))

		for range 2000 {
			if s.State().Terminal() {
				break
			}
			before := s.Board()
			score := s.Score()

			turn, err := s.ApplyDirection(Directions[moves.Intn(len(Directions))])
			require.NoError(t, err)

			after := s.Board()
			require.LessOrEqual(t, after.MaxValue(), 1<<17)
			for _, p := range []Position{{0, 0}, {3, 3}} {
				_, err := after.TileAt(p)
				require.NoError(t, err)
			}

			if !turn.Moved {
				require.True(t, before.Equal(after))
				require.Equal(t, score, s.Score())
				continue
			}

			require.NotNil(t, turn.Spawned)
			require.Equal(t, before.Sum()+turn.Spawned.Tile.Value, after.Sum())
			require.Equal(t, score+turn.ScoreDelta, s.Score())
			for _, tr := range turn.Transitions {
				require.True(t, after.InBounds(tr.From))
				require.True(t, after.InBounds(tr.To))
			}
		}

		if s.State() == StateLost {
			assert.True(t, s.Board().IsFull())
			assert.False(t, CanMove(s.Board()))
		}
	}
}
