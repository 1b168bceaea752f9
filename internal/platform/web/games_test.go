package web

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/t2048/internal/games/t2048"
)

func newTestGame(t *testing.T) *liveGame {
	t.Helper()
	g, err := newLiveGame(t2048.DefaultConfig(), 1, log.New(io.Discard))
	require.NoError(t, err)
	return g
}

// fakeClock returns a store clock and a function that advances it.
func fakeClock(store *gameStore) func(time.Duration) {
	now := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return now }
	return func(d time.Duration) { now = now.Add(d) }
}

func TestGameStoreEvictsIdleGames(t *testing.T) {
	store := newGameStore(0, time.Minute)
	advance := fakeClock(store)

	idle, busy := newTestGame(t), newTestGame(t)
	require.NoError(t, store.add(idle))
	require.NoError(t, store.add(busy))

	advance(45 * time.Second)
	_, err := store.get(busy.id)
	require.NoError(t, err)

	advance(30 * time.Second)
	assert.Equal(t, 1, store.sweep())

	_, err = store.get(idle.id)
	assert.ErrorIs(t, err, errGameNotFound)
	_, err = store.get(busy.id)
	assert.NoError(t, err)
}

func TestGameStoreKeepsWatchedGames(t *testing.T) {
	store := newGameStore(0, time.Minute)
	advance := fakeClock(store)

	g := newTestGame(t)
	g.clients[&websocket.Conn{}] = struct{}{}
	require.NoError(t, store.add(g))

	advance(time.Hour)
	assert.Equal(t, 0, store.sweep())
	_, err := store.get(g.id)
	assert.NoError(t, err)
}

func TestGameStoreWithoutTTLNeverEvicts(t *testing.T) {
	store := newGameStore(0, 0)
	advance := fakeClock(store)

	g := newTestGame(t)
	require.NoError(t, store.add(g))

	advance(24 * time.Hour)
	assert.Equal(t, 0, store.sweep())
	_, err := store.get(g.id)
	assert.NoError(t, err)
}

func TestGameStoreLimit(t *testing.T) {
	store := newGameStore(2, time.Minute)
	advance := fakeClock(store)

	require.NoError(t, store.add(newTestGame(t)))
	require.NoError(t, store.add(newTestGame(t)))
	assert.ErrorIs(t, store.add(newTestGame(t)), errTooManyGames)

	// Once the first two go idle, adding makes room for the new game.
	advance(2 * time.Minute)
	require.NoError(t, store.add(newTestGame(t)))
	assert.Len(t, store.games, 1)
}
