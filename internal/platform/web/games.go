package web

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/t2048/internal/games/t2048"
)

// writeWait bounds a single event write to a WebSocket client.
const writeWait = 5 * time.Second

// liveGame is one session served over HTTP. mu guards every field and
// serializes all engine calls; session listeners run with mu held.
type liveGame struct {
	mu       sync.Mutex
	id       string
	round    string // recorder key of the current deal, renewed on reset
	session  *t2048.Session
	clients  map[*websocket.Conn]struct{}
	recorded bool
	logger   *log.Logger

	lastSeen atomic.Int64 // unix nanos of the last lookup
}

func newLiveGame(cfg t2048.Config, seed int64, logger *log.Logger) (*liveGame, error) {
	g := &liveGame{
		id:      uuid.NewString(),
		round:   newRoundID(),
		clients: make(map[*websocket.Conn]struct{}),
		logger:  logger,
	}

	session, err := t2048.NewSession(cfg, rand.New(rand.NewSource(seed)),
		t2048.WithLogger(logger),
		t2048.WithListener(g.broadcast),
	)
	if err != nil {
		return nil, err
	}
	g.session = session
	return g, nil
}

func (g *liveGame) touch(now time.Time) {
	g.lastSeen.Store(now.UnixNano())
}

// idleSince reports whether the game was last looked up before cutoff.
func (g *liveGame) idleSince(cutoff time.Time) bool {
	return g.lastSeen.Load() < cutoff.UnixNano()
}

// gameID is the registry ID results are filed under.
func (g *liveGame) gameID() string {
	if g.session.Config().WinValue == 0 {
		return "2048_endless"
	}
	return "2048"
}

// broadcast sends ev to every subscriber, dropping the ones that fail.
// Called with mu held.
func (g *liveGame) broadcast(ev t2048.Event) {
	for conn := range g.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(ev); err != nil {
			g.logger.Debug("dropping event subscriber", "game", g.id, "error", err)
			delete(g.clients, conn)
			conn.Close()
		}
	}
}

// closeClients disconnects every subscriber. Called with mu held.
func (g *liveGame) closeClients() {
	for conn := range g.clients {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "game closed"),
			time.Now().Add(writeWait))
		conn.Close()
		delete(g.clients, conn)
	}
}

// gameStore holds the live games by ID. Games that nobody has looked up
// for idleTTL and that have no event stream attached are evicted.
type gameStore struct {
	mu       sync.RWMutex
	games    map[string]*liveGame
	maxGames int           // 0 means unlimited
	idleTTL  time.Duration // 0 disables eviction
	now      func() time.Time
}

func newGameStore(maxGames int, idleTTL time.Duration) *gameStore {
	return &gameStore{
		games:    make(map[string]*liveGame),
		maxGames: maxGames,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// add stores g, evicting idle games first. It fails with errTooManyGames
// when the store is still full.
func (s *gameStore) add(g *liveGame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictIdleLocked()
	if s.maxGames > 0 && len(s.games) >= s.maxGames {
		return errTooManyGames
	}
	g.touch(s.now())
	s.games[g.id] = g
	return nil
}

func (s *gameStore) get(id string) (*liveGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[id]
	if !ok {
		return nil, errGameNotFound
	}
	g.touch(s.now())
	return g, nil
}

func (s *gameStore) remove(id string) (*liveGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return nil, errGameNotFound
	}
	delete(s.games, id)
	return g, nil
}

// sweep evicts idle games and returns how many were dropped.
func (s *gameStore) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictIdleLocked()
}

// evictIdleLocked drops idle games. Called with s.mu held.
func (s *gameStore) evictIdleLocked() int {
	if s.idleTTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idleTTL)
	evicted := 0
	for id, g := range s.games {
		if !g.idleSince(cutoff) {
			continue
		}
		g.mu.Lock()
		watched := len(g.clients) > 0
		g.mu.Unlock()
		if watched {
			continue
		}
		delete(s.games, id)
		evicted++
	}
	return evicted
}

func (s *gameStore) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, g := range s.games {
		g.mu.Lock()
		g.closeClients()
		g.mu.Unlock()
		delete(s.games, id)
	}
}
