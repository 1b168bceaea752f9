package web

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/t2048/internal/games/t2048"
)

// EventSnapshot is the first message on a new event stream.
const EventSnapshot t2048.EventKind = "snapshot"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

func newRoundID() string {
	return uuid.NewString()
}

// handleEvents handles GET /api/v1/games/{id}/events. It upgrades to a
// WebSocket, sends the current snapshot and then every engine event until
// the client disconnects or the game is deleted.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.get(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		s.logger.Warn("websocket upgrade failed", "game", g.id, "error", err)
		return
	}

	g.mu.Lock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	err = conn.WriteJSON(t2048.Event{Kind: EventSnapshot, Snapshot: g.session.Snapshot()})
	if err == nil {
		g.clients[conn] = struct{}{}
	}
	g.mu.Unlock()
	if err != nil {
		conn.Close()
		return
	}

	// The stream is one-way; reading only notices the client going away.
	go func() {
		defer func() {
			g.mu.Lock()
			if _, ok := g.clients[conn]; ok {
				delete(g.clients, conn)
				conn.Close()
			}
			g.mu.Unlock()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
