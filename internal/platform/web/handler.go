package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/vovakirdan/t2048/internal/games/t2048"
	"github.com/vovakirdan/t2048/internal/storage"
)

// Leaderboard page sizes.
const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

// CreateGameRequest is the body of POST /games. Zero fields take the
// server's defaults.
type CreateGameRequest struct {
	Rows       int      `json:"rows"`
	WinValue   int      `json:"win_value"`
	StartTiles int      `json:"start_tiles"`
	FourChance *float64 `json:"four_chance"`
	Endless    bool     `json:"endless"`
	Seed       int64    `json:"seed"`
}

// MoveRequest is the body of POST /games/{id}/moves.
type MoveRequest struct {
	Direction string `json:"direction"`
}

// GameResponse is a game's ID plus its snapshot.
type GameResponse struct {
	ID string `json:"id"`
	t2048.Snapshot
}

// MoveResponse reports one applied direction.
type MoveResponse struct {
	Turn t2048.Turn   `json:"turn"`
	Game GameResponse `json:"game"`
}

// LeaderboardEntry is one ranked result.
type LeaderboardEntry struct {
	Rank    int       `json:"rank"`
	Score   int       `json:"score"`
	MaxTile int       `json:"max_tile"`
	Rows    int       `json:"rows"`
	Won     bool      `json:"won"`
	At      time.Time `json:"at"`
}

// LeaderboardResponse lists the top results of one game.
type LeaderboardResponse struct {
	Game    string             `json:"game"`
	Source  string             `json:"source"` // "redis", "sqlite" or "none"
	Entries []LeaderboardEntry `json:"entries"`
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return invalidRequest("invalid JSON body: " + err.Error())
	}
	return nil
}

func (s *Server) engineConfig(req CreateGameRequest) t2048.Config {
	cfg := s.config.Engine
	if req.Rows != 0 {
		cfg.Rows = req.Rows
	}
	if req.WinValue != 0 {
		cfg.WinValue = req.WinValue
	}
	if req.StartTiles != 0 {
		cfg.StartTiles = req.StartTiles
	}
	if req.FourChance != nil {
		cfg.FourChance = *req.FourChance
	}
	if req.Endless {
		cfg.WinValue = 0
	}
	return cfg
}

// handleCreate handles POST /api/v1/games.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g, err := newLiveGame(s.engineConfig(req), seed, s.logger)
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := s.games.add(g); err != nil {
		s.logger.Warn("game rejected", "error", err)
		WriteError(w, err)
		return
	}
	s.logger.Info("game created", "game", g.id, "rows", g.session.Config().Rows, "seed", seed)

	g.mu.Lock()
	resp := GameResponse{ID: g.id, Snapshot: g.session.Snapshot()}
	g.mu.Unlock()

	JSON(w, http.StatusCreated, resp)
}

// handleGet handles GET /api/v1/games/{id}.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.get(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, err)
		return
	}

	g.mu.Lock()
	resp := GameResponse{ID: g.id, Snapshot: g.session.Snapshot()}
	g.mu.Unlock()

	JSON(w, http.StatusOK, resp)
}

// handleMove handles POST /api/v1/games/{id}/moves.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.get(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, err)
		return
	}

	var req MoveRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	dir, err := t2048.ParseDirection(req.Direction)
	if err != nil {
		WriteError(w, err)
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	turn, err := g.session.ApplyDirection(dir)
	if err != nil {
		WriteError(w, err)
		return
	}

	if turn.State.Terminal() && !g.recorded {
		g.recorded = true
		s.record(r.Context(), g)
	}

	JSON(w, http.StatusOK, MoveResponse{
		Turn: turn,
		Game: GameResponse{ID: g.id, Snapshot: g.session.Snapshot()},
	})
}

// record files a finished game. Called with g.mu held.
func (s *Server) record(ctx context.Context, g *liveGame) {
	if s.recorder == nil {
		return
	}
	snap := g.session.Snapshot()
	//nolint:errcheck // Best-effort save, the recorder logs failures
	s.recorder.Record(ctx, g.round, storage.Result{
		GameID:  g.gameID(),
		Score:   snap.Score,
		MaxTile: snap.MaxTile,
		Rows:    snap.Rows,
		Turns:   snap.Turns,
		Won:     snap.State == t2048.StateWon,
	})
}

// handleReset handles POST /api/v1/games/{id}/reset.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.get(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, err)
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.session.NewGame(); err != nil {
		WriteError(w, err)
		return
	}
	g.round = newRoundID()
	g.recorded = false

	JSON(w, http.StatusOK, GameResponse{ID: g.id, Snapshot: g.session.Snapshot()})
}

// handleDelete handles DELETE /api/v1/games/{id}.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.remove(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, err)
		return
	}

	g.mu.Lock()
	g.closeClients()
	g.mu.Unlock()

	NoContent(w)
}

// handleLeaderboard handles GET /api/v1/leaderboard/{game}?limit=n.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["game"]

	limit := defaultLeaderboardLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			WriteError(w, invalidRequest("limit must be a positive integer"))
			return
		}
		limit = min(n, maxLeaderboardLimit)
	}

	resp := LeaderboardResponse{Game: gameID, Source: "none", Entries: []LeaderboardEntry{}}

	switch {
	case s.recorder.Leaderboard() != nil:
		top, err := s.recorder.Leaderboard().Top(r.Context(), gameID, limit)
		if err != nil {
			s.logger.Error("leaderboard query failed", "game", gameID, "error", err)
			WriteError(w, err)
			return
		}
		resp.Source = "redis"
		for i, e := range top {
			resp.Entries = append(resp.Entries, LeaderboardEntry{
				Rank: i + 1, Score: e.Score, MaxTile: e.MaxTile, Rows: e.Rows, Won: e.Won, At: e.At,
			})
		}

	case s.recorder.Store() != nil:
		top, err := s.recorder.Store().TopScores(gameID, limit)
		if err != nil {
			s.logger.Error("score query failed", "game", gameID, "error", err)
			WriteError(w, err)
			return
		}
		resp.Source = "sqlite"
		for i, e := range top {
			resp.Entries = append(resp.Entries, LeaderboardEntry{
				Rank: i + 1, Score: e.Score, MaxTile: e.MaxTile, Rows: e.Rows, Won: e.Won, At: e.CreatedAt,
			})
		}
	}

	JSON(w, http.StatusOK, resp)
}
