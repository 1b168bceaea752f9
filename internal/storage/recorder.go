package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	leaderboard "github.com/vovakirdan/t2048/internal/storage/redis"
)

// Recorder writes finished games to the local history and, when one is
// configured, the shared leaderboard. Either backend may be nil.
type Recorder struct {
	store  *Store
	board  *leaderboard.Leaderboard
	logger *log.Logger
}

// NewRecorder creates a recorder. A nil logger discards output.
func NewRecorder(store *Store, board *leaderboard.Leaderboard, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{store: store, board: board, logger: logger}
}

// Store returns the SQLite store, or nil.
func (r *Recorder) Store() *Store {
	if r == nil {
		return nil
	}
	return r.store
}

// Leaderboard returns the Redis leaderboard, or nil.
func (r *Recorder) Leaderboard() *leaderboard.Leaderboard {
	if r == nil {
		return nil
	}
	return r.board
}

// Record stores res under sessionID in every configured backend.
// A failing backend does not stop the other; both errors are returned.
func (r *Recorder) Record(ctx context.Context, sessionID string, res Result) error {
	if r == nil {
		return nil
	}

	var errs []error

	if r.store != nil {
		if _, err := r.store.SaveResult(res); err != nil {
			errs = append(errs, err)
		}
	}

	if r.board != nil {
		err := r.board.Submit(ctx, leaderboard.Entry{
			SessionID: sessionID,
			GameID:    res.GameID,
			Score:     res.Score,
			MaxTile:   res.MaxTile,
			Rows:      res.Rows,
			Won:       res.Won,
			At:        time.Now().UTC(),
		})
		if err != nil {
			errs = append(errs, err)
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		r.logger.Warn("could not record result", "session", sessionID, "game", res.GameID, "error", err)
	} else {
		r.logger.Debug("result recorded", "session", sessionID, "game", res.GameID, "score", res.Score)
	}
	return err
}

// Close closes both backends.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	var errs []error
	if r.store != nil {
		errs = append(errs, r.store.Close())
	}
	if r.board != nil {
		errs = append(errs, r.board.Close())
	}
	return errors.Join(errs...)
}
