// Package web serves 2048 sessions over a JSON HTTP API with a WebSocket
// event stream per game.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/t2048/internal/games/t2048"
	"github.com/vovakirdan/t2048/internal/storage"
)

// Config holds configuration for the HTTP server.
type Config struct {
	Addr            string
	Engine          t2048.Config // Defaults for fields a create request leaves out
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxGames        int           // Live games kept at once, 0 for no limit
	GameIdleTTL     time.Duration // Unwatched games idle this long are dropped, 0 keeps them
}

// DefaultConfig returns sensible defaults for the HTTP server.
func DefaultConfig() Config {
	return Config{
		Addr:            "127.0.0.1:8080",
		Engine:          t2048.DefaultConfig(),
		ReadTimeout:     15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MaxGames:        1000,
		GameIdleTTL:     30 * time.Minute,
	}
}

// Server wraps the HTTP server with graceful shutdown support.
type Server struct {
	config   Config
	games    *gameStore
	recorder *storage.Recorder
	logger   *log.Logger
	server   *http.Server
}

// NewServer creates a server. rec may be nil, in which case nothing is
// recorded and the leaderboard is empty. A nil logger discards output.
func NewServer(cfg Config, rec *storage.Recorder, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		config:   cfg,
		games:    newGameStore(cfg.MaxGames, cfg.GameIdleTTL),
		recorder: rec,
		logger:   logger,
	}
	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: cfg.ReadTimeout,
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return newRouter(s)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.config.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
		close(errCh)
	}()

	if s.config.GameIdleTTL > 0 {
		go s.sweepIdle(ctx, max(s.config.GameIdleTTL/4, time.Second))
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	s.games.closeAll()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

// sweepIdle evicts idle games every interval until ctx is cancelled.
func (s *Server) sweepIdle(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.games.sweep(); n > 0 {
				s.logger.Info("evicted idle games", "count", n)
			}
		}
	}
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.config.Addr
}
