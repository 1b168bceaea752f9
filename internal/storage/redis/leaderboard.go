// Package redis implements the shared leaderboard on Redis sorted sets.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotRanked is returned by Rank for a session without a stored score.
var ErrNotRanked = errors.New("leaderboard: session not ranked")

// Entry is one finished game on the leaderboard.
type Entry struct {
	SessionID string    `json:"session_id"`
	GameID    string    `json:"game_id"`
	Score     int       `json:"score"`
	MaxTile   int       `json:"max_tile"`
	Rows      int       `json:"rows"`
	Won       bool      `json:"won"`
	At        time.Time `json:"at"`
}

// Leaderboard keeps the best scores per game.
type Leaderboard struct {
	client *redis.Client
	cfg    Config
}

// New creates a leaderboard and verifies the connection
func New(cfg Config) (*Leaderboard, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: bad url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("leaderboard: ping: %w", err)
	}

	return &Leaderboard{client: client, cfg: cfg}, nil
}

// NewWithClient creates a leaderboard with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Leaderboard {
	return &Leaderboard{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (l *Leaderboard) Close() error {
	return l.client.Close()
}

// Submit stores e. Submitting the same session again replaces its entry.
func (l *Leaderboard) Submit(ctx context.Context, e Entry) error {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	pipe := l.client.TxPipeline()
	pipe.ZAdd(ctx, boardKey(e.GameID), redis.Z{Score: float64(e.Score), Member: e.SessionID})
	pipe.HSet(ctx, entriesKey(e.GameID), e.SessionID, data)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("leaderboard: submit: %w", err)
	}

	return l.trim(ctx, e.GameID)
}

// trim evicts the lowest scores beyond MaxEntries.
func (l *Leaderboard) trim(ctx context.Context, gameID string) error {
	if l.cfg.MaxEntries <= 0 {
		return nil
	}

	count, err := l.client.ZCard(ctx, boardKey(gameID)).Result()
	if err != nil {
		return fmt.Errorf("leaderboard: trim: %w", err)
	}
	excess := count - int64(l.cfg.MaxEntries)
	if excess <= 0 {
		return nil
	}

	evicted, err := l.client.ZRange(ctx, boardKey(gameID), 0, excess-1).Result()
	if err != nil {
		return fmt.Errorf("leaderboard: trim: %w", err)
	}

	members := make([]any, len(evicted))
	for i, m := range evicted {
		members[i] = m
	}

	pipe := l.client.TxPipeline()
	pipe.ZRem(ctx, boardKey(gameID), members...)
	pipe.HDel(ctx, entriesKey(gameID), evicted...)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("leaderboard: trim: %w", err)
	}
	return nil
}

// Top returns up to limit entries, best first.
func (l *Leaderboard) Top(ctx context.Context, gameID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	ids, err := l.client.ZRevRange(ctx, boardKey(gameID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("leaderboard: top: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	raw, err := l.client.HMGet(ctx, entriesKey(gameID), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("leaderboard: top: %w", err)
	}

	entries := make([]Entry, 0, len(ids))
	for i, v := range raw {
		s, ok := v.(string)
		if !ok {
			// Details are gone but the score survived; keep what the set knows.
			score, _ := l.client.ZScore(ctx, boardKey(gameID), ids[i]).Result()
			entries = append(entries, Entry{SessionID: ids[i], GameID: gameID, Score: int(score)})
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			return nil, fmt.Errorf("leaderboard: decode %s: %w", ids[i], err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Rank returns the 1-based position of a session, best score first.
func (l *Leaderboard) Rank(ctx context.Context, gameID, sessionID string) (int, error) {
	rank, err := l.client.ZRevRank(ctx, boardKey(gameID), sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotRanked
		}
		return 0, fmt.Errorf("leaderboard: rank: %w", err)
	}
	return int(rank) + 1, nil
}

// Count returns the number of ranked sessions for a game.
func (l *Leaderboard) Count(ctx context.Context, gameID string) (int, error) {
	n, err := l.client.ZCard(ctx, boardKey(gameID)).Result()
	if err != nil {
		return 0, fmt.Errorf("leaderboard: count: %w", err)
	}
	return int(n), nil
}
