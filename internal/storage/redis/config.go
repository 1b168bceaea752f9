package redis

// Config holds Redis connection and leaderboard settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// MaxEntries caps each game's board; lower scores are evicted first.
	// Zero keeps everything.
	MaxEntries int
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		MaxEntries:   1000,
	}
}
