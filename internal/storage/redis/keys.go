package redis

import "fmt"

// Key prefix for all leaderboard data
const keyPrefix = "t2048"

// boardKey returns the sorted set holding session IDs scored by game score
func boardKey(gameID string) string {
	return fmt.Sprintf("%s:leaderboard:%s", keyPrefix, gameID)
}

// entriesKey returns the hash holding entry details by session ID
func entriesKey(gameID string) string {
	return fmt.Sprintf("%s:entries:%s", keyPrefix, gameID)
}
