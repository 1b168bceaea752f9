// Package t2048 implements the 2048 sliding-tile engine: board, move
// resolution, spawning and the session state machine, plus the adapter that
// drives it from a tick-based terminal loop.
package t2048

// Level is a named win target offered by the mode selector.
type Level struct {
	ID         int
	Name       string
	Target     int     // Winning tile value
	FourChance float64 // Probability of spawning 4 instead of 2 (0.0-1.0)
}

// Levels lists the selectable targets in increasing difficulty.
var Levels = []Level{
	{ID: 1, Name: "Warm-up", Target: 128, FourChance: 0},
	{ID: 2, Name: "Getting Started", Target: 256, FourChance: 0},
	{ID: 3, Name: "Building Momentum", Target: 512, FourChance: 0},
	{ID: 4, Name: "The Climb", Target: 1024, FourChance: 0},
	{ID: 5, Name: "Classic 2048", Target: 2048, FourChance: 0},
	{ID: 6, Name: "Beyond Limits", Target: 4096, FourChance: 0.10},
	{ID: 7, Name: "Master Class", Target: 8192, FourChance: 0.15},
}

// LevelCount returns the number of levels.
func LevelCount() int {
	return len(Levels)
}

// Apply returns cfg with the level's target and spawn odds.
func (l Level) Apply(cfg Config) Config {
	cfg.WinValue = l.Target
	cfg.FourChance = l.FourChance
	return cfg
}
