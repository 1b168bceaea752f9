package t2048

import "fmt"

// BaseTileValue is the value of a freshly spawned tile.
const BaseTileValue = 2

// Source is the randomness the spawner needs. *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Spawner places new tiles on uniformly random empty cells.
type Spawner struct {
	rng        Source
	fourChance float64
}

// NewSpawner creates a spawner. fourChance is the probability (0.0-1.0) of
// spawning a 4 instead of a 2; zero spawns only 2s.
func NewSpawner(rng Source, fourChance float64) *Spawner {
	return &Spawner{rng: rng, fourChance: fourChance}
}

// Spawn places one tile on b.
func (s *Spawner) Spawn(b *Board) (PlacedTile, error) {
	empty := b.EmptyPositions()
	if len(empty) == 0 {
		return PlacedTile{}, fmt.Errorf("spawn: %w", ErrBoardFull)
	}

	pos := empty[s.rng.Intn(len(empty))]

	value := BaseTileValue
	if s.fourChance > 0 && s.rng.Float64() < s.fourChance {
		value = BaseTileValue * 2
	}

	return PlacedTile{Position: pos, Tile: b.place(pos, value)}, nil
}
