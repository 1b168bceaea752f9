package t2048

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource replays fixed random values, repeating the last one.
type scriptedSource struct {
	ints   []int
	floats []float64
}

func (s *scriptedSource) Intn(n int) int {
	v := 0
	if len(s.ints) > 0 {
		v = s.ints[0]
		if len(s.ints) > 1 {
			s.ints = s.ints[1:]
		}
	}
	return v % n
}

func (s *scriptedSource) Float64() float64 {
	v := 0.99
	if len(s.floats) > 0 {
		v = s.floats[0]
		if len(s.floats) > 1 {
			s.floats = s.floats[1:]
		}
	}
	return v
}

func TestSpawnPicksEmptyCell(t *testing.T) {
	b := mustBoard(t, [][]int{
		{2, 0},
		{0, 4},
	})
	// Empty cells in row-major order are (1,0) and (0,1).
	sp := NewSpawner(&scriptedSource{ints: []int{1}}, 0)

	placed, err := sp.Spawn(b)
	require.NoError(t, err)
	assert.Equal(t, Position{X: 0, Y: 1}, placed.Position)
	assert.Equal(t, BaseTileValue, placed.Tile.Value)

	tile, err := b.TileAt(placed.Position)
	require.NoError(t, err)
	require.NotNil(t, tile)
	assert.Equal(t, placed.Tile, *tile)
	assert.Equal(t, 3, b.Count())
}

func TestSpawnFourChance(t *testing.T) {
	b, err := NewBoard(3)
	require.NoError(t, err)

	sp := NewSpawner(&scriptedSource{floats: []float64{0.05, 0.5}}, 0.1)

	first, err := sp.Spawn(b)
	require.NoError(t, err)
	assert.Equal(t, 4, first.Tile.Value)

	second, err := sp.Spawn(b)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Tile.Value)
	assert.NotEqual(t, first.Tile.ID, second.Tile.ID)
}

func TestSpawnFullBoard(t *testing.T) {
	b := mustBoard(t, [][]int{
		{2, 4},
		{8, 16},
	})
	sp := NewSpawner(rand.New(rand.NewSource(1)), 0)

	_, err := sp.Spawn(b)
	assert.ErrorIs(t, err, ErrBoardFull)
	assert.Equal(t, [][]int{{2, 4}, {8, 16}}, b.Values())
}

func TestSpawnFillsBoard(t *testing.T) {
	b, err := NewBoard(4)
	require.NoError(t, err)
	sp := NewSpawner(rand.New(rand.NewSource(99)), 0.1)

	for i := range 16 {
		placed, err := sp.Spawn(b)
		require.NoError(t, err)
		assert.Contains(t, []int{2, 4}, placed.Tile.Value)
		assert.Equal(t, i+1, b.Count())
	}
	assert.True(t, b.IsFull())

	_, err = sp.Spawn(b)
	assert.ErrorIs(t, err, ErrBoardFull)
}
