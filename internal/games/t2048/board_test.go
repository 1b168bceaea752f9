package t2048

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustBoard builds a board from a [y][x] grid or fails the test.
func mustBoard(t *testing.T, values [][]int) *Board {
	t.Helper()
	b, err := NewBoardFromValues(values)
	require.NoError(t, err)
	return b
}

func TestNewBoard(t *testing.T) {
	b, err := NewBoard(5)
	require.NoError(t, err)
	assert.Equal(t, 5, b.Rows())
	assert.Equal(t, 0, b.Count())
	assert.Len(t, b.EmptyPositions(), 25)
	assert.False(t, b.IsFull())

	_, err = NewBoard(1)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewBoard(MaxBoardSize + 1)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewBoardFromValuesRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		values [][]int
	}{
		{"ragged", [][]int{{2, 0}, {0}}},
		{"not power of two", [][]int{{3, 0}, {0, 0}}},
		{"one is not a tile", [][]int{{1, 0}, {0, 0}}},
		{"negative", [][]int{{-2, 0}, {0, 0}}},
		{"too small", [][]int{{2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoardFromValues(tt.values)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestBoardTileAccess(t *testing.T) {
	b := mustBoard(t, [][]int{
		{2, 0},
		{0, 4},
	})

	tile, err := b.TileAt(Position{X: 0, Y: 0})
	require.NoError(t, err)
	require.NotNil(t, tile)
	assert.Equal(t, 2, tile.Value)

	tile, err = b.TileAt(Position{X: 1, Y: 0})
	require.NoError(t, err)
	assert.Nil(t, tile)

	// TileAt hands out a copy.
	tile, _ = b.TileAt(Position{X: 1, Y: 1})
	tile.Value = 64
	again, _ := b.TileAt(Position{X: 1, Y: 1})
	assert.Equal(t, 4, again.Value)

	require.NoError(t, b.SetTile(Position{X: 1, Y: 0}, &Tile{ID: 40, Value: 8}))
	require.NoError(t, b.SetTile(Position{X: 0, Y: 0}, nil))
	assert.Equal(t, [][]int{{0, 8}, {0, 4}}, b.Values())

	// A placed tile never reuses an ID handed in through SetTile.
	placed := b.place(Position{X: 0, Y: 0}, 2)
	assert.Equal(t, 41, placed.ID)
}

func TestBoardOutOfBounds(t *testing.T) {
	b := mustBoard(t, [][]int{
		{2, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	})

	for _, p := range []Position{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {5, 5}} {
		assert.False(t, b.InBounds(p), "%v", p)

		_, err := b.TileAt(p)
		assert.ErrorIs(t, err, ErrOutOfBounds, "TileAt %v", p)

		err = b.SetTile(p, &Tile{Value: 2})
		assert.ErrorIs(t, err, ErrOutOfBounds, "SetTile %v", p)
	}
}

func TestBoardAggregates(t *testing.T) {
	b := mustBoard(t, [][]int{
		{2, 0, 8, 0},
		{0, 64, 0, 256},
		{512, 0, 2048, 0},
		{0, 16, 0, 64},
	})

	assert.Equal(t, 8, b.Count())
	assert.Len(t, b.EmptyPositions(), 8)
	assert.Equal(t, 2048, b.MaxValue())
	assert.Equal(t, 2+8+64+256+512+2048+16+64, b.Sum())
	assert.Equal(t, Position{X: 1, Y: 0}, b.EmptyPositions()[0])
}

func TestBoardCloneIsIndependent(t *testing.T) {
	b := mustBoard(t, [][]int{
		{2, 4},
		{0, 0},
	})
	c := b.Clone()
	require.True(t, b.Equal(c))

	require.NoError(t, c.SetTile(Position{X: 0, Y: 1}, &Tile{ID: 9, Value: 8}))
	assert.False(t, b.Equal(c))
	assert.Equal(t, 2, b.Count())
}

func TestBoardEqualIgnoresIDs(t *testing.T) {
	a := mustBoard(t, [][]int{{2, 0}, {0, 4}})
	b, err := NewBoard(2)
	require.NoError(t, err)
	require.NoError(t, b.SetTile(Position{X: 1, Y: 1}, &Tile{ID: 7, Value: 4}))
	require.NoError(t, b.SetTile(Position{X: 0, Y: 0}, &Tile{ID: 8, Value: 2}))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(nil))
	assert.False(t, a.Equal(mustBoard(t, [][]int{{2, 0, 0}, {0, 4, 0}, {0, 0, 0}})))
}

func TestBoardString(t *testing.T) {
	b := mustBoard(t, [][]int{
		{2, 0},
		{128, 4},
	})

	want := "  2   .\n128   4\n"
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("String() mismatch (-want +got):\n%s", diff)
	}
}

func TestBoardTilesRowMajor(t *testing.T) {
	b := mustBoard(t, [][]int{
		{0, 2},
		{4, 0},
	})

	tiles := b.Tiles()
	require.Len(t, tiles, 2)
	assert.Equal(t, Position{X: 1, Y: 0}, tiles[0].Position)
	assert.Equal(t, 2, tiles[0].Tile.Value)
	assert.Equal(t, Position{X: 0, Y: 1}, tiles[1].Position)
	assert.Equal(t, 4, tiles[1].Tile.Value)
	assert.NotEqual(t, tiles[0].Tile.ID, tiles[1].Tile.ID)
}
