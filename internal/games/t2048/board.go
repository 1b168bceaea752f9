package t2048

import (
	"fmt"
	"strconv"
	"strings"
)

// BoardSize is the default board dimension.
const BoardSize = 4

// Board dimension limits.
const (
	MinBoardSize = 2
	MaxBoardSize = 16
)

// Position addresses a cell. X is the column, Y is the row, (0, 0) is top-left.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p shifted by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Tile is a numbered tile. ID stays the same while the tile slides and
// when it absorbs another tile, so front ends can follow it across turns.
type Tile struct {
	ID    int `json:"id"`
	Value int `json:"value"`
}

// Board is an N×N grid of optional tiles.
type Board struct {
	rows   int
	cells  []Tile // row-major, Value == 0 means empty
	nextID int
}

// NewBoard creates an empty board with the given dimension.
func NewBoard(rows int) (*Board, error) {
	if rows < MinBoardSize || rows > MaxBoardSize {
		return nil, fmt.Errorf("%w: board size %d is outside %d..%d", ErrInvalidConfig, rows, MinBoardSize, MaxBoardSize)
	}
	return &Board{
		rows:   rows,
		cells:  make([]Tile, rows*rows),
		nextID: 1,
	}, nil
}

// NewBoardFromValues builds a board from a square grid of values indexed
// [y][x]. Zero means empty; every other value must be a power of two >= 2.
func NewBoardFromValues(values [][]int) (*Board, error) {
	b, err := NewBoard(len(values))
	if err != nil {
		return nil, err
	}
	for y, row := range values {
		if len(row) != b.rows {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidConfig, y, len(row), b.rows)
		}
		for x, v := range row {
			if v == 0 {
				continue
			}
			if !isTileValue(v) {
				return nil, fmt.Errorf("%w: value %d at %v is not a power of two", ErrInvalidConfig, v, Position{x, y})
			}
			b.place(Position{X: x, Y: y}, v)
		}
	}
	return b, nil
}

// Rows returns the board dimension N.
func (b *Board) Rows() int {
	return b.rows
}

// InBounds reports whether p addresses a cell of this board.
func (b *Board) InBounds(p Position) bool {
	return p.X >= 0 && p.X < b.rows && p.Y >= 0 && p.Y < b.rows
}

func (b *Board) index(p Position) int {
	return p.Y*b.rows + p.X
}

// TileAt returns a copy of the tile at p, or nil if the cell is empty.
func (b *Board) TileAt(p Position) (*Tile, error) {
	if !b.InBounds(p) {
		return nil, fmt.Errorf("%w: %v on %dx%d board", ErrOutOfBounds, p, b.rows, b.rows)
	}
	t := b.cells[b.index(p)]
	if t.Value == 0 {
		return nil, nil
	}
	return &t, nil
}

// SetTile stores t at p. A nil tile clears the cell.
func (b *Board) SetTile(p Position, t *Tile) error {
	if !b.InBounds(p) {
		return fmt.Errorf("%w: %v on %dx%d board", ErrOutOfBounds, p, b.rows, b.rows)
	}
	if t == nil {
		b.cells[b.index(p)] = Tile{}
		return nil
	}
	b.cells[b.index(p)] = *t
	if t.ID >= b.nextID {
		b.nextID = t.ID + 1
	}
	return nil
}

// at and put skip bounds checks; callers iterate over valid positions only.
func (b *Board) at(p Position) Tile {
	return b.cells[b.index(p)]
}

func (b *Board) put(p Position, t Tile) {
	b.cells[b.index(p)] = t
}

// place puts a brand new tile with a fresh ID at p.
func (b *Board) place(p Position, value int) Tile {
	t := Tile{ID: b.nextID, Value: value}
	b.nextID++
	b.put(p, t)
	return t
}

// EmptyPositions returns every empty cell in row-major order.
func (b *Board) EmptyPositions() []Position {
	var cells []Position
	for y := range b.rows {
		for x := range b.rows {
			if b.cells[y*b.rows+x].Value == 0 {
				cells = append(cells, Position{X: x, Y: y})
			}
		}
	}
	return cells
}

// IsFull returns true if no cell is empty.
func (b *Board) IsFull() bool {
	for _, t := range b.cells {
		if t.Value == 0 {
			return false
		}
	}
	return true
}

// Count returns the number of tiles on the board.
func (b *Board) Count() int {
	n := 0
	for _, t := range b.cells {
		if t.Value != 0 {
			n++
		}
	}
	return n
}

// Sum returns the total value of all tiles.
func (b *Board) Sum() int {
	sum := 0
	for _, t := range b.cells {
		sum += t.Value
	}
	return sum
}

// MaxValue returns the maximum tile value on the board.
func (b *Board) MaxValue() int {
	maxVal := 0
	for _, t := range b.cells {
		if t.Value > maxVal {
			maxVal = t.Value
		}
	}
	return maxVal
}

// Values returns the tile values as a [y][x] grid with 0 for empty cells.
func (b *Board) Values() [][]int {
	grid := make([][]int, b.rows)
	for y := range b.rows {
		grid[y] = make([]int, b.rows)
		for x := range b.rows {
			grid[y][x] = b.cells[y*b.rows+x].Value
		}
	}
	return grid
}

// Clone returns an independent copy, tile IDs included.
func (b *Board) Clone() *Board {
	cells := make([]Tile, len(b.cells))
	copy(cells, b.cells)
	return &Board{rows: b.rows, cells: cells, nextID: b.nextID}
}

// Equal reports whether both boards hold the same values in the same cells.
// Tile IDs are ignored.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.rows != other.rows {
		return false
	}
	for i := range b.cells {
		if b.cells[i].Value != other.cells[i].Value {
			return false
		}
	}
	return true
}

// String renders the board as rows of right-aligned values, "." for empty.
func (b *Board) String() string {
	width := len(strconv.Itoa(b.MaxValue()))
	if width < 1 {
		width = 1
	}
	var sb strings.Builder
	for y := range b.rows {
		for x := range b.rows {
			if x > 0 {
				sb.WriteByte(' ')
			}
			v := b.cells[y*b.rows+x].Value
			cell := "."
			if v != 0 {
				cell = strconv.Itoa(v)
			}
			sb.WriteString(strings.Repeat(" ", width-len(cell)))
			sb.WriteString(cell)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// isTileValue reports whether v is a power of two >= 2.
func isTileValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
