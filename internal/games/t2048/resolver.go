package t2048

import "fmt"

// Transition records what happened to one tile during a turn.
// Tiles that neither moved nor merged produce no transition.
//
// Value is the merged value at To for an absorbed tile (Merged). For a tile
// that slid it is the tile's own value while moving, so a tile that slides
// and then absorbs another reports its pre-merge value.
type Transition struct {
	TileID int      `json:"tile_id"`
	From   Position `json:"from"`
	To     Position `json:"to"`
	Merged bool     `json:"merged"` // tile was absorbed by the tile at To
	Value  int      `json:"value"`
}

// Result is the outcome of resolving one direction against a board.
type Result struct {
	Board       *Board
	Transitions []Transition
	ScoreDelta  int
	Moved       bool
}

// Resolve slides and merges every tile of b in direction d.
// The input board is left untouched; Result.Board is a new board.
//
// Each line parallel to d is swept from the wall inward. A tile either merges
// into the last tile placed in its line (equal value, and that tile has not
// merged yet this turn) or takes the next free slot from the wall. Empty cells
// between two equal tiles do not prevent the merge.
func Resolve(b *Board, d Direction) (Result, error) {
	if !d.Valid() {
		return Result{}, fmt.Errorf("resolve: %w: %d", ErrInvalidDirection, int(d))
	}

	out := &Board{rows: b.rows, cells: make([]Tile, len(b.cells)), nextID: b.nextID}
	res := Result{Board: out}

	for line := range b.rows {
		wall, step := lineStart(b.rows, line, d)

		var (
			last       Position
			hasLast    bool
			lastMerged bool
			slot       = wall
		)

		for k, p := 0, wall; k < b.rows; k, p = k+1, p.Add(step.X, step.Y) {
			t := b.at(p)
			if t.Value == 0 {
				continue
			}

			if hasLast && !lastMerged && out.at(last).Value == t.Value {
				target := out.at(last)
				target.Value *= 2
				out.put(last, target)

				res.Transitions = append(res.Transitions, Transition{
					TileID: t.ID,
					From:   p,
					To:     last,
					Merged: true,
					Value:  target.Value,
				})
				res.ScoreDelta += target.Value
				res.Moved = true
				lastMerged = true
				continue
			}

			out.put(slot, t)
			if slot != p {
				res.Transitions = append(res.Transitions, Transition{
					TileID: t.ID,
					From:   p,
					To:     slot,
					Value:  t.Value,
				})
				res.Moved = true
			}

			last, hasLast, lastMerged = slot, true, false
			slot = slot.Add(step.X, step.Y)
		}
	}

	return res, nil
}

// lineStart returns the wall cell of the given line and the inward step.
// For horizontal moves a line is a row; for vertical moves it is a column.
func lineStart(rows, line int, d Direction) (wall, step Position) {
	dx, dy := d.vector()
	step = Position{X: -dx, Y: -dy}

	switch {
	case dx < 0:
		wall = Position{X: 0, Y: line}
	case dx > 0:
		wall = Position{X: rows - 1, Y: line}
	case dy < 0:
		wall = Position{X: line, Y: 0}
	default:
		wall = Position{X: line, Y: rows - 1}
	}
	return wall, step
}

// CanMove returns true if any direction changes the board.
// It dry-runs the resolver and never modifies b.
func CanMove(b *Board) bool {
	if !b.IsFull() {
		return true
	}
	for _, d := range Directions {
		res, err := Resolve(b, d)
		if err == nil && res.Moved {
			return true
		}
	}
	return false
}

// IsGameOver returns true if the board is full and no direction moves it.
func IsGameOver(b *Board) bool {
	return !CanMove(b)
}
