package t2048

// PlacedTile is a tile together with the cell it occupies.
type PlacedTile struct {
	Position Position `json:"position"`
	Tile     Tile     `json:"tile"`
}

// Snapshot captures the complete session state for rendering, replay checks
// and the HTTP API.
type Snapshot struct {
	Rows     int          `json:"rows"`
	Score    int          `json:"score"`
	Turns    int          `json:"turns"`
	WinValue int          `json:"win_value"`
	MaxTile  int          `json:"max_tile"`
	State    State        `json:"state"`
	Board    [][]int      `json:"board"`
	Tiles    []PlacedTile `json:"tiles"`
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Rows:     s.board.Rows(),
		Score:    s.score,
		Turns:    s.turns,
		WinValue: s.cfg.WinValue,
		MaxTile:  s.board.MaxValue(),
		State:    s.state,
		Board:    s.board.Values(),
		Tiles:    s.board.Tiles(),
	}
}

// Tiles lists every tile with its position in row-major order.
func (b *Board) Tiles() []PlacedTile {
	tiles := make([]PlacedTile, 0, b.Count())
	for y := range b.rows {
		for x := range b.rows {
			t := b.cells[y*b.rows+x]
			if t.Value != 0 {
				tiles = append(tiles, PlacedTile{Position: Position{X: x, Y: y}, Tile: t})
			}
		}
	}
	return tiles
}
