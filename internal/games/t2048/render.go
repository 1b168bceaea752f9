package t2048

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/t2048/internal/core"
)

const (
	cellWidth  = 6 // Width of each cell (including left border), fits 65536
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3 // Title, score and mode lines above the board
)

// boardExtent returns the on-screen size of a rows x rows grid.
func boardExtent(rows int) (w, h int) {
	return rows*cellWidth + 1, rows*cellHeight + 1
}

// tileColor picks the display color for a tile value.
func tileColor(v int) core.Color {
	switch {
	case v <= 2:
		return core.ColorWhite
	case v == 4:
		return core.ColorBrightWhite
	case v == 8:
		return core.ColorOrange
	case v == 16:
		return core.ColorYellow
	case v == 32:
		return core.ColorRed
	case v == 64:
		return core.ColorBrightRed
	case v == 128:
		return core.ColorCyan
	case v == 256:
		return core.ColorBlue
	case v == 512:
		return core.ColorGreen
	case v == 1024:
		return core.ColorMagenta
	case v == 2048:
		return core.ColorGold
	default:
		return core.ColorBrightYellow
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := boardExtent(g.cfg.Rows)
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderGrid(dst, boardX, boardY)
	g.renderTiles(dst, boardX, boardY)
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the score, target and mode lines.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := "2048"
	dst.DrawTextColor(boardX+(boardW-len(title))/2, 0, title, core.ColorGold)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.session.Score()))

	var info string
	if g.cfg.WinValue > 0 {
		info = fmt.Sprintf("Target: %d", g.cfg.WinValue)
	} else {
		info = fmt.Sprintf("Max: %d", g.session.board.MaxValue())
	}
	infoX := max(boardX+boardW-len(info), boardX)
	dst.DrawText(infoX, 1, info)

	modeStr := fmt.Sprintf("%s  %dx%d  Turn %d", g.modeLabel(), g.cfg.Rows, g.cfg.Rows, g.session.Turns())
	dst.DrawTextColor(boardX+(boardW-len(modeStr))/2, 2, modeStr, core.ColorGray)
}

func (g *Game) modeLabel() string {
	if g.mode == ModeEndless {
		return "Endless"
	}
	return "Classic"
}

// renderGrid draws the cell borders of the N x N grid.
func (g *Game) renderGrid(dst *core.Screen, boardX, boardY int) {
	n := g.cfg.Rows
	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == n:
				corner = '┐'
			case y == n && x == 0:
				corner = '└'
			case y == n && x == n:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == n:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == n:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColor(px, py, corner, core.ColorGray)

			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.SetColor(px+i, py, '─', core.ColorGray)
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.SetColor(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// renderTiles draws the committed board, with cells the animator still
// hides replaced by their pre-turn content and sliding tiles on top.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	for _, pt := range g.session.board.Tiles() {
		value := pt.Tile.Value
		if v, hidden := g.anim.hiddenValue(pt.Position); hidden {
			value = v
		}
		if value == 0 {
			continue
		}
		g.drawTile(dst, boardX, boardY, float64(pt.Position.X), float64(pt.Position.Y), value)
	}

	for i := range g.anim.slides {
		s := &g.anim.slides[i]
		x, y := s.interpolatePosition()
		g.drawTile(dst, boardX, boardY, x, y, s.Value)
	}
}

// drawTile draws a value centered in the (possibly fractional) cell x, y.
func (g *Game) drawTile(dst *core.Screen, boardX, boardY int, x, y float64, value int) {
	cellX := boardX + int(math.Round(x*cellWidth)) + 1
	cellY := boardY + int(math.Round(y*cellHeight)) + 1

	valStr := strconv.Itoa(value)
	padLeft := max((cellWidth-1-len(valStr))/2, 0)
	dst.DrawTextColor(cellX+padLeft, cellY, valStr, tileColor(value))
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	// Let the last slide land before covering the board.
	if g.anim.active() {
		return
	}

	switch g.session.State() {
	case StateWon:
		g.drawOverlay(dst, centerX, centerY,
			"YOU WIN!",
			fmt.Sprintf("Reached %d", g.cfg.WinValue),
			"R: restart  N: new game")
	case StateLost:
		g.drawOverlay(dst, centerX, centerY,
			"GAME OVER",
			fmt.Sprintf("Max tile: %d", g.session.board.MaxValue()),
			"R: restart  N: new game")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.Centered(centerX, centerY, maxLen+4, len(lines)+2)
	dst.FillRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | N: New game | P: Pause | R: Restart | Q: Quit"
}
