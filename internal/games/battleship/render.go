package battleship

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/sea"
)

// Visual characters for rendering
const (
	SeaChar  = '·'
	ShipChar = '■'
	HitChar  = 'X'
	MissChar = 'o'
	SunkChar = '#'
)

const (
	rowLabelW  = 3  // "10 "
	boardGap   = 4  // Columns between the two boards
	minPanelW  = 20 // Narrower panels move below the boards
	panelTitle = "LOG"
)

func boardWidth(w int) int {
	return rowLabelW + 2*w
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		g.drawCenteredMessage(dst, "CANNOT START GAME", g.err.Error())
		return
	}
	if g.match == nil {
		return
	}

	h, w := g.cfg.Grid.Height, g.cfg.Grid.Width
	leftX := 1
	rightX := leftX + boardWidth(w) + boardGap
	top := 1

	g.drawStatus(dst, 0)
	g.drawBoard(dst, leftX, top, "YOUR FLEET", g.match.Grid(core.Player1), false)
	g.drawBoard(dst, rightX, top, "ENEMY WATERS", g.match.Grid(core.Player2), true)

	// Event panel: right of the boards when it fits, below otherwise.
	panelX := rightX + boardWidth(w) + boardGap
	panelY := top
	panelW := dst.Width() - panelX - 1
	panelH := h + 2
	if panelW < minPanelW {
		panelX = leftX
		panelY = top + h + 3
		panelW = dst.Width() - 2
		panelH = dst.Height() - panelY - 1
	}
	g.drawEvents(dst, panelX, panelY, panelW, panelH)

	help := "arrows/WASD move · space fire · P pause · B back · Q quit"
	dst.DrawTextColor(1, dst.Height()-1, help, core.ColorGray)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.gameOver {
		var msg string
		if g.match.Winner() == core.Player1 {
			msg = "YOU WIN!"
		} else {
			msg = "CPU WINS!"
		}
		sum := g.match.Summary()
		g.drawCenteredMessage(dst, msg, fmt.Sprintf("Score %d  |  %d shots  |  Press R to restart", g.score, sum.Shots1))
	}
}

func (g *Game) drawStatus(dst *core.Screen, y int) {
	turn := "Your turn"
	color := core.ColorGreen
	if g.match.Turn() == core.Player2 {
		turn = "CPU is aiming..."
		color = core.ColorYellow
	}
	if g.gameOver {
		turn = "Game over"
		color = core.ColorWhite
	}
	dst.DrawTextColor(1, y, turn, color)

	stats := fmt.Sprintf("%s  |  shots %d  hits %d  |  enemy ships %d  |  %s",
		strings.ToUpper(g.cfg.AI.Difficulty),
		g.match.Shots(core.Player1), g.match.Hits(core.Player1),
		g.match.Grid(core.Player2).Remaining(),
		g.cursor.Label())
	dst.DrawText(20, y, stats)
}

// drawBoard renders one grid. Enemy ships stay hidden until sunk or the game ends.
func (g *Game) drawBoard(dst *core.Screen, x, y int, title string, grid *sea.Grid, enemy bool) {
	dst.DrawTextColor(x+rowLabelW, y, title, core.ColorCyan)

	for c := 0; c < grid.Width(); c++ {
		dst.DrawTextColor(x+rowLabelW+2*c, y+1, string(rune('A'+c)), core.ColorGray)
	}

	for r := 0; r < grid.Height(); r++ {
		dst.DrawTextColor(x, y+2+r, fmt.Sprintf("%2d", r+1), core.ColorGray)
		for c := 0; c < grid.Width(); c++ {
			ch, color := g.cellGlyph(grid, core.L(r, c), enemy)
			cx, cy := x+rowLabelW+2*c, y+2+r
			dst.SetColor(cx, cy, ch, color)

			if enemy && g.cursor == core.L(r, c) && !g.gameOver {
				dst.SetColor(cx-1, cy, '[', core.ColorBrightYellow)
				dst.SetColor(cx+1, cy, ']', core.ColorBrightYellow)
			}
		}
	}
}

func (g *Game) cellGlyph(grid *sea.Grid, loc core.Location, enemy bool) (rune, core.Color) {
	tile := grid.Tile(loc.Row, loc.Column)
	ship := grid.ShipAt(loc)

	switch tile {
	case sea.TileHit:
		if ship != nil && ship.Destroyed() {
			return SunkChar, core.ColorOrange
		}
		if !enemy && g.hasLastCPU && g.lastCPU == loc {
			return HitChar, core.ColorBrightYellow
		}
		return HitChar, core.ColorBrightRed
	case sea.TileMiss:
		if !enemy && g.hasLastCPU && g.lastCPU == loc {
			return MissChar, core.ColorBrightYellow
		}
		return MissChar, core.ColorBlue
	case sea.TileShip:
		if enemy && !g.gameOver {
			return SeaChar, core.ColorGray
		}
		return ShipChar, core.ColorWhite
	default:
		return SeaChar, core.ColorGray
	}
}

// drawEvents renders the newest events that fit, wrapped to the panel width.
func (g *Game) drawEvents(dst *core.Screen, x, y, w, h int) {
	if w < 8 || h < 2 {
		return
	}
	dst.DrawTextColor(x, y, panelTitle, core.ColorCyan)

	var lines []string
	for i := len(g.events) - 1; i >= 0 && len(lines) < h-1; i-- {
		wrapped := strings.Split(wordwrap.WrapString(g.events[i], uint(w)), "\n")
		lines = append(lines, wrapped...)
	}
	if len(lines) > h-1 {
		lines = lines[:h-1]
	}
	for i, line := range lines {
		color := core.ColorDefault
		if i == 0 {
			color = core.ColorWhite
		}
		dst.DrawTextColor(x, y+1+i, line, color)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleW := len([]rune(title))
	subtitleW := len([]rune(subtitle))

	boxW := min(core.Max(titleW, subtitleW)+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-titleW)/2, boxY+1, title)
	dst.DrawText(max(boxX+1, boxX+(boxW-subtitleW)/2), boxY+3, subtitle)
}
