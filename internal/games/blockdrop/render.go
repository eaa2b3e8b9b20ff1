package blockdrop

import (
	"fmt"

	"github.com/vovakirdan/blockdrop/internal/blocks"
	"github.com/vovakirdan/blockdrop/internal/core"
)

const (
	cellWidth  = 2  // Screen columns per grid column
	panelWidth = 22 // HUD panel to the right of the board
	panelGap   = 2
)

// Glyphs for one grid cell.
const (
	blockGlyph   = '█'
	magicGlyph   = '▓'
	pendingGlyph = '░'
)

// MinSize returns the smallest screen the board and HUD fit on.
func (g *Game) MinSize() (w, h int) {
	return g.boardW() + panelGap + panelWidth, g.boardH()
}

func (g *Game) boardW() int {
	return g.cfg.Board.Width*cellWidth + 2
}

func (g *Game) boardH() int {
	return g.cfg.Board.Height + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}

	minW, minH := g.MinSize()
	if dst.Width() < minW || dst.Height() < minH {
		g.renderTooSmall(dst, minW, minH)
		return
	}

	// Center board and panel together
	boardX := (dst.Width() - minW) / 2
	boardY := (dst.Height() - minH) / 2

	g.renderBoard(dst, boardX, boardY)
	g.renderPanel(dst, boardX+g.boardW()+panelGap, boardY)
	g.renderOverlays(dst, boardX, boardY)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen, minW, minH int) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, "Window too small")
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d", minW, minH))
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderBoard draws the frame, locked icons, pending collapse cells and the
// piece in play.
func (g *Game) renderBoard(dst *core.Screen, x0, y0 int) {
	dst.DrawBoxColored(core.NewRect(x0, y0, g.boardW(), g.boardH()), core.ColorGray)

	ox, oy := x0+1, y0+1
	for row := 0; row < g.engine.Height(); row++ {
		for col := 0; col < g.engine.Width(); col++ {
			if icon, ok := g.engine.IconAt(row, col); ok {
				drawIcon(dst, ox, oy, blocks.Point{X: col, Y: row}, icon.Color(), icon.Magic())
			}
		}
	}

	if pending, err := g.engine.CellsToCollapse(); err == nil {
		for _, p := range pending {
			drawCell(dst, ox, oy, p, pendingGlyph, core.ColorBrightWhite)
		}
	}

	if cur, err := g.engine.Current(); err == nil {
		for _, c := range cur.Cells() {
			if c.Y < 0 {
				continue
			}
			drawIcon(dst, ox, oy, c.Point, c.Icon.Color(), c.Icon.Magic())
		}
	}
}

func drawIcon(dst *core.Screen, ox, oy int, p blocks.Point, color core.Color, magic bool) {
	glyph := rune(blockGlyph)
	if magic {
		glyph = magicGlyph
	}
	drawCell(dst, ox, oy, p, glyph, color)
}

func drawCell(dst *core.Screen, ox, oy int, p blocks.Point, glyph rune, color core.Color) {
	x := ox + p.X*cellWidth
	for i := 0; i < cellWidth; i++ {
		dst.SetColored(x+i, oy+p.Y, glyph, color)
	}
}

// renderPanel draws the title, score, level and controls.
func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	state := g.State()

	dst.DrawTextColored(x, y, g.Title(), core.ColorBrightWhite)
	dst.DrawText(x, y+2, fmt.Sprintf("Score:  %d", state.Score))
	dst.DrawText(x, y+3, fmt.Sprintf("Level:  %d", state.Level))
	dst.DrawText(x, y+4, fmt.Sprintf("Pieces: %d", g.pieces))
	dst.DrawTextColored(x, y+5, fmt.Sprintf("Speed:  %v", g.interval()), core.ColorGray)

	controls := []string{
		"←/→  shift",
		"↑    rotate",
		"↓    fast drop",
		"spc  cycle magic",
		"p    pause",
		"q    quit",
	}
	for i, line := range controls {
		dst.DrawTextColored(x, y+7+i, line, core.ColorGray)
	}

	legendY := y + 8 + len(controls)
	dst.SetColored(x, legendY, magicGlyph, core.ColorWhite)
	dst.SetColored(x+1, legendY, magicGlyph, core.ColorWhite)
	dst.DrawTextColored(x+3, legendY, "magic block", core.ColorGray)
}

// renderOverlays draws pause and game over messages over the board.
func (g *Game) renderOverlays(dst *core.Screen, x0, y0 int) {
	switch {
	case g.engine.GameOver():
		g.drawOverlay(dst, x0, y0, "GAME OVER", fmt.Sprintf("Score: %d", g.engine.Score()), "R to restart")
	case g.paused:
		g.drawOverlay(dst, x0, y0, "PAUSED", "P to resume")
	}
}

// drawOverlay draws a boxed message centered on the board.
func (g *Game) drawOverlay(dst *core.Screen, x0, y0 int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}

	board := core.NewRect(x0, y0, g.boardW(), g.boardH())
	box := board.Centered(maxLen+4, len(lines)+2)

	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, core.ColorYellow)
	for i, line := range lines {
		lx := box.X + (box.W-len([]rune(line)))/2
		dst.DrawTextColored(lx, box.Y+1+i, line, core.ColorBrightWhite)
	}
}
