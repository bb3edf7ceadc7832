package tetris

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Layout constants for the text view.
const (
	cellCols = 2  // screen columns per board cell
	hudGap   = 2  // columns between the well and the side panel
	hudWidth = 18 // side panel width
	titleRow = 1  // rows above the well
)

// glyphs draws each cell two columns wide so the well looks square.
var glyphs = map[Cell]string{
	CellEmpty:  " .",
	CellShadow: "░░",
	CellT:      "██",
	CellS1:     "▓▓",
	CellS2:     "▒▒",
	CellI:      "[]",
}

func (g *Game) wellSize() (w, h int) {
	return g.cfg.Board.Width*cellCols + 2, g.cfg.Board.Height + 2
}

func (g *Game) fits(screenW, screenH int) bool {
	w, h := g.wellSize()
	return screenW >= w+hudGap+hudWidth && screenH >= h+titleRow
}

// Render draws the well, the side panel and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	wellW, wellH := g.wellSize()
	totalW := wellW + hudGap + hudWidth
	totalH := wellH + titleRow

	if !dst.Fits(totalW, totalH) {
		g.drawMessage(dst, "TOO SMALL", fmt.Sprintf("need %dx%d", totalW, totalH))
		return
	}

	area := core.CenterIn(totalW, totalH, dst.Width(), dst.Height())
	dst.DrawText(area.X, area.Y, g.Title())

	well := core.NewRect(area.X, area.Y+titleRow, wellW, wellH)
	dst.DrawBox(well)
	g.drawCells(dst, well.Inset(1))
	g.drawHUD(dst, well.Right()+hudGap, well.Y)

	switch {
	case g.board.GameOver():
		stats := g.board.Stats()
		g.drawMessage(dst, "GAME OVER", fmt.Sprintf("Lines: %d  |  Press R to restart", stats.Lines))
	case g.paused:
		g.drawMessage(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) drawCells(dst *core.Screen, inner core.Rect) {
	for y := range g.board.Height() {
		for x := range g.board.Width() {
			c, err := g.board.CellAt(x, y)
			if err != nil {
				continue
			}
			glyph, ok := glyphs[c]
			if !ok {
				glyph = "??"
			}
			dst.DrawText(inner.X+x*cellCols, inner.Y+y, glyph)
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen, x, y int) {
	state := g.State()
	lines := []string{
		fmt.Sprintf("Lines  %d", state.Lines),
		fmt.Sprintf("Level  %d", state.Level),
		fmt.Sprintf("Pieces %d", state.Pieces),
		fmt.Sprintf("Drop   %dms", g.DropInterval().Milliseconds()),
		"",
		fmt.Sprintf("Set    %s", g.board.Library().Name()),
	}
	for i, l := range lines {
		dst.DrawText(x, y+i, l)
	}
}

// drawMessage draws a boxed two-line message in the middle of the screen.
func (g *Game) drawMessage(dst *core.Screen, title, subtitle string) {
	tw, sw := utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)
	box := core.CenterIn(max(tw, sw)+4, 5, dst.Width(), dst.Height())

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawText(box.X+(box.W-tw)/2, box.Y+1, title)
	dst.DrawText(box.X+(box.W-sw)/2, box.Y+3, subtitle)
}
