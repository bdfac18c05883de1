package wordmatch

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/cardquest/internal/core"
)

// Tile glyphs
const (
	TileChar   = '░'
	CursorChar = '▒'
	MissChar   = '×'
)

const (
	minScreenW = 40
	minScreenH = 14
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	g.mu.Lock()
	defer g.mu.Unlock()

	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		core.DrawTooSmall(dst, minScreenW, minScreenH)
		return
	}

	core.DrawHUD(dst, Title, g.state())

	w, h := g.BoardSize()
	vp := core.BoardLayout(w, h, dst.Width(), dst.Height())
	vp.Frame(dst)

	if g.phase == PhasePlaying {
		g.renderWord(dst, vp)
		g.renderOptions(dst, vp)
	}
	g.renderOverlay(dst)
}

// renderWord spells the word in capitals with its letters spaced apart.
func (g *Game) renderWord(dst *core.Screen, vp core.Viewport) {
	word := strings.ToUpper(core.CardName(g.words[g.level]))
	spelled := strings.Join(strings.Split(word, ""), " ")
	_, cy := vp.ToCell(core.V(0, WordH/2))
	cx := vp.X0 + (vp.Cols-len([]rune(spelled)))/2
	dst.DrawTextColored(cx, cy, spelled, core.ColorTitle)
}

func (g *Game) renderOptions(dst *core.Screen, vp core.Viewport) {
	for i, card := range g.options {
		rect := core.NewRect(float64(i*OptionW+TileGap), WordH+TileGap, OptionW-2*TileGap, OptionH-2*TileGap)
		glyph, color := TileChar, core.ColorTarget
		switch {
		case g.missed[i]:
			glyph, color = MissChar, core.ColorObstacle
		case i == g.cursor:
			glyph, color = CursorChar, core.ColorCursor
		}
		vp.FillRect(dst, rect, glyph, color)

		label := core.CardName(card)
		x0, y0 := vp.ToCell(core.V(rect.X, rect.Y))
		x1, y1 := vp.ToCell(core.V(rect.Right(), rect.Bottom()))
		cx := x0 + (x1-x0+1-len([]rune(label)))/2
		dst.DrawTextColored(cx, (y0+y1)/2, label, core.ColorReward)
	}
}

// renderOverlay draws feedback, hints and the end-of-round box.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.phase {
	case PhaseLoading:
		core.DrawFooter(dst, "Loading...")
	case PhaseResolved:
		core.DrawMessageBox(dst, "ROUND OVER", fmt.Sprintf("You earned %d points!  |  R: play again", g.earned))
		core.DrawFooter(dst, "R play again  B back")
	default:
		if g.last != "" {
			core.DrawFooter(dst, g.last+"  arrows choose  SPACE pick  B back")
			return
		}
		core.DrawFooter(dst, "arrows choose  SPACE pick  click to pick  B back")
	}
}
