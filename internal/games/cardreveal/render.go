package cardreveal

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/cardquest/internal/core"
)

// Visual characters for rendering
const (
	BlockChar  = '▓'
	CursorChar = '▒'
)

// Minimum screen size for a readable grid.
const (
	minScreenW = 30
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

	g.renderCard(dst, vp)

	for i, shown := range g.revealed {
		if shown {
			continue
		}
		rect := core.NewRect(float64(i%g.cols*BlockSize), float64(i/g.cols*BlockSize), BlockSize, BlockSize)
		glyph, color := BlockChar, core.ColorTarget
		if i == g.cursor && g.phase == PhasePlaying {
			glyph, color = CursorChar, core.ColorCursor
		}
		vp.FillRect(dst, rect, glyph, color)
	}

	g.renderOverlay(dst)
}

// renderCard writes the card name across the middle of the grid. Covered
// blocks are drawn over it afterwards.
func (g *Game) renderCard(dst *core.Screen, vp core.Viewport) {
	name := strings.ToUpper(core.CardName(g.card))
	if name == "" {
		return
	}
	cy := vp.Y0 + vp.Rows/2
	cx := vp.X0 + (vp.Cols-len([]rune(name)))/2
	dst.DrawTextColored(cx, cy, name, core.ColorReward)
}

// renderOverlay draws hints and the win box.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.phase {
	case PhaseLoading:
		core.DrawFooter(dst, "Loading...")
	case PhaseResolved:
		core.DrawMessageBox(dst, "YOU WON A CARD!", fmt.Sprintf("%s  |  R: next card", core.CardName(g.wonCard)))
		core.DrawFooter(dst, "R next card  B back")
	default:
		if g.outOfPoints {
			core.DrawFooter(dst, "Out of points! Play word match to earn more.")
			return
		}
		core.DrawFooter(dst, "arrows move  SPACE reveal  click to reveal  B back")
	}
}
