package plinko

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/cardquest/internal/core"
)

// Visual characters for rendering
const (
	PegChar    = 'o'
	BallChar   = '●'
	CursorChar = '▼'
	LaneChar   = '│'
)

// Minimum screen size for a readable board.
const (
	minScreenW = 30
	minScreenH = 18
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

	vp := core.BoardLayout(g.layout.Width, g.layout.Height, dst.Width(), dst.Height())
	vp.Frame(dst)

	for _, p := range g.layout.Pegs {
		vp.Plot(dst, p.C, PegChar, core.ColorPeg)
	}
	g.renderLanes(dst, vp)

	if g.ball != nil {
		vp.FillCircle(dst, g.ball.Circle(), BallChar, core.ColorBall)
	} else if g.phase == PhaseIdle {
		vp.Plot(dst, core.V(g.dropX, g.cfg.Ball.Radius), CursorChar, core.ColorCursor)
	}

	g.renderOverlay(dst)
}

// renderLanes draws lane dividers and values along the bottom strip.
func (g *Game) renderLanes(dst *core.Screen, vp core.Viewport) {
	lanes := g.layout.Lanes
	h := g.layout.Height
	top := h - g.cfg.Physics.ExitInset

	for i := 0; i < lanes.Count(); i++ {
		lo, hi := lanes.Bounds(i)
		if i > 0 {
			for y := top; y < h; y += h / float64(vp.Rows) {
				vp.Plot(dst, core.V(lo, y), LaneChar, core.ColorObstacle)
			}
		}

		label := strconv.Itoa(lanes.Values[i])
		color := core.ColorScore
		if i == g.lastLane {
			color = core.ColorReward
		}
		cx, cy := vp.ToCell(core.V((lo+hi)/2, h-1))
		dst.DrawTextColored(cx-len(label)/2, cy, label, color)
	}
}

// renderOverlay draws hints and the win box.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.phase {
	case PhaseLoading:
		core.DrawFooter(dst, "Loading...")
	case PhaseResolved:
		core.DrawMessageBox(dst, "YOU WON A CARD!", fmt.Sprintf("%s  |  R: next card", core.CardName(g.wonCard)))
		core.DrawFooter(dst, "R next card  B back")
	case PhaseDropping:
		core.DrawFooter(dst, "Dropping...")
	default:
		if g.outOfPoints {
			core.DrawFooter(dst, "Out of points! Play word match to earn more.")
			return
		}
		hint := "←/→ move  SPACE drop  click to drop  B back"
		if g.lastLane >= 0 {
			hint = fmt.Sprintf("+%d  |  %s", g.lastValue, hint)
		}
		core.DrawFooter(dst, hint)
	}
}
