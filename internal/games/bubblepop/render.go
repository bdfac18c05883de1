package bubblepop

import (
	"fmt"

	"github.com/vovakirdan/cardquest/internal/core"
)

// Visual characters for rendering
const (
	BubbleChar   = '●'
	ObstacleChar = '█'
	BallChar     = '•'
	ShooterChar  = '▲'
	AimChar      = '·'
)

// Aim line length in board units and spacing of its dots.
const (
	aimLength = 200
	aimStep   = 20
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

	vp := core.BoardLayout(g.cfg.Board.Width, g.cfg.Board.Height, dst.Width(), dst.Height())
	vp.Frame(dst)

	for _, o := range g.board.Obstacles {
		vp.FillRect(dst, o, ObstacleChar, core.ColorObstacle)
	}
	for _, t := range g.board.Targets {
		if t.Visible {
			vp.FillCircle(dst, t.Circle, BubbleChar, core.ColorTarget)
		}
	}

	if g.phase == PhasePlaying {
		dir := core.FromAngle(g.angle)
		for d := float64(aimStep); d <= aimLength; d += aimStep {
			vp.Plot(dst, g.shooter.Add(dir.Scale(d)), AimChar, core.ColorObstacle)
		}
	}
	vp.Plot(dst, g.shooter, ShooterChar, core.ColorCursor)

	for _, b := range g.balls {
		vp.FillCircle(dst, b.Circle(), BallChar, core.ColorBall)
	}

	g.renderOverlay(dst)
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
		core.DrawFooter(dst, "←/→ aim  SPACE shoot  click aim+shoot  B back")
	}
}
