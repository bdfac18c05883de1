package plinko

import (
	"math"

	"github.com/vovakirdan/cardquest/internal/config"
	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/physics"
)

// Layout is the peg board geometry for one board size.
type Layout struct {
	Width, Height float64
	Spacing       float64 // Distance between neighboring pegs
	Pegs          []core.Circle
	Lanes         physics.Lanes
}

// NewLayout fits the peg rows to a w x h board. Even rows carry one peg
// fewer than odd rows and every row is centered, so pegs interleave.
func NewLayout(cfg config.PlinkoConfig, w, h float64) Layout {
	l := Layout{Width: w, Height: h, Lanes: physics.NewLanes(w, cfg.LaneValues)}

	divisions := max(cfg.Pegs.Divisions, 2)
	spacing := math.Min(w, h) / float64(divisions)
	if !(spacing > 0) {
		return l
	}
	// The epsilon keeps exact multiples from flooring one short.
	maxCols := int(math.Floor(w/spacing+1e-9)) - 1
	if maxCols < 1 {
		return l
	}
	l.Spacing = w / float64(maxCols+1)

	for row := 0; row < cfg.Pegs.Rows; row++ {
		n := maxCols
		if row%2 == 0 {
			n = maxCols - 1
		}
		rowWidth := float64(n-1) * l.Spacing
		startX := (w - rowWidth) / 2
		y := l.Spacing + float64(row)*l.Spacing
		for col := 0; col < n; col++ {
			l.Pegs = append(l.Pegs, core.Circle{C: core.V(startX+float64(col)*l.Spacing, y), R: cfg.Pegs.Radius})
		}
	}
	return l
}

// Shapes returns the pegs as collision shapes.
func (l Layout) Shapes() []core.Shape {
	shapes := make([]core.Shape, len(l.Pegs))
	for i, p := range l.Pegs {
		shapes[i] = p
	}
	return shapes
}
