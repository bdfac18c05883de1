package bubblepop

import (
	"math/rand"

	"github.com/vovakirdan/cardquest/internal/config"
	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/progress"
)

// Target is a bubble. Once cleared it never becomes visible again.
type Target struct {
	Circle  core.Circle
	Visible bool
}

// Board is a Bubble-Pop layout: a grid of targets with block obstacles
// laid over some of them.
type Board struct {
	Targets      []Target
	Obstacles    []core.Rect
	TotalVisible int // Targets visible when the board was generated
}

// NewBoard generates a fresh board. Each obstacle takes a row drawn without
// replacement from the candidate rows and a random start column, and hides
// the targets underneath it.
func NewBoard(cfg config.BubblePopConfig, rng *rand.Rand) Board {
	size := cfg.Bubbles.Size
	pad := cfg.Board.Padding
	space := size + pad
	rows, cols := cfg.Bubbles.Rows, cfg.Bubbles.Cols

	b := Board{Targets: make([]Target, 0, rows*cols)}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			b.Targets = append(b.Targets, Target{
				Circle: core.Circle{
					C: core.V(float64(col)*space+size/2+pad, float64(row)*space+size/2+pad),
					R: size / 2,
				},
				Visible: true,
			})
		}
	}
	b.TotalVisible = len(b.Targets)

	width := cfg.Obstacles.WidthBubbles
	if width <= 0 || width > cols {
		return b
	}

	available := make([]int, 0, len(cfg.Obstacles.CandidateRows))
	for _, row := range cfg.Obstacles.CandidateRows {
		if row >= 0 && row < rows {
			available = append(available, row)
		}
	}

	for i := 0; i < cfg.Obstacles.Count && len(available) > 0; i++ {
		k := rng.Intn(len(available))
		row := available[k]
		available = append(available[:k], available[k+1:]...)
		startCol := rng.Intn(cols - width + 1)

		b.Obstacles = append(b.Obstacles, core.NewRect(
			float64(startCol)*space+pad,
			float64(row)*space+pad+(space-size)/2,
			float64(width)*space-pad,
			size,
		))

		for col := startCol; col < startCol+width; col++ {
			t := &b.Targets[row*cols+col]
			if t.Visible {
				t.Visible = false
				b.TotalVisible--
			}
		}
	}
	return b
}

// Visible returns how many targets are still showing.
func (b Board) Visible() int {
	n := 0
	for _, t := range b.Targets {
		if t.Visible {
			n++
		}
	}
	return n
}

// Shapes returns the obstacles as collision shapes.
func (b Board) Shapes() []core.Shape {
	shapes := make([]core.Shape, len(b.Obstacles))
	for i, o := range b.Obstacles {
		shapes[i] = o
	}
	return shapes
}

// boardFromProgress rebuilds a saved board. Saved targets carry only their
// centers; the radius comes from the current bubble size.
func boardFromProgress(p progress.BubblePop, radius float64) Board {
	b := Board{
		Targets:      make([]Target, len(p.Bubbles)),
		Obstacles:    make([]core.Rect, len(p.Obstacles)),
		TotalVisible: p.TotalVisible,
	}
	for i, s := range p.Bubbles {
		b.Targets[i] = Target{Circle: core.Circle{C: core.V(s.X, s.Y), R: radius}, Visible: s.Visible}
	}
	for i, o := range p.Obstacles {
		b.Obstacles[i] = core.NewRect(o.X, o.Y, o.W, o.H)
	}
	if b.TotalVisible <= 0 {
		b.TotalVisible = b.Visible() + p.Cleared
	}
	return b
}

// progressBubbles converts the board into its saved form.
func (b Board) progressBubbles() ([]progress.Bubble, []progress.Obstacle) {
	bubbles := make([]progress.Bubble, len(b.Targets))
	for i, t := range b.Targets {
		bubbles[i] = progress.Bubble{X: t.Circle.C.X, Y: t.Circle.C.Y, Visible: t.Visible}
	}
	obstacles := make([]progress.Obstacle, len(b.Obstacles))
	for i, o := range b.Obstacles {
		obstacles[i] = progress.Obstacle{X: o.X, Y: o.Y, W: o.W, H: o.H}
	}
	return bubbles, obstacles
}
