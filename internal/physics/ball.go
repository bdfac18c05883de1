// Package physics advances balls across a board of static shapes.
package physics

import "github.com/vovakirdan/cardquest/internal/core"

// Ball is a moving entity: a circle with a velocity in board units per frame.
type Ball struct {
	Pos    core.Vec // Center
	Vel    core.Vec // Velocity per nominal frame
	R      float64  // Radius
	Active bool     // Whether the ball is still in play
}

// NewBall creates an active ball.
func NewBall(pos, vel core.Vec, r float64) *Ball {
	return &Ball{Pos: pos, Vel: vel, R: r, Active: true}
}

// Circle returns the ball's current shape.
func (b *Ball) Circle() core.Circle {
	return core.Circle{C: b.Pos, R: b.R}
}

// BounceX reverses horizontal velocity.
func (b *Ball) BounceX() {
	b.Vel.X = -b.Vel.X
}

// BounceY reverses vertical velocity.
func (b *Ball) BounceY() {
	b.Vel.Y = -b.Vel.Y
}
