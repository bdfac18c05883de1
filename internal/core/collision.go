package core

import "math"

// Contact describes how a moving circle should be resolved against a shape.
//
// Response is intentionally approximate: instead of reflecting the velocity
// about the true surface normal, the ball negates the velocity component on
// each flagged axis. Obstacles are large relative to balls and the games only
// need believable bounces, so this must not be replaced with an exact solver;
// doing so changes how the boards play.
type Contact struct {
	Point  Vec  // Resolved ball center, touching the surface
	Normal Vec  // Surface normal pointing toward the ball
	FlipX  bool // Negate horizontal velocity
	FlipY  bool // Negate vertical velocity
}

// Shape is a static obstacle a ball can bounce off.
type Shape interface {
	// Collide tests a ball at its tentative position moving with vel.
	Collide(ball Circle, vel Vec) (Contact, bool)
}

// Overlaps reports whether two circles intersect (center distance < sum of radii).
func (c Circle) Overlaps(o Circle) bool {
	sum := c.R + o.R
	return c.C.Sub(o.C).LenSq() < sum*sum
}

// Collide implements Shape for round obstacles (pegs).
// An axis is flipped only when the ball is closing on the peg along it.
func (c Circle) Collide(ball Circle, vel Vec) (Contact, bool) {
	if !c.Overlaps(ball) {
		return Contact{}, false
	}

	d := ball.C.Sub(c.C)
	dist := d.Len()
	sum := c.R + ball.R

	var dir Vec
	var flipX, flipY bool
	if dist == 0 {
		// Dead-center hit: push the ball back up the way it came.
		dir = Vec{X: 0, Y: -1}
		flipY = vel.Y > 0
	} else {
		dir = d.Scale(1 / dist)
		flipX = vel.X*d.X < 0
		flipY = vel.Y*d.Y < 0
	}

	return Contact{
		Point:  c.C.Add(dir.Scale(sum)),
		Normal: dir,
		FlipX:  flipX,
		FlipY:  flipY,
	}, true
}

// Collide implements Shape for rectangular obstacles (blocks).
// The bounce axis is chosen by comparing the X and Y offsets from the nearest
// point on the rectangle: the dominant axis is reflected, never both.
func (r Rect) Collide(ball Circle, vel Vec) (Contact, bool) {
	return r.CollideBuffered(ball, 0)
}

// CollideBuffered is Collide with the hit radius enlarged by buffer.
func (r Rect) CollideBuffered(ball Circle, buffer float64) (Contact, bool) {
	reach := ball.R + buffer
	nearest := r.Closest(ball.C)
	d := ball.C.Sub(nearest)
	distSq := d.LenSq()
	if distSq >= reach*reach {
		return Contact{}, false
	}

	if distSq == 0 {
		return r.pushOut(ball), true
	}

	dist := math.Sqrt(distSq)
	dir := d.Scale(1 / dist)
	c := Contact{Point: nearest.Add(dir.Scale(ball.R))}
	if math.Abs(d.X) > math.Abs(d.Y) {
		c.FlipX = true
		c.Normal = Vec{X: sign(d.X)}
	} else {
		c.FlipY = true
		c.Normal = Vec{Y: sign(d.Y)}
	}
	return c, true
}

// pushOut resolves a ball whose center is inside the rectangle by moving it
// out through the side of least penetration.
func (r Rect) pushOut(ball Circle) Contact {
	left := ball.C.X - r.X
	right := r.Right() - ball.C.X
	top := ball.C.Y - r.Y
	bottom := r.Bottom() - ball.C.Y

	p := ball.C
	least := math.Min(math.Min(left, right), math.Min(top, bottom))
	switch least {
	case left:
		p.X = r.X - ball.R
		return Contact{Point: p, Normal: Vec{X: -1}, FlipX: true}
	case right:
		p.X = r.Right() + ball.R
		return Contact{Point: p, Normal: Vec{X: 1}, FlipX: true}
	case top:
		p.Y = r.Y - ball.R
		return Contact{Point: p, Normal: Vec{Y: -1}, FlipY: true}
	default:
		p.Y = r.Bottom() + ball.R
		return Contact{Point: p, Normal: Vec{Y: 1}, FlipY: true}
	}
}

// WallContact tests a ball against the left, right and top edges of bounds.
// The bottom edge is an exit, never a bounce.
func WallContact(ball Circle, bounds Rect) (Contact, bool) {
	c := Contact{Point: ball.C}
	hit := false

	if ball.C.X-ball.R < bounds.X {
		c.Point.X = bounds.X + ball.R
		c.Normal.X = 1
		c.FlipX = true
		hit = true
	} else if ball.C.X+ball.R > bounds.Right() {
		c.Point.X = bounds.Right() - ball.R
		c.Normal.X = -1
		c.FlipX = true
		hit = true
	}

	if ball.C.Y-ball.R < bounds.Y {
		c.Point.Y = bounds.Y + ball.R
		c.Normal.Y = 1
		c.FlipY = true
		hit = true
	}

	return c, hit
}

// ContainPoint clamps a ball center so the ball lies inside the side and top
// walls of bounds. The bottom is left open.
func ContainPoint(p Vec, r float64, bounds Rect) Vec {
	minX, maxX := bounds.X+r, bounds.Right()-r
	if maxX < minX {
		// Board narrower than the ball: pin to the middle.
		mid := bounds.X + bounds.W/2
		minX, maxX = mid, mid
	}
	p.X = ClampF(p.X, minX, maxX)
	if p.Y < bounds.Y+r {
		p.Y = bounds.Y + r
	}
	return p
}

// FirstContact returns the first shape, in iteration order, that the ball
// hits. Later overlapping shapes are left for the next step.
func FirstContact(ball Circle, vel Vec, shapes []Shape) (int, Contact, bool) {
	for i, s := range shapes {
		if c, ok := s.Collide(ball, vel); ok {
			return i, c, true
		}
	}
	return -1, Contact{}, false
}

func sign(f float64) float64 {
	switch {
	case f < 0:
		return -1
	case f > 0:
		return 1
	default:
		return 0
	}
}
