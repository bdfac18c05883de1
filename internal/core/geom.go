// Package core provides fundamental types and utilities for the card games.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec is a 2D point or direction in board coordinates.
// The board origin is the top-left corner and Y grows downward.
type Vec struct {
	X, Y float64
}

// V is shorthand for constructing a Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// LenSq returns the squared length of v.
func (v Vec) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Finite reports whether both components are real numbers.
func (v Vec) Finite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// FromAngle returns the unit vector for an aim angle measured clockwise
// from straight up (0 = up, +pi/2 = right).
func FromAngle(angle float64) Vec {
	return Vec{X: math.Sin(angle), Y: -math.Cos(angle)}
}

// AngleTo returns the aim angle (see FromAngle) pointing from v toward target.
func (v Vec) AngleTo(target Vec) float64 {
	d := target.Sub(v)
	return math.Atan2(d.X, -d.Y)
}

// Circle is a round shape: pegs, bubbles and balls.
type Circle struct {
	C Vec     // Center
	R float64 // Radius
}

// Rect represents an axis-aligned bounding box used for collision detection.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return !(r.W > 0) || !(r.H > 0)
}

// Intersects returns true if this rectangle overlaps with another.
// Uses standard AABB collision detection.
func (r Rect) Intersects(other Rect) bool {
	// No overlap if one rect is completely to the left, right, above, or below
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point p is inside this rectangle.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec {
	return Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Closest returns the point of the rectangle nearest to p.
func (r Rect) Closest(p Vec) Vec {
	return Vec{
		X: ClampF(p.X, r.X, r.Right()),
		Y: ClampF(p.Y, r.Y, r.Bottom()),
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
