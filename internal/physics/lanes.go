package physics

import "math"

// DefaultLaneValues are the Plinko slot values, left to right.
var DefaultLaneValues = []int{1, 2, 5, 10, 5, 2, 1}

// Lanes are contiguous equal-width scoring bins spanning the board width.
type Lanes struct {
	Width  float64
	Values []int
}

// NewLanes creates lanes across a board of the given width.
func NewLanes(width float64, values []int) Lanes {
	return Lanes{Width: width, Values: values}
}

// Count returns the number of lanes.
func (l Lanes) Count() int {
	return len(l.Values)
}

// Index maps an exit X to a lane, clamped to the valid range.
// Non-finite input maps to the middle lane.
func (l Lanes) Index(x float64) int {
	n := len(l.Values)
	if n == 0 {
		return -1
	}
	if math.IsNaN(x) || math.IsInf(x, 0) || !(l.Width > 0) {
		return n / 2
	}
	i := int(math.Floor(x / (l.Width / float64(n))))
	return min(max(i, 0), n-1)
}

// Value returns the score of the lane an exit X falls into.
func (l Lanes) Value(x float64) int {
	i := l.Index(x)
	if i < 0 {
		return 0
	}
	return l.Values[i]
}

// Bounds returns the left and right edge of lane i.
func (l Lanes) Bounds(i int) (float64, float64) {
	n := float64(len(l.Values))
	if n == 0 {
		return 0, 0
	}
	w := l.Width / n
	return float64(i) * w, float64(i+1) * w
}
