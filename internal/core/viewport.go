package core

import "math"

// CellAspect is the height/width ratio of a terminal cell.
const CellAspect = 2.0

// Viewport maps board coordinates onto a rectangular region of a Screen.
// It is the render surface games draw shapes through, and the inverse map
// turns pointer events in cells back into board-relative coordinates.
type Viewport struct {
	BoardW, BoardH float64 // Board size in board units
	X0, Y0         int     // Top-left cell of the region
	Cols, Rows     int     // Region size in cells
}

// Fit returns the largest viewport with the board's aspect ratio that fits
// in maxCols x maxRows cells starting at (x0, y0).
func Fit(boardW, boardH float64, x0, y0, maxCols, maxRows int) Viewport {
	v := Viewport{BoardW: boardW, BoardH: boardH, X0: x0, Y0: y0}
	if boardW <= 0 || boardH <= 0 || maxCols <= 0 || maxRows <= 0 {
		return v
	}

	rows := maxRows
	cols := int(math.Round(float64(rows) * boardW / boardH * CellAspect))
	if cols > maxCols {
		cols = maxCols
		rows = int(math.Round(float64(cols) * boardH / boardW / CellAspect))
	}
	v.Cols = max(cols, 1)
	v.Rows = max(rows, 1)
	// Center horizontally in the available space.
	v.X0 += (maxCols - v.Cols) / 2
	return v
}

// Valid reports whether the viewport can map anything.
func (v Viewport) Valid() bool {
	return v.BoardW > 0 && v.BoardH > 0 && v.Cols > 0 && v.Rows > 0
}

// ToCell converts a board point to a screen cell.
func (v Viewport) ToCell(p Vec) (int, int) {
	if !v.Valid() || !p.Finite() {
		return -1, -1
	}
	cx := v.X0 + int(math.Floor(p.X/v.BoardW*float64(v.Cols)))
	cy := v.Y0 + int(math.Floor(p.Y/v.BoardH*float64(v.Rows)))
	return cx, cy
}

// FromCell converts a screen cell to the board point at the cell's center.
// The result is clamped to the board.
func (v Viewport) FromCell(cx, cy int) Vec {
	if !v.Valid() {
		return Vec{}
	}
	x := (float64(cx-v.X0) + 0.5) / float64(v.Cols) * v.BoardW
	y := (float64(cy-v.Y0) + 0.5) / float64(v.Rows) * v.BoardH
	return Vec{X: ClampF(x, 0, v.BoardW), Y: ClampF(y, 0, v.BoardH)}
}

// Contains reports whether a cell lies inside the viewport region.
func (v Viewport) Contains(cx, cy int) bool {
	return cx >= v.X0 && cx < v.X0+v.Cols && cy >= v.Y0 && cy < v.Y0+v.Rows
}

// Plot draws a single glyph at a board point.
func (v Viewport) Plot(dst *Screen, p Vec, r rune, c Color) {
	cx, cy := v.ToCell(p)
	if v.Contains(cx, cy) {
		dst.SetColored(cx, cy, r, c)
	}
}

// FillCircle fills every cell whose center lies inside the circle.
// Circles smaller than a cell still get one glyph at their center.
func (v Viewport) FillCircle(dst *Screen, circle Circle, r rune, c Color) {
	x0, y0 := v.ToCell(Vec{X: circle.C.X - circle.R, Y: circle.C.Y - circle.R})
	x1, y1 := v.ToCell(Vec{X: circle.C.X + circle.R, Y: circle.C.Y + circle.R})
	drawn := false
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			if !v.Contains(cx, cy) {
				continue
			}
			if v.FromCell(cx, cy).Sub(circle.C).LenSq() <= circle.R*circle.R {
				dst.SetColored(cx, cy, r, c)
				drawn = true
			}
		}
	}
	if !drawn {
		v.Plot(dst, circle.C, r, c)
	}
}

// FillRect fills the cells covered by a board rectangle.
func (v Viewport) FillRect(dst *Screen, rect Rect, r rune, c Color) {
	x0, y0 := v.ToCell(Vec{X: rect.X, Y: rect.Y})
	x1, y1 := v.ToCell(Vec{X: rect.Right(), Y: rect.Bottom()})
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			if v.Contains(cx, cy) && rect.Contains(v.FromCell(cx, cy)) {
				dst.SetColored(cx, cy, r, c)
			}
		}
	}
}

// Frame draws a box just outside the viewport region.
func (v Viewport) Frame(dst *Screen) {
	dst.DrawBox(v.X0-1, v.Y0-1, v.Cols+2, v.Rows+2)
}
