// Package core provides fundamental types and utilities for the battleship game.
// It contains no external dependencies (especially no Bubble Tea) so that the
// grid model, the targeting engines and the turn controller stay pure and testable.
package core

import "fmt"

// Location is a cell coordinate on a grid. Row grows downward, Column to the right.
// Locations are compared by value.
type Location struct {
	Row    int
	Column int
}

// L is a convenience constructor for Location.
func L(row, column int) Location {
	return Location{Row: row, Column: column}
}

// String returns the coordinate as "(row,col)".
func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.Row, l.Column)
}

// Label returns the coordinate in board notation, e.g. "C7" for row 6, column 2.
func (l Location) Label() string {
	return fmt.Sprintf("%c%d", 'A'+rune(l.Column), l.Row+1)
}

// Add returns a new Location offset by (dr, dc).
func (l Location) Add(dr, dc int) Location {
	return Location{Row: l.Row + dr, Column: l.Column + dc}
}

// Neighbors returns the four orthogonal neighbors in probe order:
// up, left, down, right. Some may lie outside the grid.
func (l Location) Neighbors() [4]Location {
	return [4]Location{
		l.Add(-1, 0),
		l.Add(0, -1),
		l.Add(1, 0),
		l.Add(0, 1),
	}
}

// InBounds reports whether the location lies on a grid of the given size.
func (l Location) InBounds(height, width int) bool {
	return l.Row >= 0 && l.Column >= 0 && l.Row < height && l.Column < width
}

// Rect represents an axis-aligned box on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
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

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
