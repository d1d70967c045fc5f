// Package core provides fundamental types and utilities shared by the
// simulation and the terminal front-end. It has no external dependencies
// (especially no Bubble Tea) to keep game logic pure and testable.
package core

import "math"

// Rect is an axis-aligned box in terminal cell coordinates.
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

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// RectF is an axis-aligned box in simulation pixel coordinates.
// Y grows downwards, as on the display surface.
type RectF struct {
	X, Y float64
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 {
	return r.Y + r.H
}

// Scale maps the box to cell coordinates given how many simulation pixels
// one cell covers on each axis. Boxes thinner than a cell still cover one.
func (r RectF) Scale(pxPerCol, pxPerRow float64) Rect {
	x0 := int(math.Floor(r.X / pxPerCol))
	y0 := int(math.Floor(r.Y / pxPerRow))
	x1 := int(math.Ceil(r.Right() / pxPerCol))
	y1 := int(math.Ceil(r.Bottom() / pxPerRow))
	return Rect{
		X: x0,
		Y: y0,
		W: max(x1-x0, 1),
		H: max(y1-y0, 1),
	}
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

// RoundPx rounds a per-tick displacement to whole pixels, halves away
// from zero.
func RoundPx(v float64) float64 {
	return math.Round(v)
}
