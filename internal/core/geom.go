// Package core provides the shared types of the game shell: screen buffer,
// colors, input frames and runtime configuration.
// It has no external dependencies (especially no Bubble Tea), so game logic
// built on it stays pure and testable.
package core

// Rect is an axis-aligned area of the screen, in character cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Fits reports whether r lies completely inside outer.
func (r Rect) Fits(outer Rect) bool {
	return r.X >= outer.X && r.Y >= outer.Y && r.Right() <= outer.Right() && r.Bottom() <= outer.Bottom()
}

// CenteredIn returns a w x h rectangle centered inside outer.
// The result may stick out of outer when it is larger.
func CenteredIn(outer Rect, w, h int) Rect {
	return Rect{
		X: outer.X + (outer.W-w)/2,
		Y: outer.Y + (outer.H-h)/2,
		W: w,
		H: h,
	}
}
