// Package engine implements the falling-block board: grid occupancy, piece
// movement and rotation, gravity and locking, and row clearing.
// It has no UI dependencies; drawing goes through the Renderer interface.
package engine

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Cell is a single grid position. The zero value is empty.
type Cell struct {
	Occupied bool
	Color    core.Color // Meaningful only when Occupied
}

// EmptyCell returns the empty sentinel.
func EmptyCell() Cell {
	return Cell{}
}

// IsEmpty reports whether nothing is locked in the cell.
func (c Cell) IsEmpty() bool {
	return !c.Occupied
}

// Occupy marks the cell as locked with the given color.
func (c *Cell) Occupy(color core.Color) {
	c.Occupied = true
	c.Color = color
}

// Clear resets the cell to the empty sentinel.
func (c *Cell) Clear() {
	*c = Cell{}
}

// Point is a grid coordinate. X grows to the right, Y grows downwards.
type Point struct {
	X, Y int
}

// Add returns p shifted by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
