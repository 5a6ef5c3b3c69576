package engine

import "github.com/vovakirdan/blockfall/internal/core"

// Occupancy is the read-only view of the grid that pieces validate moves against.
type Occupancy interface {
	InBounds(p Point) bool
	Occupied(p Point) bool
}

// Grid is a fixed rows x cols array of cells. Row 0 is the top.
// Rows are stored as separate slices so that a clear can move whole rows.
type Grid struct {
	rows  int
	cols  int
	cells [][]Cell
}

// NewGrid allocates an empty grid.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{rows: rows, cols: cols, cells: make([][]Cell, rows)}
	for y := range g.cells {
		g.cells[y] = make([]Cell, cols)
	}
	return g
}

// Rows returns the grid height.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the grid width.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.cols && p.Y >= 0 && p.Y < g.rows
}

// At returns the cell at p, or an empty cell when p is out of bounds.
func (g *Grid) At(p Point) Cell {
	if !g.InBounds(p) {
		return EmptyCell()
	}
	return g.cells[p.Y][p.X]
}

// Occupied reports whether a locked cell sits at p. Out-of-bounds points are not occupied.
func (g *Grid) Occupied(p Point) bool {
	return g.At(p).Occupied
}

// Set stores c at p. Out-of-bounds writes are ignored.
func (g *Grid) Set(p Point, c Cell) {
	if g.InBounds(p) {
		g.cells[p.Y][p.X] = c
	}
}

// Occupy locks a cell of the given color at p.
func (g *Grid) Occupy(p Point, color core.Color) {
	if g.InBounds(p) {
		g.cells[p.Y][p.X].Occupy(color)
	}
}

// RowFull reports whether every cell of row y is occupied.
func (g *Grid) RowFull(y int) bool {
	if y < 0 || y >= g.rows {
		return false
	}
	for _, c := range g.cells[y] {
		if !c.Occupied {
			return false
		}
	}
	return true
}

// RowEmpty reports whether row y has no occupied cell.
func (g *Grid) RowEmpty(y int) bool {
	if y < 0 || y >= g.rows {
		return true
	}
	for _, c := range g.cells[y] {
		if c.Occupied {
			return false
		}
	}
	return true
}

// RemoveRow deletes row y and inserts a fresh empty row at the top.
// Every row above y moves down by exactly one; rows below are untouched.
func (g *Grid) RemoveRow(y int) {
	if y < 0 || y >= g.rows {
		return
	}
	removed := g.cells[y]
	clear(removed)
	copy(g.cells[1:y+1], g.cells[:y])
	g.cells[0] = removed
}

// OccupiedCount returns the number of locked cells.
func (g *Grid) OccupiedCount() int {
	n := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c.Occupied {
				n++
			}
		}
	}
	return n
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(p Point, c Cell)) {
	for y, row := range g.cells {
		for x, c := range row {
			fn(Point{X: x, Y: y}, c)
		}
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := NewGrid(g.rows, g.cols)
	for y := range g.cells {
		copy(out.cells[y], g.cells[y])
	}
	return out
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for y := range g.cells {
		for x := range g.cells[y] {
			if g.cells[y][x] != other.cells[y][x] {
				return false
			}
		}
	}
	return true
}
