package engine

import "github.com/vovakirdan/blockfall/internal/core"

// Direction is a one-cell translation.
type Direction int

const (
	Left Direction = iota
	Right
	Down
)

func (d Direction) delta() Point {
	switch d {
	case Left:
		return Point{X: -1}
	case Right:
		return Point{X: 1}
	case Down:
		return Point{Y: 1}
	default:
		return Point{}
	}
}

// Rotation is a quarter turn around the pivot.
type Rotation int

const (
	Clockwise Rotation = iota
	CounterClockwise
)

// Piece is the falling tetromino. It is a value: moves replace the whole
// cell set or leave it untouched.
type Piece struct {
	shape Shape
	cells [4]Point
}

// NewPiece builds a piece of the given shape at its spawn layout for a
// board cols wide.
func NewPiece(shape Shape, cols int) Piece {
	anchor := Point{X: cols / 2}
	p := Piece{shape: shape}
	for i, off := range spawnOffsets[shape] {
		p.cells[i] = anchor.Add(off)
	}
	return p
}

// Shape returns the tetromino kind.
func (p Piece) Shape() Shape { return p.shape }

// Cells returns a copy of the four cell positions.
func (p Piece) Cells() [4]Point { return p.cells }

// Color returns the display color of the piece.
func (p Piece) Color() core.Color { return p.shape.Color() }

// Pivot returns the rotation center, always cells[1].
func (p Piece) Pivot() Point { return p.cells[1] }

// Contains reports whether one of the piece cells is at pt.
func (p Piece) Contains(pt Point) bool {
	for _, c := range p.cells {
		if c == pt {
			return true
		}
	}
	return false
}

// Fits reports whether every cell is in bounds and free in occ.
func (p Piece) Fits(occ Occupancy) bool {
	return fits(p.cells, occ)
}

// Translate shifts the piece one cell in dir. Returns false and leaves the
// piece unchanged when any target cell is out of bounds or occupied.
func (p *Piece) Translate(dir Direction, occ Occupancy) bool {
	d := dir.delta()
	var next [4]Point
	for i, c := range p.cells {
		next[i] = c.Add(d)
	}
	return p.commit(next, occ)
}

// Fall is Translate(Down).
func (p *Piece) Fall(occ Occupancy) bool {
	return p.Translate(Down, occ)
}

// Rotate turns the piece a quarter around its pivot. O pieces never move and
// always report success. There are no wall kicks: a blocked rotation fails.
func (p *Piece) Rotate(rot Rotation, occ Occupancy) bool {
	if p.shape == ShapeO {
		return true
	}
	pv := p.Pivot()
	var next [4]Point
	for i, c := range p.cells {
		dx, dy := c.X-pv.X, c.Y-pv.Y
		switch rot {
		case Clockwise:
			next[i] = Point{X: pv.X - dy, Y: pv.Y + dx}
		case CounterClockwise:
			next[i] = Point{X: pv.X + dy, Y: pv.Y - dx}
		default:
			return false
		}
	}
	return p.commit(next, occ)
}

func (p *Piece) commit(next [4]Point, occ Occupancy) bool {
	if !fits(next, occ) {
		return false
	}
	p.cells = next
	return true
}

func fits(cells [4]Point, occ Occupancy) bool {
	for _, c := range cells {
		if !occ.InBounds(c) || occ.Occupied(c) {
			return false
		}
	}
	return true
}
