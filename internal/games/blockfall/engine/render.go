package engine

import "github.com/vovakirdan/blockfall/internal/core"

// Renderer receives draw calls for one frame. Implementations decide what a
// cell looks like; the board only reports grid coordinates and colors.
type Renderer interface {
	DrawCell(x, y int, color core.Color)
	DrawGridLines(rows, cols, cellSize int)
}

// Draw issues one DrawCell per locked cell and per active piece cell, then
// the grid lines.
func (b *Board) Draw(r Renderer) {
	b.grid.Each(func(p Point, c Cell) {
		if c.Occupied {
			r.DrawCell(p.X, p.Y, c.Color)
		}
	})
	if b.hasActive {
		color := b.active.Color()
		for _, c := range b.active.cells {
			r.DrawCell(c.X, c.Y, color)
		}
	}
	r.DrawGridLines(b.cfg.Rows, b.cfg.Cols, b.cfg.CellSize)
}
