package blockfall

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
)

const (
	blockRune = '█'
	gridRune  = '·'
)

// screenRenderer draws board cells into a core.Screen, cellWidth columns per cell.
type screenRenderer struct {
	dst       *core.Screen
	originX   int
	originY   int
	cellWidth int
}

var _ engine.Renderer = (*screenRenderer)(nil)

func (r *screenRenderer) DrawCell(x, y int, color core.Color) {
	sx := r.originX + x*r.cellWidth
	for i := range r.cellWidth {
		r.dst.SetColored(sx+i, r.originY+y, blockRune, color)
	}
}

// DrawGridLines marks the first column of every cell that is still blank.
func (r *screenRenderer) DrawGridLines(rows, cols, cellSize int) {
	for y := range rows {
		for x := range cols {
			sx := r.originX + x*cellSize
			sy := r.originY + y
			if r.dst.Get(sx, sy) == ' ' {
				r.dst.SetColored(sx, sy, gridRune, core.ColorDarkGray)
			}
		}
	}
}

// Render draws the well centered in dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall || g.board == nil {
		ww, wh := g.WellSize()
		y := dst.Height() / 2
		dst.DrawTextCentered(y-1, "Window too small")
		dst.DrawTextCentered(y, "Resize to continue")
		dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", ww, wh))
		return
	}

	ww, wh := g.WellSize()
	well := core.CenteredIn(dst.Bounds(), ww, wh)
	dst.DrawBoxColored(well, core.ColorGray)

	g.board.Draw(&screenRenderer{
		dst:       dst,
		originX:   well.X + 1,
		originY:   well.Y + 1,
		cellWidth: g.cfg.CellSize,
	})
}

// RenderNext draws the upcoming shape in its spawn orientation at the
// top-left of dst, which should be at least PreviewSize large.
func (g *Game) RenderNext(dst *core.Screen) {
	dst.Clear()
	if g.board == nil {
		return
	}
	r := &screenRenderer{dst: dst, cellWidth: g.cfg.CellSize}
	p := engine.NewPiece(g.board.Next(), previewCols)
	for _, c := range p.Cells() {
		r.DrawCell(c.X, c.Y, p.Color())
	}
}

// previewCols puts the spawn anchor of a preview piece at column 2, so
// every layout lands in columns 0..2.
const previewCols = 4

// PreviewSize returns the screen size RenderNext needs.
func (g *Game) PreviewSize() (w, h int) {
	return (previewCols - 1) * g.cfg.CellSize, 4
}
