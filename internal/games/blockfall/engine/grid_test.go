package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
)

func fillRow(g *Grid, y int, color core.Color, skip ...int) {
	for x := range g.Cols() {
		skipped := false
		for _, s := range skip {
			if s == x {
				skipped = true
			}
		}
		if !skipped {
			g.Occupy(Point{X: x, Y: y}, color)
		}
	}
}

func TestCellSentinel(t *testing.T) {
	c := EmptyCell()
	assert.True(t, c.IsEmpty())

	c.Occupy(core.ColorRed)
	assert.False(t, c.IsEmpty())
	assert.Equal(t, core.ColorRed, c.Color)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, EmptyCell(), c)
}

func TestGridBounds(t *testing.T) {
	g := NewGrid(20, 10)

	tests := []struct {
		p    Point
		want bool
	}{
		{Point{0, 0}, true},
		{Point{9, 19}, true},
		{Point{-1, 0}, false},
		{Point{10, 0}, false},
		{Point{0, -1}, false},
		{Point{0, 20}, false},
	}
	for _, tt := range tests {
		t.Run(tt.p.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, g.InBounds(tt.p))
		})
	}

	g.Occupy(Point{X: -1, Y: 3}, core.ColorRed)
	g.Set(Point{X: 3, Y: 25}, Cell{Occupied: true})
	assert.Zero(t, g.OccupiedCount(), "out-of-bounds writes must be ignored")
	assert.False(t, g.Occupied(Point{X: 42, Y: 42}))
}

func TestGridRowFullAndEmpty(t *testing.T) {
	g := NewGrid(4, 4)
	assert.True(t, g.RowEmpty(3))
	assert.False(t, g.RowFull(3))

	fillRow(g, 3, core.ColorBlue, 2)
	assert.False(t, g.RowFull(3))
	assert.False(t, g.RowEmpty(3))

	g.Occupy(Point{X: 2, Y: 3}, core.ColorBlue)
	assert.True(t, g.RowFull(3))

	assert.False(t, g.RowFull(-1))
	assert.False(t, g.RowFull(4))
}

func TestGridRemoveRowShiftsRowsAbove(t *testing.T) {
	g := NewGrid(6, 4)
	// A distinct marker per row: row y has its cell at x = y % 4.
	for y := range 4 {
		g.Occupy(Point{X: y % 4, Y: y}, core.Color(y+1))
	}
	fillRow(g, 4, core.ColorGray)
	g.Occupy(Point{X: 3, Y: 5}, core.ColorWhite)
	before := g.Clone()

	g.RemoveRow(4)

	assert.True(t, g.RowEmpty(0), "fresh row at the top")
	for y := range 4 {
		assert.Equal(t, before.At(Point{X: y % 4, Y: y}), g.At(Point{X: y % 4, Y: y + 1}),
			"row %d should move down by one", y)
	}
	assert.Equal(t, before.At(Point{X: 3, Y: 5}), g.At(Point{X: 3, Y: 5}), "rows below stay put")
	assert.Equal(t, before.OccupiedCount()-4, g.OccupiedCount())
}

func TestGridRemoveRowOutOfRange(t *testing.T) {
	g := NewGrid(4, 4)
	fillRow(g, 3, core.ColorRed)
	before := g.Clone()

	g.RemoveRow(-1)
	g.RemoveRow(4)

	assert.True(t, g.Equal(before))
}

func TestGridCloneIsDeep(t *testing.T) {
	g := NewGrid(4, 4)
	c := g.Clone()
	g.Occupy(Point{X: 1, Y: 1}, core.ColorRed)

	require.False(t, c.Occupied(Point{X: 1, Y: 1}))
	assert.False(t, g.Equal(c))
	assert.False(t, g.Equal(NewGrid(4, 5)))
}
