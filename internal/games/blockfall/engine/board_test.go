package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
)

func newTestBoard(t *testing.T, opts ...Option) *Board {
	t.Helper()
	b, err := NewBoard(DefaultConfig(), 1, opts...)
	require.NoError(t, err)
	return b
}

func activeCells(t *testing.T, b *Board) [4]Point {
	t.Helper()
	p, ok := b.Active()
	require.True(t, ok, "expected an active piece")
	return p.Cells()
}

func dropToFloor(b *Board) {
	for b.Update(SoftDrop) {
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		field string
	}{
		{"default", func(*Config) {}, ""},
		{"zero rows", func(c *Config) { c.Rows = 0 }, "rows"},
		{"negative cols", func(c *Config) { c.Cols = -1 }, "cols"},
		{"zero fall speed", func(c *Config) { c.FallSpeed = 0 }, "fall_speed"},
		{"zero fps", func(c *Config) { c.FramesPerSecond = 0 }, "frames_per_second"},
		{"zero cell size", func(c *Config) { c.CellSize = 0 }, "cell_size"},
		{"too narrow", func(c *Config) { c.Cols = 3 }, "cols"},
		{"too short", func(c *Config) { c.Rows = 3 }, "rows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(&cfg)
			err := cfg.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidConfig)
			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.field, cerr.Field)

			b, err := NewBoard(cfg, 1)
			assert.Nil(t, b)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestDropInterval(t *testing.T) {
	tests := []struct {
		fps, speed, want int
	}{
		{60, 1, 60},
		{60, 2, 30},
		{60, 7, 8},
		{60, 120, 1},
		{30, 1, 30},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.FramesPerSecond = tt.fps
		cfg.FallSpeed = tt.speed
		assert.Equal(t, tt.want, cfg.DropInterval(), "fps=%d speed=%d", tt.fps, tt.speed)
	}
}

func TestNewBoardSpawnsFirstPiece(t *testing.T) {
	b := newTestBoard(t)

	assert.Equal(t, StateSpawned, b.State())
	assert.Equal(t, 1, b.PiecesSpawned())
	assert.Zero(t, b.Grid().OccupiedCount())
	p, ok := b.Active()
	require.True(t, ok)
	assert.True(t, p.Fits(b.Grid()))
}

func TestSpawnSequenceIsSeeded(t *testing.T) {
	a, err := NewBoard(DefaultConfig(), 99)
	require.NoError(t, err)
	b, err := NewBoard(DefaultConfig(), 99)
	require.NoError(t, err)

	for range 50 {
		pa, _ := a.Active()
		pb, _ := b.Active()
		require.Equal(t, pa.Shape(), pb.Shape())
		require.Equal(t, a.Next(), b.Next())
		a.grid = NewGrid(20, 10)
		b.grid = NewGrid(20, 10)
		require.NoError(t, a.SpawnPiece())
		require.NoError(t, b.SpawnPiece())
	}
}

func TestSpawnCoversEveryShape(t *testing.T) {
	b := newTestBoard(t)
	seen := make(map[Shape]int)
	for range 700 {
		seen[b.Next()]++
		require.NoError(t, b.SpawnPiece())
	}
	for _, s := range Shapes {
		assert.Positive(t, seen[s], "shape %s never spawned", s)
	}
}

func TestUpdateDelegatesAndTracksState(t *testing.T) {
	b := newTestBoard(t)
	require.NoError(t, b.SpawnShape(ShapeT))

	assert.True(t, b.Update(MoveLeft))
	assert.Equal(t, StateMoving, b.State())

	assert.True(t, b.Update(SoftDrop))
	assert.Equal(t, StateFalling, b.State())

	assert.True(t, b.Update(RotateCW))
	assert.Equal(t, StateRotating, b.State())

	assert.True(t, b.Update(RotateCCW))
	assert.True(t, b.Update(MoveRight))
	assert.Equal(t, StateMoving, b.State())

	assert.False(t, b.Update(Command(42)))
}

func TestGravityWaitsForDropInterval(t *testing.T) {
	b := newTestBoard(t)
	require.NoError(t, b.SpawnShape(ShapeI))
	start := activeCells(t, b)

	res, err := b.ApplyGravity(59)
	require.NoError(t, err)
	assert.False(t, res.Dropped)
	assert.Equal(t, start, activeCells(t, b))
	assert.Equal(t, 59, b.FallState().FramesSinceLastDrop)

	res, err = b.ApplyGravity(1)
	require.NoError(t, err)
	assert.True(t, res.Dropped)
	assert.True(t, res.Moved)
	assert.Equal(t, StateFalling, b.State())
	assert.Zero(t, b.FallState().FramesSinceLastDrop)
	assert.Equal(t, start[0].Y+1, activeCells(t, b)[0].Y)

	res, err = b.ApplyGravity(0)
	require.NoError(t, err)
	assert.False(t, res.Dropped)
}

func TestLockAfterFourFailedDrops(t *testing.T) {
	b := newTestBoard(t)
	require.NoError(t, b.SpawnShape(ShapeI))
	dropToFloor(b)
	resting := activeCells(t, b)
	interval := b.DropInterval()

	for i := 1; i <= LockThreshold; i++ {
		res, err := b.ApplyGravity(interval)
		require.NoError(t, err)
		assert.True(t, res.Dropped)
		assert.False(t, res.Moved)
		assert.False(t, res.Locked, "no lock after %d failed drops", i)
		assert.Equal(t, i, b.FallState().ConsecutiveFailedDrops)
		assert.Equal(t, resting, activeCells(t, b))
	}

	res, err := b.ApplyGravity(interval)
	require.NoError(t, err)
	assert.True(t, res.Locked)
	assert.Zero(t, res.LinesCleared)
	assert.Equal(t, 1, b.PiecesLocked())
	assert.Equal(t, FallState{}, b.FallState())
	for _, c := range resting {
		assert.True(t, b.Grid().Occupied(c), "cell %s should be locked", c)
		assert.Equal(t, core.ColorCyan, b.Grid().At(c).Color)
	}

	_, ok := b.Active()
	assert.True(t, ok, "a new piece is spawned after the lock")
	assert.Equal(t, StateSpawned, b.State())
}

func TestSuccessfulDropResetsFailureCount(t *testing.T) {
	b := newTestBoard(t)
	b.Grid().Occupy(Point{X: 5, Y: 10}, core.ColorGray)
	require.NoError(t, b.SpawnShape(ShapeI))
	dropToFloor(b)
	require.Equal(t, 9, activeCells(t, b)[3].Y)

	interval := b.DropInterval()
	for range 2 {
		_, err := b.ApplyGravity(interval)
		require.NoError(t, err)
	}
	require.Equal(t, 2, b.FallState().ConsecutiveFailedDrops)

	require.True(t, b.Update(MoveRight))
	res, err := b.ApplyGravity(interval)
	require.NoError(t, err)
	assert.True(t, res.Moved)
	assert.Zero(t, b.FallState().ConsecutiveFailedDrops)
}

func TestCheckRowSingleFullRow(t *testing.T) {
	b := newTestBoard(t)
	fillRow(b.Grid(), 19, core.ColorGray)

	assert.True(t, b.CheckRow(19))
	assert.Zero(t, b.Grid().OccupiedCount())
}

func TestCheckRowShiftsRowsAbove(t *testing.T) {
	b := newTestBoard(t)
	require.NoError(t, b.SpawnShape(ShapeO))
	g := b.Grid()
	g.Occupy(Point{X: 0, Y: 15}, core.ColorRed)
	g.Occupy(Point{X: 9, Y: 16}, core.ColorBlue)
	fillRow(g, 17, core.ColorGray)
	g.Occupy(Point{X: 2, Y: 18}, core.ColorGreen)

	require.True(t, b.CheckRow(17))

	assert.True(t, g.Occupied(Point{X: 0, Y: 16}))
	assert.True(t, g.Occupied(Point{X: 9, Y: 17}))
	assert.True(t, g.Occupied(Point{X: 2, Y: 18}), "rows below the clear stay put")
	assert.Equal(t, 3, g.OccupiedCount())
	assert.True(t, g.RowEmpty(0))
}

func TestCheckRowNotFullIsNoop(t *testing.T) {
	b := newTestBoard(t)
	fillRow(b.Grid(), 19, core.ColorGray, 4)
	before := b.Grid().Clone()

	assert.False(t, b.CheckRow(19))
	assert.True(t, b.Grid().Equal(before))
	assert.False(t, b.CheckRow(-1))
	assert.False(t, b.CheckRow(20))
}

func TestClearRowRefusesToPushIntoActivePiece(t *testing.T) {
	b := newTestBoard(t)
	require.NoError(t, b.SpawnShape(ShapeI))
	require.True(t, b.Update(SoftDrop))
	require.True(t, b.Update(SoftDrop)) // rows 2..5 at x=5
	b.Grid().Occupy(Point{X: 5, Y: 1}, core.ColorRed)
	before := b.Grid().Clone()

	assert.False(t, b.ClearRow(10))
	assert.True(t, b.Grid().Equal(before))
}

func TestLockClearsRowsBottomToTop(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(g *Grid)
		cleared int
		check   func(t *testing.T, g *Grid)
	}{
		{
			name: "two adjacent rows",
			setup: func(g *Grid) {
				fillRow(g, 19, core.ColorGray, 5)
				fillRow(g, 18, core.ColorGray, 5)
				g.Occupy(Point{X: 0, Y: 17}, core.ColorRed)
			},
			cleared: 2,
			check: func(t *testing.T, g *Grid) {
				assert.True(t, g.Occupied(Point{X: 0, Y: 19}))
				assert.True(t, g.Occupied(Point{X: 5, Y: 19}))
				assert.True(t, g.Occupied(Point{X: 5, Y: 18}))
				assert.Equal(t, 3, g.OccupiedCount())
			},
		},
		{
			name: "rows split by a gap",
			setup: func(g *Grid) {
				fillRow(g, 19, core.ColorGray, 5)
				fillRow(g, 18, core.ColorGray, 5, 0)
				fillRow(g, 17, core.ColorGray, 5)
			},
			cleared: 2,
			check: func(t *testing.T, g *Grid) {
				assert.False(t, g.Occupied(Point{X: 0, Y: 19}))
				assert.Equal(t, 9, rowCount(g, 19))
				assert.Equal(t, 1, rowCount(g, 18))
				assert.True(t, g.Occupied(Point{X: 5, Y: 18}))
				assert.Equal(t, 10, g.OccupiedCount())
			},
		},
		{
			name: "four rows at once",
			setup: func(g *Grid) {
				for y := 16; y < 20; y++ {
					fillRow(g, y, core.ColorGray, 5)
				}
			},
			cleared: 4,
			check: func(t *testing.T, g *Grid) {
				assert.Zero(t, g.OccupiedCount())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var notified []int
			b := newTestBoard(t, WithClearHandler(ClearHandlerFunc(func(rows int) {
				notified = append(notified, rows)
			})))
			tt.setup(b.Grid())
			require.NoError(t, b.SpawnShape(ShapeI))
			dropToFloor(b)

			cleared, err := b.LockPiece()
			require.NoError(t, err)
			assert.Equal(t, tt.cleared, cleared)
			assert.Equal(t, tt.cleared, b.LinesCleared())
			assert.Equal(t, []int{tt.cleared}, notified)
			tt.check(t, b.Grid())
		})
	}
}

func rowCount(g *Grid, y int) int {
	n := 0
	for x := range g.Cols() {
		if g.Occupied(Point{X: x, Y: y}) {
			n++
		}
	}
	return n
}

func TestLockWithoutActivePiece(t *testing.T) {
	b := newTestBoard(t)
	b.hasActive = false

	_, err := b.LockPiece()
	assert.ErrorIs(t, err, ErrNoActivePiece)
	_, err = b.ApplyGravity(60)
	assert.ErrorIs(t, err, ErrNoActivePiece)
}

func TestSpawnTopOut(t *testing.T) {
	b := newTestBoard(t)
	b.hasActive = false
	fillRow(b.Grid(), 1, core.ColorGray, 0)
	before := b.Grid().Clone()

	err := b.SpawnPiece()
	require.ErrorIs(t, err, ErrTopOut)
	assert.Equal(t, StateToppedOut, b.State())
	assert.True(t, b.ToppedOut())
	assert.True(t, b.Grid().Equal(before), "top-out must not overwrite locked cells")
	_, ok := b.Active()
	assert.False(t, ok)

	assert.False(t, b.Update(MoveLeft))
	_, err = b.ApplyGravity(60)
	assert.ErrorIs(t, err, ErrTopOut)
	assert.ErrorIs(t, b.SpawnShape(ShapeI), ErrTopOut)
}

func TestLockThenTopOut(t *testing.T) {
	b := newTestBoard(t)
	require.NoError(t, b.SpawnShape(ShapeI))
	b.Grid().Occupy(Point{X: 5, Y: 4}, core.ColorGray)

	interval := b.DropInterval()
	var (
		res GravityResult
		err error
	)
	for range LockThreshold + 1 {
		res, err = b.ApplyGravity(interval)
	}

	require.ErrorIs(t, err, ErrTopOut)
	assert.True(t, res.Locked)
	assert.Equal(t, StateToppedOut, b.State())
	assert.Equal(t, 5, b.Grid().OccupiedCount())
}

type recordingRenderer struct {
	cells map[Point]core.Color
	lines [][3]int
}

func (r *recordingRenderer) DrawCell(x, y int, color core.Color) {
	r.cells[Point{X: x, Y: y}] = color
}

func (r *recordingRenderer) DrawGridLines(rows, cols, cellSize int) {
	r.lines = append(r.lines, [3]int{rows, cols, cellSize})
}

func TestDrawReportsLockedAndActiveCells(t *testing.T) {
	b := newTestBoard(t)
	b.Grid().Occupy(Point{X: 0, Y: 19}, core.ColorRed)
	require.NoError(t, b.SpawnShape(ShapeO))

	r := &recordingRenderer{cells: make(map[Point]core.Color)}
	b.Draw(r)

	assert.Len(t, r.cells, 5)
	assert.Equal(t, core.ColorRed, r.cells[Point{X: 0, Y: 19}])
	for _, c := range activeCells(t, b) {
		assert.Equal(t, core.ColorYellow, r.cells[c])
	}
	assert.Equal(t, [][3]int{{20, 10, 2}}, r.lines)
}

// Random play must never leave the active piece out of bounds or on a locked cell.
func TestRandomPlayKeepsInvariants(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FallSpeed = 20
	b, err := NewBoard(cfg, 2024)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	commands := []Command{MoveLeft, MoveRight, SoftDrop, RotateCW, RotateCCW}

	for frame := 0; frame < 20000 && !b.ToppedOut(); frame++ {
		if rng.Intn(3) == 0 {
			b.Update(commands[rng.Intn(len(commands))])
		}
		if _, err := b.ApplyGravity(1); err != nil {
			require.ErrorIs(t, err, ErrTopOut)
			break
		}

		p, ok := b.Active()
		require.True(t, ok)
		for _, c := range p.Cells() {
			require.True(t, b.Grid().InBounds(c), "frame %d: %s out of bounds", frame, c)
			require.False(t, b.Grid().Occupied(c), "frame %d: %s overlaps", frame, c)
		}
		for y := range cfg.Rows {
			require.False(t, b.Grid().RowFull(y), "frame %d: full row %d left behind", frame, y)
		}
	}
	assert.Positive(t, b.PiecesLocked())
}
