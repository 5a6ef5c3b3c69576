package blockfall

import (
	"strings"

	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick          uint64
	Seed          int64
	State         string // Board state name
	Paused        bool
	Active        string // Shape of the active piece, empty after top-out
	Pivot         engine.Point
	Next          string
	FramesToDrop  int // Frames accumulated towards the next drop
	FailedDrops   int
	LinesCleared  int
	PiecesLocked  int
	PiecesSpawned int
	Grid          string // One line per row, '#' occupied and '.' empty
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	if g.board == nil {
		return Snapshot{Tick: g.tick}
	}
	b := g.board
	snap := Snapshot{
		Tick:          g.tick,
		Seed:          g.seed,
		State:         b.State().String(),
		Paused:        g.paused,
		Next:          b.Next().String(),
		FramesToDrop:  b.FallState().FramesSinceLastDrop,
		FailedDrops:   b.FallState().ConsecutiveFailedDrops,
		LinesCleared:  b.LinesCleared(),
		PiecesLocked:  b.PiecesLocked(),
		PiecesSpawned: b.PiecesSpawned(),
		Grid:          gridString(b.Grid()),
	}
	if p, ok := b.Active(); ok {
		snap.Active = p.Shape().String()
		snap.Pivot = p.Pivot()
	}
	return snap
}

func gridString(g *engine.Grid) string {
	var sb strings.Builder
	sb.Grow(g.Rows() * (g.Cols() + 1))
	for y := range g.Rows() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range g.Cols() {
			if g.Occupied(engine.Point{X: x, Y: y}) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
