package blockfall

import (
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
)

// maxRowsPerLock is the most rows a single four-cell piece can complete.
const maxRowsPerLock = 4

// Stats counts spawned shapes and line clears for one run.
type Stats struct {
	spawns *intmap.Map[engine.Shape, int]
	clears *intmap.Map[int, int] // Rows cleared by one lock -> number of locks
	total  int
}

// NewStats returns empty statistics.
func NewStats() *Stats {
	return &Stats{
		spawns: intmap.New[engine.Shape, int](engine.ShapeCount),
		clears: intmap.New[int, int](maxRowsPerLock),
	}
}

// Reset forgets every count.
func (s *Stats) Reset() {
	s.spawns.Clear()
	s.clears.Clear()
	s.total = 0
}

// RecordSpawn counts one piece of the given shape.
func (s *Stats) RecordSpawn(shape engine.Shape) {
	n, _ := s.spawns.Get(shape)
	s.spawns.Put(shape, n+1)
	s.total++
}

// RecordClear counts a lock that completed rows. Locks that clear nothing
// are ignored. It has the engine.ClearHandlerFunc signature.
func (s *Stats) RecordClear(rows int) {
	if rows <= 0 {
		return
	}
	n, _ := s.clears.Get(rows)
	s.clears.Put(rows, n+1)
}

// Spawned returns how many pieces of shape were spawned.
func (s *Stats) Spawned(shape engine.Shape) int {
	n, _ := s.spawns.Get(shape)
	return n
}

// TotalSpawned returns the number of pieces spawned in the run.
func (s *Stats) TotalSpawned() int { return s.total }

// Clears returns how many locks completed exactly rows rows at once.
func (s *Stats) Clears(rows int) int {
	n, _ := s.clears.Get(rows)
	return n
}
