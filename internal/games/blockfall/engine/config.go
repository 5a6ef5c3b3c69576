package engine

import "fmt"

// LockThreshold is the number of consecutive failed gravity drops a piece
// tolerates. The piece locks on the next failure after this many.
const LockThreshold = 3

// Config holds the board parameters. It is read once by NewBoard and never
// changed afterwards.
type Config struct {
	Rows            int // Grid height in cells (row 0 is the top)
	Cols            int // Grid width in cells
	FallSpeed       int // Gravity in cells per second
	FramesPerSecond int // Rate at which ApplyGravity is driven
	CellSize        int // Size of one cell in render units, passed to DrawGridLines
}

// DefaultConfig returns the classic 20x10 board falling one cell per second at 60 fps.
func DefaultConfig() Config {
	return Config{
		Rows:            20,
		Cols:            10,
		FallSpeed:       1,
		FramesPerSecond: 60,
		CellSize:        2,
	}
}

// Validate reports the first invalid field as a *ConfigError.
// Every spawn layout is four cells tall and reaches two columns left of the
// anchor, so smaller boards are rejected as well.
func (c Config) Validate() error {
	switch {
	case c.Rows <= 0:
		return &ConfigError{Field: "rows", Value: c.Rows, Reason: "must be positive"}
	case c.Cols <= 0:
		return &ConfigError{Field: "cols", Value: c.Cols, Reason: "must be positive"}
	case c.FallSpeed <= 0:
		return &ConfigError{Field: "fall_speed", Value: c.FallSpeed, Reason: "must be positive"}
	case c.FramesPerSecond <= 0:
		return &ConfigError{Field: "frames_per_second", Value: c.FramesPerSecond, Reason: "must be positive"}
	case c.CellSize <= 0:
		return &ConfigError{Field: "cell_size", Value: c.CellSize, Reason: "must be positive"}
	case c.Rows < minRows:
		return &ConfigError{Field: "rows", Value: c.Rows, Reason: fmt.Sprintf("must be at least %d to fit a spawn layout", minRows)}
	case c.Cols < minCols:
		return &ConfigError{Field: "cols", Value: c.Cols, Reason: fmt.Sprintf("must be at least %d to fit a spawn layout", minCols)}
	}
	return nil
}

// DropInterval returns the number of frames between gravity drops.
func (c Config) DropInterval() int {
	if c.FallSpeed <= 0 {
		return c.FramesPerSecond
	}
	return max(1, c.FramesPerSecond/c.FallSpeed)
}

const (
	minRows = 4
	minCols = 4
)
