package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is matched by every *ConfigError.
	ErrInvalidConfig = errors.New("engine: invalid board config")

	// ErrTopOut means a new piece could not be placed because its spawn
	// cells are occupied. The board stays in StateToppedOut afterwards.
	ErrTopOut = errors.New("engine: board topped out")

	// ErrNoActivePiece is returned by LockPiece when nothing is falling.
	ErrNoActivePiece = errors.New("engine: no active piece")
)

// ConfigError describes a rejected Config field.
type ConfigError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("engine: invalid board config: %s=%d %s", e.Field, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidConfig) hold for any ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}
