package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultBlockfallYAML []byte

// DefaultBlockfallConfig returns the default board configuration.
func DefaultBlockfallConfig() BlockfallConfig {
	return BlockfallConfig{
		Board: BoardConfig{
			Rows:      20,
			Cols:      10,
			CellWidth: 2,
		},
		Gravity: GravityConfig{
			FallSpeed:       1,
			FramesPerSecond: 60,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBlockfallYAML
}
