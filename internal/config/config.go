// Package config provides YAML-based board configuration loading and
// difficulty presets for blockfall.
package config

import (
	"fmt"
	"strings"
)

// BlockfallConfig contains all configuration for a blockfall board.
type BlockfallConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Gravity GravityConfig `yaml:"gravity"`
}

// BoardConfig defines the well dimensions.
type BoardConfig struct {
	Rows      int `yaml:"rows"`
	Cols      int `yaml:"cols"`
	CellWidth int `yaml:"cell_width"` // Terminal columns per grid cell
}

// GravityConfig defines how fast pieces fall.
type GravityConfig struct {
	FallSpeed       int `yaml:"fall_speed"`        // Cells per second
	FramesPerSecond int `yaml:"frames_per_second"` // Overridden by the runtime tick rate when set
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the accepted presets in increasing order of speed.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// FallSpeedForPreset returns the gravity, in cells per second, of a preset.
func FallSpeedForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyNormal:
		return 2
	case DifficultyHard:
		return 4
	default:
		return 1
	}
}

// ParseDifficulty converts a flag value to a preset. The empty string means
// "keep the configured fall speed" and returns ok=false without error.
func ParseDifficulty(s string) (preset DifficultyPreset, ok bool, err error) {
	if s == "" {
		return "", false, nil
	}
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets {
		if p == known {
			return p, true, nil
		}
	}
	return "", false, fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
}
