package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SourceEmbedded is reported by LoadBlockfall when no file was found.
const SourceEmbedded = "embedded"

const blockfallFile = "blockfall.yaml"

// LoadBlockfall loads the board configuration and reports where it came from.
// Search order: customPath -> ~/.blockfall/configs/blockfall.yaml -> ./configs/blockfall.yaml -> embedded default.
// Fields missing from a file keep their default values. Only an explicit
// customPath turns read or parse failures into errors.
func LoadBlockfall(customPath string) (BlockfallConfig, string, error) {
	cfg := DefaultBlockfallConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, customPath, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := decode(data, &cfg); err != nil {
			return cfg, customPath, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	candidates := []string{filepath.Join("configs", blockfallFile)}
	if p := userConfigPath(blockfallFile); p != "" {
		candidates = append([]string{p}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fileCfg := DefaultBlockfallConfig()
		if err := decode(data, &fileCfg); err == nil {
			return fileCfg, path, nil
		}
	}

	// Use embedded default YAML
	if err := decode(defaultBlockfallYAML, &cfg); err != nil {
		return DefaultBlockfallConfig(), SourceEmbedded, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// decode rejects unknown keys so that typos do not silently fall back to defaults.
func decode(data []byte, cfg *BlockfallConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg BlockfallConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockfall", "configs", filename)
}

// ApplyBlockfallPreset sets the fall speed of a difficulty preset.
func ApplyBlockfallPreset(cfg *BlockfallConfig, preset DifficultyPreset) {
	cfg.Gravity.FallSpeed = FallSpeedForPreset(preset)
}
