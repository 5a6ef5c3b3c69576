// blockfall is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blockfall                  - Play locally (same as "blockfall play")
//	blockfall play             - Play locally
//	blockfall serve            - Start SSH server for remote play
//	blockfall config           - Print the effective board configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: frames_per_second from config)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Use a custom board config YAML
//	--difficulty <preset> - easy, normal or hard
//	--debug               - Write a debug log to ~/.blockfall/blockfall.log
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - stack falling blocks in your terminal",
	Long: `Blockfall is a falling-block puzzle game. Pieces fall into a well;
complete a row to clear it, and the run ends when a new piece cannot spawn.

Available commands:
  play     - Play locally (default)
  serve    - Start SSH server for remote play
  config   - Print or validate the board configuration

Examples:
  blockfall
  blockfall play --difficulty hard
  blockfall serve --ssh :2222
  blockfall config --validate --config ./my-board.yaml`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second), overrides frames_per_second")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom board config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write a debug log to ~/.blockfall/blockfall.log")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadGameConfig resolves the board configuration from the config file and
// the global flags, and validates it.
func loadGameConfig(cmd *cobra.Command) (config.BlockfallConfig, string, error) {
	cfg, source, err := config.LoadBlockfall(flagConfig)
	if err != nil {
		return cfg, source, err
	}

	preset, ok, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return cfg, source, err
	}
	if ok {
		config.ApplyBlockfallPreset(&cfg, preset)
	}

	if cmd.Flags().Changed("fps") {
		cfg.Gravity.FramesPerSecond = flagFPS
	}

	if err := blockfall.EngineConfig(cfg).Validate(); err != nil {
		return cfg, source, fmt.Errorf("invalid config from %s: %w", source, err)
	}
	return cfg, source, nil
}

// debugLogger opens the debug log when --debug is set. Otherwise it returns
// a nil logger, which the game shell treats as discard.
func debugLogger() (*log.Logger, func(), error) {
	if !flagDebug {
		return nil, func() {}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".blockfall")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}

	path := filepath.Join(dir, "blockfall.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open debug log: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockfall",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }, nil
}
