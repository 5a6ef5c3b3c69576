package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
)

var (
	flagValidate bool
	flagDefaults bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or validate the board configuration",
	Long: `Print the effective board configuration as YAML, after applying
--config, --difficulty and --fps.

Config search order:
  1. --config <path>
  2. ~/.blockfall/configs/blockfall.yaml
  3. ./configs/blockfall.yaml
  4. built-in defaults

Examples:
  blockfall config                         # Show the effective configuration
  blockfall config --defaults > board.yaml # Start a custom config from the defaults
  blockfall config --validate --config ./board.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagValidate, "validate", false, "Only check the configuration and report the result")
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in default configuration file")
}

func runConfig(cmd *cobra.Command, _ []string) {
	if flagDefaults {
		fmt.Print(string(config.DefaultYAML()))
		return
	}

	cfg, source, err := loadGameConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagValidate {
		ec := blockfall.EngineConfig(cfg)
		fmt.Printf("%s: ok (%dx%d board, drop every %d frames)\n",
			source, ec.Cols, ec.Rows, ec.DropInterval())
		return
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("# source: %s\n", source)
	fmt.Print(string(data))
}
