package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play blockfall in this terminal",
	Long: `Start a local blockfall run.

Controls:
  Left/H, Right/L   - Move
  Down/J            - Soft drop
  Up/X/K            - Rotate clockwise
  Z                 - Rotate counter-clockwise
  P/Esc             - Pause
  R                 - Restart (after game over)
  Q/Ctrl+C          - Quit
  Ctrl+S            - Save a text screenshot to ~/.blockfall/screenshots

Difficulty options:
  easy   - 1 row per second
  normal - 2 rows per second
  hard   - 4 rows per second

Examples:
  blockfall play
  blockfall play --difficulty normal
  blockfall play --seed 42 --fps 30
  blockfall play --config ./my-board.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) {
	gameCfg, _, err := loadGameConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := blockfall.New(gameCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := debugLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = gameCfg.Gravity.FramesPerSecond
	cfg.Seed = flagSeed

	runErr := tui.Run(game, cfg, logger)
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
