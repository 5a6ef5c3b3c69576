// Package blockfall runs one falling-block board per game session. It turns
// platform input frames into board commands, paces gravity on the simulation
// tick and draws the board into a core.Screen.
package blockfall

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
)

// ID is the game identifier used in logs and snapshots.
const ID = "blockfall"

// commandOrder is the order in which piece commands of one frame reach the board.
var commandOrder = []struct {
	action core.Action
	cmd    engine.Command
}{
	{core.ActionMoveLeft, engine.MoveLeft},
	{core.ActionMoveRight, engine.MoveRight},
	{core.ActionSoftDrop, engine.SoftDrop},
	{core.ActionRotateCW, engine.RotateCW},
	{core.ActionRotateCCW, engine.RotateCCW},
}

// Game implements a blockfall session on top of engine.Board.
type Game struct {
	cfg    engine.Config
	board  *engine.Board
	rng    *rand.Rand // Seeds restarts
	seed   int64
	tick   uint64
	stats  *Stats
	spawns int // Board spawns already recorded in stats

	lastCleared int // Rows cleared by the most recent lock

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	paused   bool
	tooSmall bool
}

// EngineConfig maps the YAML configuration onto board parameters.
func EngineConfig(cfg config.BlockfallConfig) engine.Config {
	return engine.Config{
		Rows:            cfg.Board.Rows,
		Cols:            cfg.Board.Cols,
		FallSpeed:       cfg.Gravity.FallSpeed,
		FramesPerSecond: cfg.Gravity.FramesPerSecond,
		CellSize:        cfg.Board.CellWidth,
	}
}

// New validates cfg and returns a game that is ready for Reset.
func New(cfg config.BlockfallConfig) (*Game, error) {
	ec := EngineConfig(cfg)
	if err := ec.Validate(); err != nil {
		return nil, fmt.Errorf("blockfall: %w", err)
	}
	return &Game{cfg: ec, stats: NewStats()}, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Blockfall" }

// Reset starts a new run. A positive TickRate replaces frames_per_second so
// that the drop interval follows the real loop rate.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if rc.TickRate > 0 {
		g.cfg.FramesPerSecond = rc.TickRate
	}
	g.seed = rc.Seed
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tick = 0
	g.paused = false
	g.lastCleared = 0
	g.spawns = 0
	g.stats.Reset()
	g.Resize(rc.ScreenW, rc.ScreenH)

	board, err := engine.NewBoard(g.cfg, rc.Seed,
		engine.WithClearHandler(engine.ClearHandlerFunc(g.stats.RecordClear)))
	if err != nil {
		// The config was validated in New and an empty grid always fits a spawn.
		panic(fmt.Sprintf("blockfall: cannot create board: %v", err))
	}
	g.board = board
	g.recordSpawn()
}

// Resize updates the screen dimensions. The simulation freezes while the
// well does not fit.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	ww, wh := g.WellSize()
	g.tooSmall = !core.NewRect(0, 0, ww, wh).Fits(core.NewRect(0, 0, w, h))
}

// WellSize returns the on-screen size of the bordered well.
func (g *Game) WellSize() (w, h int) {
	return g.cfg.Cols*g.cfg.CellSize + 2, g.cfg.Rows + 2
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++
	if g.board == nil {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if input.Has(core.ActionRestart) && g.board.ToppedOut() {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.cfg.FramesPerSecond,
		})
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) && !g.board.ToppedOut() {
		g.paused = !g.paused
	}

	if g.board.ToppedOut() || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	for _, c := range commandOrder {
		if input.Has(c.action) {
			g.board.Update(c.cmd)
		}
	}

	res, err := g.board.ApplyGravity(1)
	if err != nil && !errors.Is(err, engine.ErrTopOut) {
		panic(fmt.Sprintf("blockfall: gravity on a live board: %v", err))
	}
	if res.Locked {
		g.lastCleared = res.LinesCleared
	}
	g.recordSpawn()

	return core.StepResult{State: g.State()}
}

// recordSpawn counts the active piece once per board spawn.
func (g *Game) recordSpawn() {
	if g.board.PiecesSpawned() == g.spawns {
		return
	}
	g.spawns = g.board.PiecesSpawned()
	if p, ok := g.board.Active(); ok {
		g.stats.RecordSpawn(p.Shape())
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		GameOver: g.board != nil && g.board.ToppedOut(),
		Paused:   g.paused,
		TooSmall: g.tooSmall,
	}
}

// Board exposes the underlying board for inspection.
func (g *Game) Board() *engine.Board { return g.board }

// Stats returns the statistics of the current run.
func (g *Game) Stats() *Stats { return g.stats }

// Seed returns the seed of the current run.
func (g *Game) Seed() int64 { return g.seed }

// LastCleared returns the number of rows cleared by the most recent lock.
func (g *Game) LastCleared() int { return g.lastCleared }
