package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
)

const (
	panelWidth = 24 // Columns reserved right of the well
	helpHeight = 1  // Rows reserved below the well
)

// Model is the Bubble Tea model for one blockfall session.
type Model struct {
	game       *blockfall.Game
	screen     *core.Screen // Well area
	preview    *core.Screen // Next piece
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       *KeyMapper
	help       help.Model
	logger     *log.Logger
	quitting   bool
}

// NewModel creates a model and starts the first run. cfg holds the full
// terminal size; the well gets what the side panel and help line leave.
func NewModel(game *blockfall.Game, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w, h := wellArea(cfg.ScreenW, cfg.ScreenH)
	pw, ph := game.PreviewSize()
	game.Reset(core.RuntimeConfig{
		ScreenW:  w,
		ScreenH:  h,
		TickRate: cfg.TickRate,
		Seed:     cfg.Seed,
	})

	return Model{
		game:       game,
		screen:     core.NewScreen(w, h),
		preview:    core.NewScreen(pw, ph),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		keys:       NewKeyMapper(),
		help:       help.New(),
		logger:     logger,
	}
}

// wellArea returns the screen size left for the well in a w x h terminal.
func wellArea(w, h int) (int, int) {
	return max(0, w-panelWidth), max(0, h-helpHeight)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.logger.Info("run started", "seed", m.game.Seed(), "fps", m.config.TickRate)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey records the action for the next tick. Quit takes effect at once.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.logger.Info("quit", "lines", m.game.Board().LinesCleared())
		return m, tea.Quit
	}
	return m, nil
}

// handleResize keeps the run going; the game freezes while the well does not fit.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height

	w, h := wellArea(msg.Width, msg.Height)
	m.screen.Resize(w, h)
	m.game.Resize(w, h)
	m.gameState = m.game.State()
	m.help.Width = msg.Width

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	prev := m.gameState
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	switch {
	case !prev.GameOver && m.gameState.GameOver:
		b := m.game.Board()
		m.logger.Info("topped out",
			"lines", b.LinesCleared(),
			"pieces", b.PiecesLocked(),
		)
	case prev.GameOver && !m.gameState.GameOver:
		m.logger.Info("run restarted", "seed", m.game.Seed())
	case prev.Paused != m.gameState.Paused:
		m.logger.Debug("pause toggled", "paused", m.gameState.Paused)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current well to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".blockfall", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	view := m.layout()

	if dialog := m.dialog(); dialog != "" {
		return renderOverlay(dialog, view)
	}
	return view
}

// Run starts the Bubble Tea program with the given game.
func Run(game *blockfall.Game, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
