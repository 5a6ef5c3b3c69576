package tui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
)

// infoRows is the number of panel rows before the per-shape counters.
const infoRows = 4

var (
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Padding(0, 1)
	valueStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(1, 3).
			Align(lipgloss.Center)
	dialogTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
)

// layout joins the well, the side panel and the help line.
func (m Model) layout() string {
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		RenderScreen(m.screen),
		lipgloss.NewStyle().MarginLeft(2).Render(m.renderPanel()),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		helpStyle.Render(m.help.View(m.keys.Keys())),
	)
}

// renderPanel draws the next piece, run counters and per-shape spawn counts.
func (m Model) renderPanel() string {
	b := m.game.Board()
	stats := m.game.Stats()
	m.game.RenderNext(m.preview)

	rows := [][]string{
		{"Next", RenderScreen(m.preview)},
		{"Lines", strconv.Itoa(b.LinesCleared())},
		{"Pieces", strconv.Itoa(b.PiecesLocked())},
		{"Speed", fmt.Sprintf("%d/s", b.Config().FallSpeed)},
	}
	for _, s := range engine.Shapes {
		rows = append(rows, []string{s.String(), strconv.Itoa(stats.Spawned(s))})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case col == 1:
				return valueStyle
			case row >= infoRows && row-infoRows < len(engine.Shapes):
				return labelStyle.Foreground(shapeForeground(engine.Shapes[row-infoRows]))
			default:
				return labelStyle
			}
		})
	return t.Render()
}

func shapeForeground(s engine.Shape) lipgloss.TerminalColor {
	return styleFor(s.Color()).GetForeground()
}

// dialog returns the pause or game-over message, or "" while playing.
func (m Model) dialog() string {
	switch {
	case m.gameState.GameOver:
		b := m.game.Board()
		return dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			dialogTitleStyle.Render("GAME OVER"),
			"",
			fmt.Sprintf("Lines  %d", b.LinesCleared()),
			fmt.Sprintf("Pieces %d", b.PiecesLocked()),
			"",
			"r restart · q quit",
		))
	case m.gameState.Paused:
		return dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			dialogTitleStyle.Render("PAUSED"),
			"",
			"p resume · q quit",
		))
	}
	return ""
}

// renderOverlay centers fg on top of bg.
func renderOverlay(fg, bg string) string {
	return overlay.New(stringModel(fg), stringModel(bg), overlay.Center, overlay.Center, 0, 0).View()
}

// stringModel is a static tea.Model used as an overlay layer.
type stringModel string

func (m stringModel) Init() tea.Cmd { return nil }

func (m stringModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return m, nil }

func (m stringModel) View() string { return string(m) }
