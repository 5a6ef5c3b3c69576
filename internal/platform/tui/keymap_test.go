package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/blockfall/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionMoveLeft, false},
		{"h", runeKey('h'), core.ActionMoveLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionMoveRight, false},
		{"l", runeKey('l'), core.ActionMoveRight, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionSoftDrop, false},
		{"j", runeKey('j'), core.ActionSoftDrop, false},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotateCW, false},
		{"x", runeKey('x'), core.ActionRotateCW, false},
		{"k", runeKey('k'), core.ActionRotateCW, false},
		{"z", runeKey('z'), core.ActionRotateCCW, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('w'), core.ActionNone, false},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.quit, quit)
		})
	}
}

func TestMapKeyToFrameCollectsActions(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	assert.False(t, km.MapKeyToFrame(runeKey('h'), &frame))
	assert.False(t, km.MapKeyToFrame(runeKey('h'), &frame))
	assert.False(t, km.MapKeyToFrame(runeKey('z'), &frame))
	assert.False(t, km.MapKeyToFrame(runeKey('w'), &frame))

	assert.True(t, frame.Has(core.ActionMoveLeft))
	assert.True(t, frame.Has(core.ActionRotateCCW))
	assert.False(t, frame.Has(core.ActionNone))
	assert.Len(t, frame.Actions, 2)

	assert.True(t, km.MapKeyToFrame(runeKey('q'), &frame))
}

func TestHelpCoversEveryBinding(t *testing.T) {
	keys := DefaultGameKeyMap()
	n := 0
	for _, col := range keys.FullHelp() {
		n += len(col)
	}
	assert.Equal(t, 8, n)
	for _, b := range keys.ShortHelp() {
		assert.NotEmpty(t, b.Help().Key)
	}
}
