package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
)

// GameKeyMap defines the key bindings of a blockfall run.
type GameKeyMap struct {
	Left      key.Binding
	Right     key.Binding
	SoftDrop  key.Binding
	RotateCW  key.Binding
	RotateCCW key.Binding
	Pause     key.Binding
	Restart   key.Binding
	Quit      key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.SoftDrop, k.RotateCW, k.Pause, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.SoftDrop},
		{k.RotateCW, k.RotateCCW},
		{k.Pause, k.Restart, k.Quit},
	}
}

// DefaultGameKeyMap returns the default bindings, with vim-style aliases.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		SoftDrop: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "drop"),
		),
		RotateCW: key.NewBinding(
			key.WithKeys("up", "x", "k"),
			key.WithHelp("↑/x", "rotate"),
		),
		RotateCCW: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "rotate back"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeyMap()}
}

// Keys returns the bindings used by the mapper.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, km.keys.Left):
		return core.ActionMoveLeft, false
	case key.Matches(msg, km.keys.Right):
		return core.ActionMoveRight, false
	case key.Matches(msg, km.keys.SoftDrop):
		return core.ActionSoftDrop, false
	case key.Matches(msg, km.keys.RotateCW):
		return core.ActionRotateCW, false
	case key.Matches(msg, km.keys.RotateCCW):
		return core.ActionRotateCCW, false
	case key.Matches(msg, km.keys.Pause):
		return core.ActionPause, false
	case key.Matches(msg, km.keys.Restart):
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}
