package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionMoveLeft         // Left, H - shift the piece left
	ActionMoveRight        // Right, L - shift the piece right
	ActionSoftDrop         // Down, J - move the piece down one row
	ActionRotateCW         // Up, X, K - rotate clockwise
	ActionRotateCCW        // Z - rotate counter-clockwise
	ActionConfirm          // Enter - dismiss a dialog
	ActionBack             // B - leave the current game
	ActionRestart          // R - start a new run after game over
	ActionQuit             // Q, Ctrl+C - exit
	ActionPause            // P, Esc - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions triggered during one simulation tick.
// Setting an action twice in the same frame has no extra effect, so every
// action is an edge that fires at most once per tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
