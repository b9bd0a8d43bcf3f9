package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionLeft              // A, Left arrow - steer left (held)
	ActionRight             // D, Right arrow - steer right (held)
	ActionAccelerate        // W, Up arrow - throttle (held)
	ActionJump              // Space - press-and-hold jump
	ActionRocket            // F - fire a rocket charge
	ActionConfirm           // Enter - confirm selection in menu
	ActionBack              // B, Escape - go back to menu
	ActionRestart           // R key - restart run after it ended
	ActionQuit              // Q, Ctrl+C - exit game/session
	ActionPause             // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionAccelerate:
		return "Accelerate"
	case ActionJump:
		return "Jump"
	case ActionRocket:
		return "Rocket"
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

// InputFrame represents the input edges seen during one simulation tick.
// Actions holds presses; Released holds the matching release edges for
// controls that are held down (steering, throttle, jump).
type InputFrame struct {
	Actions  map[Action]bool
	Released map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions:  make(map[Action]bool),
		Released: make(map[Action]bool),
	}
}

// Set marks an action as pressed for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Release marks an action as released for this frame.
func (f *InputFrame) Release(a Action) {
	if f.Released == nil {
		f.Released = make(map[Action]bool)
	}
	f.Released[a] = true
}

// Has returns true if the given action was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// HasRelease returns true if the given action was released this frame.
func (f InputFrame) HasRelease(a Action) bool {
	if f.Released == nil {
		return false
	}
	return f.Released[a]
}

// Empty reports whether the frame carries no edges at all.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && len(f.Released) == 0
}

// Clear resets all edges for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	for k := range f.Released {
		delete(f.Released, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	for k, v := range f.Released {
		clone.Released[k] = v
	}
	return clone
}
