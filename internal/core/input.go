package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - aim/move left
	ActionRight          // D, Right arrow - aim/move right
	ActionUp             // W, Up arrow - cursor up (card reveal)
	ActionDown           // S, Down arrow - cursor down (card reveal)
	ActionFire           // Space - shoot, drop or reveal
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionReload         // R - load the next card after a win
	ActionQuit           // Q, Ctrl+C - exit game/session
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
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionFire:
		return "Fire"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionReload:
		return "Reload"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Pointer is a pointer (mouse or touch) event in board-relative coordinates.
type Pointer struct {
	Pos  Vec  // Board-relative position
	Down bool // Pressed this frame (click/tap); false for plain movement
}

// InputFrame represents the input state for a single simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	// Pointer holds the latest pointer event this frame, if any.
	Pointer *Pointer
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
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetPointer records a pointer event. A press is sticky for the frame:
// a later move does not cancel an earlier click.
func (f *InputFrame) SetPointer(pos Vec, down bool) {
	if f.Pointer != nil && f.Pointer.Down {
		down = true
	}
	f.Pointer = &Pointer{Pos: pos, Down: down}
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = nil
}
