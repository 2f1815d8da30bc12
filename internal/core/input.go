package core

// Action represents a semantic player intent, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Up arrow, K - cursor up (moves a grabbed piece)
	ActionDown           // Down arrow, J - cursor down (moves a grabbed piece)
	ActionRotate         // Space, R - turn the piece under the cursor
	ActionGrab           // Enter - pick up / drop the piece under the cursor
	ActionCheck          // C - validate the sequence
	ActionInfo           // I - toggle piece description
	ActionConfirm        // Enter - confirm selection in menus
	ActionBack           // Esc, B - go back
	ActionRemix          // X - replay in shuffled order
	ActionHelp           // ? - toggle full help
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionRotate:
		return "Rotate"
	case ActionGrab:
		return "Grab"
	case ActionCheck:
		return "Check"
	case ActionInfo:
		return "Info"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRemix:
		return "Remix"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
