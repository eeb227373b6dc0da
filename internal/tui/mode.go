// Package tui provides the terminal kanban board for flowsync.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal     Mode = iota // Board navigation
	ModeConfirm                // Delete confirmation dialog
	ModeInputTitle             // Title input for a new task
	ModeHelp                   // Help overlay
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeConfirm:
		return "confirm"
	case ModeInputTitle:
		return "input_title"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	switch m {
	case ModeInputTitle:
		return true
	case ModeNormal, ModeConfirm, ModeHelp:
		return false
	}
	return false
}
