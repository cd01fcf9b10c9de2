// Package tui provides the terminal kanban board for lembra.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal Mode = iota // Board navigation
	ModeInput              // New task title input
	ModeHelp               // Help overlay
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInput:
		return "input"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}
