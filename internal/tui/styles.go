package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// Colors defines the color palette for the board.
var Colors = struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Error   lipgloss.Color

	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color

	// Status colors
	Todo  lipgloss.Color
	Doing lipgloss.Color
	Done  lipgloss.Color
}{
	Primary: lipgloss.Color("#6C5CE7"), // Purple
	Muted:   lipgloss.Color("#636E72"), // Gray
	Error:   lipgloss.Color("#D63031"), // Red

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow

	Todo:  lipgloss.Color("#74B9FF"), // Light blue
	Doing: lipgloss.Color("#FDCB6E"), // Yellow
	Done:  lipgloss.Color("#00B894"), // Green
}

// Styles contains all the lipgloss styles for the board.
type Styles struct {
	App    lipgloss.Style
	Header lipgloss.Style

	// Columns
	Column        lipgloss.Style
	ColumnFocused lipgloss.Style

	// Cards
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardMeta     lipgloss.Style

	// Footer
	Input  lipgloss.Style
	Error  lipgloss.Style
	Muted  lipgloss.Style
	Footer lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	column := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Colors.Muted).
		Padding(0, 1)

	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		Column:        column,
		ColumnFocused: column.BorderForeground(Colors.Primary),

		Card:         lipgloss.NewStyle().Foreground(Colors.TitleNormal),
		CardSelected: lipgloss.NewStyle().Foreground(Colors.TitleSelected).Bold(true),
		CardMeta:     lipgloss.NewStyle().Foreground(Colors.Muted),

		Input:  lipgloss.NewStyle().Foreground(Colors.Primary),
		Error:  lipgloss.NewStyle().Foreground(Colors.Error),
		Muted:  lipgloss.NewStyle().Foreground(Colors.Muted),
		Footer: lipgloss.NewStyle().MarginTop(1),
	}
}

// StatusStyle returns the column title style for a status.
func (s Styles) StatusStyle(status domain.Status) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch status {
	case domain.StatusTodo:
		return base.Foreground(Colors.Todo)
	case domain.StatusDoing:
		return base.Foreground(Colors.Doing)
	case domain.StatusDone:
		return base.Foreground(Colors.Done)
	default:
		return base
	}
}
