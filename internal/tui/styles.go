package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/flowsync/internal/domain"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	// Base colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Background lipgloss.Color

	// Title/text colors
	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color
	DescNormal    lipgloss.Color

	// Column colors
	Todo       lipgloss.Color
	InProgress lipgloss.Color
	Done       lipgloss.Color

	// Priority colors
	Low    lipgloss.Color
	Medium lipgloss.Color
	High   lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Secondary:  lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FDCB6E"), // Yellow
	Background: lipgloss.Color("#2D3436"), // Dark gray

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow (selected)
	DescNormal:    lipgloss.Color("#636E72"), // Gray

	Todo:       lipgloss.Color("#74B9FF"), // Light blue
	InProgress: lipgloss.Color("#FDCB6E"), // Yellow
	Done:       lipgloss.Color("#00B894"), // Green

	Low:    lipgloss.Color("#74B9FF"), // Light blue
	Medium: lipgloss.Color("#FDCB6E"), // Yellow
	High:   lipgloss.Color("#D63031"), // Red
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// App
	App lipgloss.Style

	// Header
	Header      lipgloss.Style
	HeaderText  lipgloss.Style
	UnreadBadge lipgloss.Style

	// Columns
	Column        lipgloss.Style
	ColumnFocused lipgloss.Style
	ColumnHeader  lipgloss.Style

	// Cards
	Card          lipgloss.Style
	CardSelected  lipgloss.Style
	CardTitle     lipgloss.Style
	CardMeta      lipgloss.Style
	CardPastDue   lipgloss.Style
	CardEmptyNote lipgloss.Style

	// Help
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Footer
	Footer    lipgloss.Style
	FooterKey lipgloss.Style

	// Dialog
	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogPrompt lipgloss.Style

	// Input
	InputPrompt lipgloss.Style

	// Messages
	ErrorMsg   lipgloss.Style
	WarningMsg lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		HeaderText: lipgloss.NewStyle().
			Bold(true),

		UnreadBadge: lipgloss.NewStyle().
			Foreground(Colors.Background).
			Background(Colors.Warning).
			Padding(0, 1),

		Column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted).
			Padding(0, 1),

		ColumnFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary).
			Padding(0, 1),

		ColumnHeader: lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1),

		Card: lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(Colors.TitleNormal),

		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(Colors.TitleSelected).
			PaddingLeft(1).
			Foreground(Colors.TitleSelected),

		CardTitle: lipgloss.NewStyle().
			Bold(true),

		CardMeta: lipgloss.NewStyle().
			Foreground(Colors.DescNormal),

		CardPastDue: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),

		CardEmptyNote: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true),

		Help: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		HelpKey: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Padding(0, 1),

		FooterKey: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Bold(true),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary).
			Padding(1, 2),

		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		DialogPrompt: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),

		InputPrompt: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Bold(true),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),

		WarningMsg: lipgloss.NewStyle().
			Foreground(Colors.Warning),
	}
}

// ColumnColor returns the accent color of a board column.
func ColumnColor(c domain.Column) lipgloss.Color {
	switch c {
	case domain.ColumnTodo:
		return Colors.Todo
	case domain.ColumnInProgress:
		return Colors.InProgress
	case domain.ColumnDone:
		return Colors.Done
	default:
		return Colors.Muted
	}
}

// PriorityStyle returns the style for a priority marker.
func (s Styles) PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityLow:
		return lipgloss.NewStyle().Foreground(Colors.Low)
	case domain.PriorityMedium:
		return lipgloss.NewStyle().Foreground(Colors.Medium)
	case domain.PriorityHigh:
		return lipgloss.NewStyle().Foreground(Colors.High).Bold(true)
	default:
		return s.CardMeta
	}
}
