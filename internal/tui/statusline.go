package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusLineInfo contains information for rendering the status line.
// Fields are ordered to minimize memory padding.
type StatusLineInfo struct {
	Column   string // Focused column label
	KeyHints []KeyHint
	Unread   int
}

// KeyHint represents a key and its description.
type KeyHint struct {
	Key  string
	Desc string
}

// StatusLine renders a unified status line at the bottom of the screen.
// Fields are ordered to minimize memory padding.
type StatusLine struct {
	styles *Styles
	width  int
}

// NewStatusLine creates a new StatusLine with the given width and styles.
func NewStatusLine(width int, styles *Styles) *StatusLine {
	return &StatusLine{
		width:  width,
		styles: styles,
	}
}

// Render renders the status line with the given info.
func (s *StatusLine) Render(info StatusLineInfo) string {
	keyStyle := s.styles.FooterKey
	mutedStyle := lipgloss.NewStyle().Foreground(Colors.Muted)

	hints := make([]string, 0, len(info.KeyHints))
	for _, h := range info.KeyHints {
		hints = append(hints, keyStyle.Render(h.Key)+" "+h.Desc)
	}
	content := strings.Join(hints, "  ")

	rightContent := mutedStyle.Render(fmt.Sprintf("%d unread", info.Unread))
	if info.Unread > 0 {
		rightContent = s.styles.UnreadBadge.Render(fmt.Sprintf("%d unread", info.Unread))
	}
	if info.Column != "" {
		rightContent = mutedStyle.Render(info.Column) + "  " + rightContent
	}

	contentWidth := s.width - 2 // Account for padding
	rightLen := lipgloss.Width(rightContent)
	contentLen := lipgloss.Width(content)

	// Truncate content if needed
	maxContentWidth := contentWidth - rightLen - 2
	if contentLen > maxContentWidth {
		if maxContentWidth <= 3 {
			content = "..."
		} else {
			truncateStyle := lipgloss.NewStyle().MaxWidth(maxContentWidth - 3)
			content = truncateStyle.Render(content) + "..."
		}
		contentLen = lipgloss.Width(content)
	}

	spacing := contentWidth - contentLen - rightLen
	if spacing < 1 {
		spacing = 1
	}

	fullContent := content + strings.Repeat(" ", spacing) + rightContent
	return s.styles.Footer.Width(s.width).Render(fullContent)
}

// GetStatusInfo returns status line info for the TUI model.
func (m *Model) GetStatusInfo() StatusLineInfo {
	info := StatusLineInfo{
		Column: m.FocusedColumn().Display(),
		Unread: m.unread,
	}

	switch m.mode {
	case ModeNormal:
		info.KeyHints = []KeyHint{
			{Key: "h/l", Desc: "column"},
			{Key: "j/k", Desc: "nav"},
			{Key: "H/L", Desc: "move"},
			{Key: "n", Desc: "new"},
			{Key: "d", Desc: "delete"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		}
	case ModeConfirm:
		info.KeyHints = []KeyHint{
			{Key: "y", Desc: "confirm"},
			{Key: "n/esc", Desc: "cancel"},
		}
	case ModeInputTitle:
		info.KeyHints = []KeyHint{
			{Key: "enter", Desc: "create"},
			{Key: "esc", Desc: "cancel"},
		}
	case ModeHelp:
		info.KeyHints = []KeyHint{
			{Key: "?/esc", Desc: "close"},
		}
	}

	return info
}
