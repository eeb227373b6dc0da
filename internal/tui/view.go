package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/flowsync/internal/domain"
)

// minColumnWidth keeps cards readable on narrow terminals.
const minColumnWidth = 20

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.mode {
	case ModeHelp:
		content = m.viewHelp()
	case ModeNormal, ModeConfirm, ModeInputTitle:
		content = m.viewMain()
	}

	return m.styles.App.Render(content)
}

// viewMain renders the board with any open dialog below it.
func (m *Model) viewMain() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.ErrorMsg.Render("Error: "+domain.UserMessage(m.err)) + "\n\n")
	}
	if m.warning != nil {
		b.WriteString(m.styles.WarningMsg.Render("Warning: "+domain.UserMessage(m.warning)) + "\n\n")
	}

	b.WriteString(m.viewBoard())
	b.WriteString("\n")

	switch m.mode {
	case ModeConfirm:
		b.WriteString("\n" + m.viewConfirmDialog() + "\n")
	case ModeInputTitle:
		b.WriteString("\n" + m.viewTitleInput() + "\n")
	case ModeNormal, ModeHelp:
	}

	b.WriteString(m.viewFooter())
	return b.String()
}

// viewHeader renders the board title.
func (m *Model) viewHeader() string {
	total := 0
	for _, tasks := range m.columns {
		total += len(tasks)
	}
	title := m.styles.HeaderText.Render("◆ flowsync")
	count := m.styles.CardMeta.Render(fmt.Sprintf("  %d tasks", total))
	return m.styles.Header.Render(title + count)
}

// columnWidth returns the outer width of one board column.
func (m *Model) columnWidth() int {
	w := (m.width - m.styles.App.GetHorizontalFrameSize()) / columnCount
	if w < minColumnWidth {
		w = minColumnWidth
	}
	return w
}

// viewBoard renders the three columns side by side.
func (m *Model) viewBoard() string {
	width := m.columnWidth()
	rendered := make([]string, 0, columnCount)
	for i, col := range domain.AllColumns() {
		rendered = append(rendered, m.viewColumn(col, m.columns[i], i == m.col, width))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// viewColumn renders one column with its header and cards.
func (m *Model) viewColumn(col domain.Column, tasks []*domain.Task, focused bool, width int) string {
	style := m.styles.Column
	if focused {
		style = m.styles.ColumnFocused
	}
	inner := width - style.GetHorizontalBorderSize() - style.GetHorizontalPadding()

	header := m.styles.ColumnHeader.Foreground(ColumnColor(col)).Render(
		fmt.Sprintf("%s %s (%d)", domain.IconForColumn(col).Glyph(), col.Display(), len(tasks)),
	)

	lines := []string{header}
	if len(tasks) == 0 {
		lines = append(lines, m.styles.CardEmptyNote.Render("No tasks"))
	}
	for i, task := range tasks {
		lines = append(lines, m.renderCard(task, focused && i == m.row, inner))
	}

	return style.Width(width - style.GetHorizontalBorderSize()).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}

// renderCard renders a task card: title on the first line, then
// ID, due date and assignee.
func (m *Model) renderCard(task *domain.Task, selected bool, width int) string {
	style := m.styles.Card
	if selected {
		style = m.styles.CardSelected
	}
	textWidth := width - style.GetHorizontalFrameSize()
	if textWidth < 1 {
		textWidth = 1
	}

	prio := m.styles.PriorityStyle(task.Priority).Render(domain.IconForPriority(task.Priority).Glyph())
	title := m.styles.CardTitle.MaxWidth(textWidth - 2).Render(task.Title)

	due := "no due date"
	dueStyle := m.styles.CardMeta
	if !task.Due.IsZero() {
		due = task.Due.Format("Jan 02")
		if task.IsPastDue(m.now) {
			due = domain.IconAlertCircle.Glyph() + " " + due
			dueStyle = m.styles.CardPastDue
		}
	}
	meta := []string{
		m.styles.CardMeta.Render(domain.ShortID(task.ID)),
		dueStyle.Render(due),
	}
	if task.Assignee.Name != "" {
		meta = append(meta, m.styles.CardMeta.Render(task.Assignee.Name))
	}
	metaLine := lipgloss.NewStyle().MaxWidth(textWidth).Render(strings.Join(meta, m.styles.CardMeta.Render(" · ")))

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, prio+" "+title, metaLine))
}

// viewConfirmDialog renders the delete confirmation dialog.
func (m *Model) viewConfirmDialog() string {
	titleStyle := m.styles.DialogTitle.Foreground(Colors.Error)
	keyStyle := m.styles.HelpKey

	title := titleStyle.Render(fmt.Sprintf("Delete task %s?", domain.ShortID(m.confirmTaskID)))
	name := m.styles.DialogPrompt.Render(m.confirmTaskTitle)
	prompt := m.styles.Footer.Render("Comments and attachments are deleted too.")

	yesBtn := keyStyle.Render("[ y ] Confirm")
	noBtn := m.styles.Footer.Render("[ n ] Cancel")
	buttons := lipgloss.JoinHorizontal(lipgloss.Left, yesBtn, "  ", noBtn)

	content := lipgloss.JoinVertical(lipgloss.Left, title, name, "", prompt, "", buttons)
	return m.styles.Dialog.BorderForeground(Colors.Error).Render(content)
}

// viewTitleInput renders the new task dialog.
func (m *Model) viewTitleInput() string {
	title := m.styles.DialogTitle.Render("◆ New Task")
	target := m.styles.Footer.Render("in " + m.FocusedColumn().Display())
	label := m.styles.InputPrompt.Render("Title")
	input := m.titleInput.View()
	hint := m.styles.FooterKey.Render("enter") + m.styles.Footer.Render(" create  ") +
		m.styles.FooterKey.Render("esc") + m.styles.Footer.Render(" cancel")

	content := lipgloss.JoinVertical(lipgloss.Left, title, target, "", label, input, "", hint)
	return m.styles.Dialog.Render(content)
}

// viewFooter renders the status line.
func (m *Model) viewFooter() string {
	return NewStatusLine(m.width-m.styles.App.GetHorizontalFrameSize(), &m.styles).Render(m.GetStatusInfo())
}

// viewHelp renders the help view.
func (m *Model) viewHelp() string {
	title := m.styles.HeaderText.Render("KEYBOARD SHORTCUTS")
	body := m.help.FullHelpView(m.keys.FullHelp())
	return lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", m.viewFooter())
}
