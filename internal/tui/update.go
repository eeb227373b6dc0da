package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/flowsync/internal/domain"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case MsgBoardLoaded:
		m.now = msg.Now
		m.unread = msg.Unread
		m.setTasks(msg.Tasks)
		if m.focusID != "" {
			m.focusTask(m.focusID)
			m.focusID = ""
		}
		return m, nil

	case MsgTaskChanged:
		m.mode = ModeNormal
		m.confirmTaskID = ""
		m.confirmTaskTitle = ""
		m.focusID = msg.TaskID
		m.warning = msg.Warning
		return m, m.loadBoard()

	case MsgNotificationsRead:
		m.unread = msg.Unread
		m.warning = msg.Warning
		return m, nil

	case MsgError:
		m.err = msg.Err
		m.mode = ModeNormal
		return m, nil
	}

	// Pass through to the title input while it is focused
	if m.mode == ModeInputTitle {
		var cmd tea.Cmd
		m.titleInput, cmd = m.titleInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear messages on any key press
	m.err = nil
	m.warning = nil

	switch m.mode {
	case ModeNormal:
		return m.handleNormalMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeInputTitle:
		return m.handleInputTitleMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	}

	return m, nil
}

// handleNormalMode handles keys in normal mode.
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.row < len(m.columns[m.col])-1 {
			m.row++
		}
		return m, nil

	case key.Matches(msg, m.keys.MoveLeft):
		return m, m.moveSelected(-1)

	case key.Matches(msg, m.keys.MoveRight):
		return m, m.moveSelected(1)

	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
			m.clampRow()
		}
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if m.col < columnCount-1 {
			m.col++
			m.clampRow()
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.mode = ModeInputTitle
		m.titleInput.Reset()
		return m, m.titleInput.Focus()

	case key.Matches(msg, m.keys.Delete):
		task := m.SelectedTask()
		if task == nil {
			return m, nil
		}
		m.mode = ModeConfirm
		m.confirmTaskID = task.ID
		m.confirmTaskTitle = task.Title
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()

	case key.Matches(msg, m.keys.MarkRead):
		if m.unread == 0 {
			return m, nil
		}
		return m, m.markAllRead()

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil
	}

	return m, nil
}

// moveSelected moves the selected task delta columns. Moves past either
// edge of the board are ignored.
func (m *Model) moveSelected(delta int) tea.Cmd {
	task := m.SelectedTask()
	if task == nil {
		return nil
	}
	target := m.col + delta
	if target < 0 || target >= columnCount {
		return nil
	}
	return m.moveTask(task.ID, domain.AllColumns()[target])
}

// handleConfirmMode handles keys in the delete confirmation dialog.
func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), msg.String() == "n", msg.String() == "N":
		m.mode = ModeNormal
		m.confirmTaskID = ""
		m.confirmTaskTitle = ""
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m, m.deleteTask(m.confirmTaskID)
	}

	return m, nil
}

// handleInputTitleMode handles keys in title input mode.
func (m *Model) handleInputTitleMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.titleInput.Blur()
		m.titleInput.Reset()
		return m, nil

	case msg.Type == tea.KeyEnter:
		title := strings.TrimSpace(m.titleInput.Value())
		if title == "" {
			return m, nil
		}
		m.mode = ModeNormal
		m.titleInput.Blur()
		m.titleInput.Reset()
		return m, m.createTask(title, m.FocusedColumn())
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}

// handleHelpMode handles keys while the help overlay is shown.
func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.mode = ModeNormal
		return m, nil
	}

	return m, nil
}
