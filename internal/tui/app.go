package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/flowsync/internal/app"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/usecase"
)

// columnCount is the number of board columns.
const columnCount = 3

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	err       error
	warning   error

	// State
	now     time.Time
	columns [columnCount][]*domain.Task

	// Components
	keys       KeyMap
	styles     Styles
	help       help.Model
	titleInput textinput.Model

	// Strings
	confirmTaskID    string
	confirmTaskTitle string
	focusID          string // Task to select after the next reload

	// Numeric state (smaller types last)
	mode   Mode
	width  int
	height int
	col    int
	row    int
	unread int
}

// New creates a new TUI Model with the given container.
// The container's board must already be loaded.
func New(c *app.Container) *Model {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 200

	return &Model{
		container:  c,
		mode:       ModeNormal,
		keys:       DefaultKeyMap(),
		styles:     DefaultStyles(),
		help:       help.New(),
		titleInput: ti,
	}
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return m.loadBoard()
}

// loadBoard returns a command that reads the current board snapshot.
func (m *Model) loadBoard() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		tasks, err := m.container.ListTasksUseCase().Execute(ctx, usecase.ListTasksInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		notes, err := m.container.ListNotificationsUseCase().Execute(ctx, usecase.ListNotificationsInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgBoardLoaded{
			Tasks:  tasks.Tasks,
			Now:    tasks.Now,
			Unread: notes.Unread,
		}
	}
}

// refresh returns a command that reloads the store and then the board.
func (m *Model) refresh() tea.Cmd {
	return func() tea.Msg {
		if err := m.container.Load(context.Background()); err != nil {
			return MsgError{Err: err}
		}
		return m.loadBoard()()
	}
}

// createTask returns a command that creates a task in the given column.
func (m *Model) createTask(title string, col domain.Column) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.NewTaskUseCase().Execute(
			context.Background(),
			usecase.NewTaskInput{Title: title, Column: string(col)},
		)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskChanged{TaskID: out.Task.ID, Warning: out.Warning}
	}
}

// moveTask returns a command that moves a task to another column.
func (m *Model) moveTask(taskID string, col domain.Column) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.MoveTaskUseCase().Execute(
			context.Background(),
			usecase.MoveTaskInput{TaskID: taskID, Column: string(col)},
		)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskChanged{TaskID: out.Task.ID, Warning: out.Warning}
	}
}

// deleteTask returns a command that deletes a task.
func (m *Model) deleteTask(taskID string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.DeleteTaskUseCase().Execute(
			context.Background(),
			usecase.DeleteTaskInput{TaskID: taskID},
		)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskChanged{TaskID: out.Task.ID, Warning: out.Warning}
	}
}

// markAllRead returns a command that marks every notification read.
func (m *Model) markAllRead() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.MarkReadUseCase().Execute(
			context.Background(),
			usecase.MarkReadInput{All: true},
		)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgNotificationsRead{Unread: out.Unread, Warning: out.Warning}
	}
}

// setTasks distributes tasks into their columns and keeps the cursor in range.
func (m *Model) setTasks(tasks []*domain.Task) {
	var cols [columnCount][]*domain.Task
	for _, t := range tasks {
		i := t.Column.Index()
		if i < 0 {
			continue
		}
		cols[i] = append(cols[i], t)
	}
	m.columns = cols
	m.clampRow()
}

// focusTask moves the cursor onto the task with the given ID, if present.
func (m *Model) focusTask(taskID string) {
	for c, tasks := range m.columns {
		for r, t := range tasks {
			if t.ID == taskID {
				m.col, m.row = c, r
				return
			}
		}
	}
}

func (m *Model) clampRow() {
	n := len(m.columns[m.col])
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// FocusedColumn returns the column under the cursor.
func (m *Model) FocusedColumn() domain.Column {
	return domain.AllColumns()[m.col]
}

// SelectedTask returns the task under the cursor, or nil for an empty column.
func (m *Model) SelectedTask() *domain.Task {
	tasks := m.columns[m.col]
	if m.row < 0 || m.row >= len(tasks) {
		return nil
	}
	return tasks[m.row]
}
