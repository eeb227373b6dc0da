package domain

// EventKind identifies a domain event.
type EventKind string

const (
	EventTaskCreated   EventKind = "task-created"
	EventTaskMoved     EventKind = "task-moved"
	EventTaskCommented EventKind = "task-commented"
	EventTaskAttached  EventKind = "task-attached"
)

// Event describes a state change made by a board command.
// Task is a snapshot of the task after the change.
// Fields are ordered to minimize memory padding.
type Event struct {
	Task      *Task
	From      Column // Previous column (TaskMoved only)
	CommentID string // New comment or reply (TaskCommented only)
	Kind      EventKind
}
