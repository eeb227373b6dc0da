// Package domain contains core business entities and interfaces.
package domain

import (
	"strings"
	"time"
)

// Task represents a card on the board.
// Fields are ordered to minimize memory padding.
type Task struct {
	Due         time.Time    `json:"dueDate" yaml:"dueDate"`                         // Due date
	Created     time.Time    `json:"created" yaml:"created"`                         // Creation time
	Completed   time.Time    `json:"completed,omitempty" yaml:"completed,omitempty"` // When the task entered done (zero if not done)
	Assignee    Member       `json:"assignee" yaml:"assignee"`                       // Assigned member (denormalized)
	ID          string       `json:"id" yaml:"id"`                                   // Opaque unique ID
	Title       string       `json:"title" yaml:"title"`                             // Title (required)
	Description string       `json:"description" yaml:"description"`                 // Description (optional)
	ProjectID   string       `json:"projectId,omitempty" yaml:"projectId,omitempty"` // Owning project (optional)
	Column      Column       `json:"column" yaml:"column"`                           // Workflow state
	Priority    Priority     `json:"priority" yaml:"priority"`                       // Priority
	Comments    []Comment    `json:"comments" yaml:"comments"`                       // Top-level comments, chronological
	Attachments []Attachment `json:"attachments" yaml:"attachments"`                 // Attachments, upload order
}

// TaskInput holds the caller-provided fields of a new task.
// Fields are ordered to minimize memory padding.
type TaskInput struct {
	Due         time.Time
	Assignee    Member
	Title       string
	Description string
	ProjectID   string
	Column      Column   // Empty defaults to todo
	Priority    Priority // Empty defaults to medium
}

// NewTask validates in and builds a task with empty comment and attachment lists.
func NewTask(id string, in TaskInput, now time.Time) (*Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}

	column := in.Column
	if column == "" {
		column = ColumnTodo
	}
	if !IsValidColumn(column) {
		return nil, NewValidationError("column", "unknown column "+string(column), ErrInvalidColumn)
	}

	priority := in.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !IsValidPriority(priority) {
		return nil, NewValidationError("priority", "unknown priority "+string(priority), ErrInvalidPriority)
	}

	task := &Task{
		ID:          id,
		Title:       title,
		Description: in.Description,
		ProjectID:   in.ProjectID,
		Column:      column,
		Assignee:    in.Assignee,
		Priority:    priority,
		Due:         in.Due,
		Created:     now,
		Comments:    []Comment{},
		Attachments: []Attachment{},
	}
	if column == ColumnDone {
		task.Completed = now
	}
	return task, nil
}

// Clone returns a copy of the task whose top-level slices can be replaced
// without affecting t. Comment subtrees are shared.
func (t *Task) Clone() *Task {
	c := *t
	c.Comments = append([]Comment(nil), t.Comments...)
	c.Attachments = append([]Attachment(nil), t.Attachments...)
	if c.Comments == nil {
		c.Comments = []Comment{}
	}
	if c.Attachments == nil {
		c.Attachments = []Attachment{}
	}
	return &c
}

// IsDone returns true if the task sits in the done column.
func (t *Task) IsDone() bool {
	return t.Column == ColumnDone
}

// IsPastDue returns true if the due date is before the start of today and
// the task is not done.
func (t *Task) IsPastDue(now time.Time) bool {
	if t.IsDone() || t.Due.IsZero() {
		return false
	}
	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return t.Due.Before(startOfDay)
}

// FindAttachment returns the index of the attachment with the given ID, or -1.
func (t *Task) FindAttachment(id string) int {
	for i := range t.Attachments {
		if t.Attachments[i].ID == id {
			return i
		}
	}
	return -1
}

// Normalize replaces nil slices with empty ones across the task and its
// comment tree so decoded data compares equal to freshly built data.
func (t *Task) Normalize() {
	if t.Comments == nil {
		t.Comments = []Comment{}
	}
	if t.Attachments == nil {
		t.Attachments = []Attachment{}
	}
	normalizeComments(t.Comments)
}

// TaskFilter specifies criteria for listing tasks.
// Zero values match everything.
// Fields are ordered to minimize memory padding.
type TaskFilter struct {
	DueFrom    time.Time // Inclusive lower bound on due date
	DueTo      time.Time // Inclusive upper bound on due date
	Column     Column
	Priority   Priority
	AssigneeID string
	ProjectID  string
}

// Matches returns true if the task satisfies every set criterion.
func (f TaskFilter) Matches(t *Task) bool {
	if f.Column != "" && t.Column != f.Column {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.AssigneeID != "" && t.Assignee.ID != f.AssigneeID {
		return false
	}
	if f.ProjectID != "" && t.ProjectID != f.ProjectID {
		return false
	}
	if !f.DueFrom.IsZero() && t.Due.Before(f.DueFrom) {
		return false
	}
	if !f.DueTo.IsZero() && t.Due.After(f.DueTo) {
		return false
	}
	return true
}
