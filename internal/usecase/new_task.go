// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runoshun/flowsync/internal/board"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/notify"
	"github.com/runoshun/flowsync/internal/project"
	"github.com/runoshun/flowsync/internal/usecase/shared"
)

// NewTaskInput contains the parameters for creating a task.
// Fields are ordered to minimize memory padding.
type NewTaskInput struct {
	Due         time.Time // Zero defaults to DefaultDueInDays from today
	Title       string    // Task title (required)
	Description string    // Task description (optional)
	Column      string    // Empty defaults to todo
	Priority    string    // Empty defaults to medium
	AssigneeID  string    // Member ID; empty leaves the task unassigned
	ProjectID   string    // Project ID or unique prefix (optional)
}

// NewTaskOutput contains the result of creating a task.
type NewTaskOutput struct {
	Task         *domain.Task
	Notification *domain.Notification // Assignment notification, if any
	Warning      error                // Pending persistence failure
}

// NewTask is the use case for creating a task.
// Fields are ordered to minimize memory padding.
type NewTask struct {
	board    *board.Engine
	notifier *notify.Dispatcher
	projects *project.Registry
	clock    domain.Clock
	userID   string
}

// NewNewTask creates a new NewTask use case.
func NewNewTask(b *board.Engine, notifier *notify.Dispatcher, clock domain.Clock, userID string) *NewTask {
	return &NewTask{
		board:    b,
		notifier: notifier,
		clock:    clock,
		userID:   userID,
	}
}

// WithProjects lets tasks be filed under the projects of reg.
func (uc *NewTask) WithProjects(reg *project.Registry) *NewTask {
	uc.projects = reg
	return uc
}

// Execute creates a task and notifies its assignee.
func (uc *NewTask) Execute(ctx context.Context, in NewTaskInput) (*NewTaskOutput, error) {
	task := domain.TaskInput{
		Title:       in.Title,
		Description: in.Description,
		Due:         in.Due,
		Assignee:    domain.Member{ID: strings.TrimSpace(in.AssigneeID)},
	}

	if in.Column != "" {
		col, err := domain.ParseColumn(in.Column)
		if err != nil {
			return nil, err
		}
		task.Column = col
	}
	if in.Priority != "" {
		p, err := domain.ParsePriority(in.Priority)
		if err != nil {
			return nil, err
		}
		task.Priority = p
	}
	if ref := strings.TrimSpace(in.ProjectID); ref != "" {
		if uc.projects == nil {
			return nil, domain.NewNotFoundError("project", ref, domain.ErrProjectNotFound)
		}
		id, err := uc.projects.Resolve(ref)
		if err != nil {
			return nil, err
		}
		task.ProjectID = id
	}
	if task.Due.IsZero() {
		now := uc.clock.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		task.Due = today.AddDate(0, 0, domain.DefaultDueInDays)
	}

	created, ev, err := uc.board.CreateTask(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	if created.ProjectID != "" {
		// Resolved above, so the lookup cannot miss.
		_ = uc.projects.Touch(ctx, created.ProjectID)
	}

	return &NewTaskOutput{
		Task:         created,
		Notification: shared.Publish(ctx, uc.notifier, ev, uc.userID),
		Warning:      shared.Warning(uc.board, uc.notifier, uc.projects),
	}, nil
}
