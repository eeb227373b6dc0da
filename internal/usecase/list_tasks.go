package usecase

import (
	"context"
	"time"

	"github.com/runoshun/flowsync/internal/board"
	"github.com/runoshun/flowsync/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Filter domain.TaskFilter // Zero value lists every task
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Now   time.Time      // Reference time for past-due checks
	Tasks []*domain.Task // Snapshots in insertion order
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	board *board.Engine
	clock domain.Clock
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(b *board.Engine, clock domain.Clock) *ListTasks {
	return &ListTasks{
		board: b,
		clock: clock,
	}
}

// Execute returns the tasks matching the filter.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	if in.Filter.Column != "" && !in.Filter.Column.IsValid() {
		return nil, domain.NewValidationError("column", "unknown column "+string(in.Filter.Column), domain.ErrInvalidColumn)
	}
	if in.Filter.Priority != "" && !domain.IsValidPriority(in.Filter.Priority) {
		return nil, domain.NewValidationError("priority", "unknown priority "+string(in.Filter.Priority), domain.ErrInvalidPriority)
	}
	if !in.Filter.DueFrom.IsZero() && !in.Filter.DueTo.IsZero() && in.Filter.DueTo.Before(in.Filter.DueFrom) {
		return nil, domain.NewValidationError("due range", "end is before start", nil)
	}

	return &ListTasksOutput{
		Tasks: uc.board.ListTasks(in.Filter),
		Now:   uc.clock.Now(),
	}, nil
}
