package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/flowsync/internal/board"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/notify"
	"github.com/runoshun/flowsync/internal/usecase/shared"
)

// MoveTaskInput contains the parameters for moving a task.
type MoveTaskInput struct {
	TaskID string // Task ID or unique prefix (required)
	Column string // Target column (required)
}

// MoveTaskOutput contains the result of moving a task.
// Fields are ordered to minimize memory padding.
type MoveTaskOutput struct {
	Task         *domain.Task
	Notification *domain.Notification
	Warning      error
	From         domain.Column
	Moved        bool // False when the task already was in the target column
}

// MoveTask is the use case for moving a task between columns.
// Fields are ordered to minimize memory padding.
type MoveTask struct {
	board    *board.Engine
	notifier *notify.Dispatcher
	userID   string
}

// NewMoveTask creates a new MoveTask use case.
func NewMoveTask(b *board.Engine, notifier *notify.Dispatcher, userID string) *MoveTask {
	return &MoveTask{
		board:    b,
		notifier: notifier,
		userID:   userID,
	}
}

// Execute moves a task. Any column may follow any other.
func (uc *MoveTask) Execute(ctx context.Context, in MoveTaskInput) (*MoveTaskOutput, error) {
	col, err := domain.ParseColumn(in.Column)
	if err != nil {
		return nil, err
	}

	current, err := shared.GetTask(uc.board, in.TaskID)
	if err != nil {
		return nil, err
	}

	task, ev, err := uc.board.MoveTask(ctx, current.ID, col)
	if err != nil {
		return nil, fmt.Errorf("move task: %w", err)
	}

	return &MoveTaskOutput{
		Task:         task,
		From:         current.Column,
		Moved:        ev != nil,
		Notification: shared.Publish(ctx, uc.notifier, ev, uc.userID),
		Warning:      shared.Warning(uc.board, uc.notifier),
	}, nil
}
