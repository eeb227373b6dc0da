package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/flowsync/internal/board"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/usecase/shared"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	TaskID string // Task ID or unique prefix (required)
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct {
	Task    *domain.Task // Snapshot taken before deletion
	Warning error
}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	board *board.Engine
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(b *board.Engine) *DeleteTask {
	return &DeleteTask{board: b}
}

// Execute deletes a task together with its comments and attachments.
func (uc *DeleteTask) Execute(ctx context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	task, err := shared.GetTask(uc.board, in.TaskID)
	if err != nil {
		return nil, err
	}

	if err := uc.board.DeleteTask(ctx, task.ID); err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}

	return &DeleteTaskOutput{
		Task:    task,
		Warning: shared.Warning(uc.board),
	}, nil
}
