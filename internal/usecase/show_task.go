package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/flowsync/internal/board"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/markup"
	"github.com/runoshun/flowsync/internal/usecase/shared"
)

// ShowTaskInput contains the parameters for showing a task.
type ShowTaskInput struct {
	TaskID string // Task ID or unique prefix (required)
	HTML   bool   // Render formatted comments to HTML
}

// ShowTaskOutput contains the task details.
// Fields are ordered to minimize memory padding.
type ShowTaskOutput struct {
	Task         *domain.Task
	CommentHTML  map[string]string // Comment ID to rendered HTML, formatted comments only
	CommentCount int               // Comments and replies
	PastDue      bool
}

// ShowTask is the use case for displaying task details.
type ShowTask struct {
	board *board.Engine
	clock domain.Clock
}

// NewShowTask creates a new ShowTask use case.
func NewShowTask(b *board.Engine, clock domain.Clock) *ShowTask {
	return &ShowTask{
		board: b,
		clock: clock,
	}
}

// Execute returns the task with its comment tree.
func (uc *ShowTask) Execute(_ context.Context, in ShowTaskInput) (*ShowTaskOutput, error) {
	task, err := shared.GetTask(uc.board, in.TaskID)
	if err != nil {
		return nil, err
	}

	out := &ShowTaskOutput{
		Task:         task,
		CommentCount: domain.CountComments(task.Comments),
		PastDue:      task.IsPastDue(uc.clock.Now()),
	}
	if !in.HTML {
		return out, nil
	}

	out.CommentHTML = make(map[string]string)
	var renderErr error
	domain.WalkComments(task.Comments, func(c *domain.Comment, _ int) bool {
		if !c.IsFormatted {
			return true
		}
		html, err := markup.Render(c.Text)
		if err != nil {
			renderErr = fmt.Errorf("render comment %s: %w", c.ID, err)
			return false
		}
		out.CommentHTML[c.ID] = html
		return true
	})
	if renderErr != nil {
		return nil, renderErr
	}
	return out, nil
}
