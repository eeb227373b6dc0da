package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/flowsync/internal/domain"
)

// DateLayout is the format of due dates in files and flags.
const DateLayout = "2006-01-02"

// ImportTasksInput contains the parameters for creating tasks from a file.
type ImportTasksInput struct {
	Content string // Markdown with one frontmatter block per task
	DryRun  bool   // Parse and validate without creating tasks
}

// ImportTasksOutput contains the result of an import.
// Fields are ordered to minimize memory padding.
type ImportTasksOutput struct {
	Warning  error
	Drafts   []domain.TaskDraft // Parsed drafts, in file order
	Tasks    []*domain.Task     // Created tasks; empty on a dry run
	Notified int                // Number of assignment notifications sent
}

// ImportTasks is the use case for creating tasks from a Markdown file.
type ImportTasks struct {
	newTask *NewTask
	members domain.Directory
}

// NewImportTasks creates a new ImportTasks use case. Tasks are created
// through newTask so they notify exactly like single creations.
func NewImportTasks(newTask *NewTask, members domain.Directory) *ImportTasks {
	return &ImportTasks{
		newTask: newTask,
		members: members,
	}
}

// Execute validates every draft before creating any, so a bad file
// leaves the board unchanged.
func (uc *ImportTasks) Execute(ctx context.Context, in ImportTasksInput) (*ImportTasksOutput, error) {
	drafts, err := domain.ParseTaskDrafts(in.Content)
	if err != nil {
		return nil, err
	}

	inputs := make([]NewTaskInput, 0, len(drafts))
	for i, d := range drafts {
		input, err := uc.toInput(d)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		inputs = append(inputs, input)
	}

	out := &ImportTasksOutput{Drafts: drafts}
	if in.DryRun {
		return out, nil
	}

	out.Tasks = make([]*domain.Task, 0, len(inputs))
	for i, input := range inputs {
		created, err := uc.newTask.Execute(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		out.Tasks = append(out.Tasks, created.Task)
		if created.Notification != nil {
			out.Notified++
		}
		out.Warning = created.Warning
	}
	return out, nil
}

// toInput checks the fields NewTask would reject.
func (uc *ImportTasks) toInput(d domain.TaskDraft) (NewTaskInput, error) {
	input := NewTaskInput{
		Title:       d.Title,
		Description: d.Description,
		Column:      d.Column,
		Priority:    d.Priority,
		AssigneeID:  d.AssigneeID,
	}
	if d.Column != "" {
		if _, err := domain.ParseColumn(d.Column); err != nil {
			return NewTaskInput{}, err
		}
	}
	if d.Priority != "" {
		if _, err := domain.ParsePriority(d.Priority); err != nil {
			return NewTaskInput{}, err
		}
	}
	if d.AssigneeID != "" && len(uc.members) > 0 {
		if _, ok := uc.members.Lookup(d.AssigneeID); !ok {
			return NewTaskInput{}, domain.NewValidationError("assignee", "unknown member "+d.AssigneeID, domain.ErrUnknownMember)
		}
	}
	if d.Due != "" {
		due, err := time.ParseInLocation(DateLayout, d.Due, time.Local)
		if err != nil {
			return NewTaskInput{}, domain.NewValidationError("due", fmt.Sprintf("expected YYYY-MM-DD, got %q", d.Due), err)
		}
		input.Due = due
	}
	return input, nil
}
