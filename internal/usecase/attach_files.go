package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/flowsync/internal/board"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/notify"
	"github.com/runoshun/flowsync/internal/usecase/shared"
)

// AttachFilesInput contains the parameters for attaching files.
type AttachFilesInput struct {
	TaskID string              // Task ID or unique prefix (required)
	Files  []domain.FileUpload // At least one file
}

// AttachFilesOutput contains the result of attaching files.
type AttachFilesOutput struct {
	Task         *domain.Task
	Notification *domain.Notification // Nil unless the dispatcher notifies on attachments
	Warning      error
	Attachments  []domain.Attachment // The new attachments, in upload order
}

// AttachFiles is the use case for attaching files to a task.
// Fields are ordered to minimize memory padding.
type AttachFiles struct {
	board         *board.Engine
	notifier      *notify.Dispatcher
	currentUserID string
}

// NewAttachFiles creates a new AttachFiles use case.
// The TaskAttached event is handed to notifier like every other board event.
func NewAttachFiles(b *board.Engine, notifier *notify.Dispatcher, currentUserID string) *AttachFiles {
	return &AttachFiles{
		board:         b,
		notifier:      notifier,
		currentUserID: currentUserID,
	}
}

// Execute attaches all files or none of them.
func (uc *AttachFiles) Execute(ctx context.Context, in AttachFilesInput) (*AttachFilesOutput, error) {
	current, err := shared.GetTask(uc.board, in.TaskID)
	if err != nil {
		return nil, err
	}

	task, ev, err := uc.board.AddAttachments(ctx, current.ID, in.Files)
	if err != nil {
		return nil, fmt.Errorf("attach files: %w", err)
	}

	added := task.Attachments[len(current.Attachments):]
	return &AttachFilesOutput{
		Task:         task,
		Attachments:  append([]domain.Attachment(nil), added...),
		Notification: shared.Publish(ctx, uc.notifier, ev, uc.currentUserID),
		Warning:      shared.Warning(uc.board, uc.notifier),
	}, nil
}

// DetachFileInput contains the parameters for removing an attachment.
type DetachFileInput struct {
	TaskID       string // Task ID or unique prefix (required)
	AttachmentID string // Attachment ID or unique prefix (required)
}

// DetachFileOutput contains the result of removing an attachment.
type DetachFileOutput struct {
	Task       *domain.Task
	Warning    error
	Attachment domain.Attachment // The removed attachment
}

// DetachFile is the use case for removing an attachment.
type DetachFile struct {
	board *board.Engine
}

// NewDetachFile creates a new DetachFile use case.
func NewDetachFile(b *board.Engine) *DetachFile {
	return &DetachFile{board: b}
}

// Execute removes one attachment from a task.
func (uc *DetachFile) Execute(ctx context.Context, in DetachFileInput) (*DetachFileOutput, error) {
	current, err := shared.GetTask(uc.board, in.TaskID)
	if err != nil {
		return nil, err
	}
	attID, err := shared.ResolveAttachment(current, in.AttachmentID)
	if err != nil {
		return nil, err
	}
	removed := current.Attachments[current.FindAttachment(attID)]

	task, err := uc.board.DeleteAttachment(ctx, current.ID, attID)
	if err != nil {
		return nil, fmt.Errorf("delete attachment: %w", err)
	}

	return &DetachFileOutput{
		Task:       task,
		Attachment: removed,
		Warning:    shared.Warning(uc.board),
	}, nil
}
