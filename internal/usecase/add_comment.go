package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/flowsync/internal/board"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/markup"
	"github.com/runoshun/flowsync/internal/notify"
	"github.com/runoshun/flowsync/internal/usecase/shared"
)

// AddCommentInput contains the parameters for adding a comment or reply.
// Fields are ordered to minimize memory padding.
type AddCommentInput struct {
	Formatted *bool  // nil detects markup in Text
	TaskID    string // Task ID or unique prefix (required)
	ParentID  string // Comment ID or unique prefix; empty adds a top-level comment
	Text      string // Comment text (required)
	Style     string // Markup applied to the whole text: bold, italic, code, bullet or link
}

// AddCommentOutput contains the result of adding a comment.
// Fields are ordered to minimize memory padding.
type AddCommentOutput struct {
	Task         *domain.Task
	Notification *domain.Notification
	Warning      error
	Mentioned    []domain.Member // Members mentioned in the text, in order
	Comment      domain.Comment  // The created comment
	Depth        int             // 0 for top-level comments
}

// AddComment is the use case for commenting on a task.
// Fields are ordered to minimize memory padding.
type AddComment struct {
	board    *board.Engine
	notifier *notify.Dispatcher
	members  domain.Directory
	author   domain.Member
}

// NewAddComment creates a new AddComment use case. author is the acting user.
func NewAddComment(b *board.Engine, notifier *notify.Dispatcher, author domain.Member) *AddComment {
	return &AddComment{
		board:    b,
		notifier: notifier,
		author:   author,
	}
}

// WithMembers sets the directory mentions are checked against.
// Without one, mentions are not checked.
func (uc *AddComment) WithMembers(members domain.Directory) *AddComment {
	uc.members = members
	return uc
}

// Execute adds a comment, or a reply at any depth when ParentID is set.
func (uc *AddComment) Execute(ctx context.Context, in AddCommentInput) (*AddCommentOutput, error) {
	text, err := shared.ValidateMessage(in.Text)
	if err != nil {
		return nil, err
	}

	formatted := in.Formatted
	if in.Style != "" {
		style, err := markup.ParseStyle(in.Style)
		if err != nil {
			return nil, err
		}
		text, _ = markup.Wrap(text, 0, len(text), style)
		text = strings.TrimSpace(text)
		yes := true
		formatted = &yes
	}

	mentioned, err := uc.resolveMentions(text)
	if err != nil {
		return nil, err
	}

	current, err := shared.GetTask(uc.board, in.TaskID)
	if err != nil {
		return nil, err
	}

	comment := domain.CommentInput{
		Author:    uc.author,
		Text:      text,
		Formatted: formatted,
	}

	var (
		task *domain.Task
		ev   *domain.Event
	)
	if in.ParentID == "" {
		task, ev, err = uc.board.AddComment(ctx, current.ID, comment)
		if err != nil {
			return nil, fmt.Errorf("add comment: %w", err)
		}
	} else {
		parentID, resolveErr := shared.ResolveComment(current.Comments, in.ParentID)
		if resolveErr != nil {
			return nil, resolveErr
		}
		task, ev, err = uc.board.AddReply(ctx, current.ID, parentID, comment)
		if err != nil {
			return nil, fmt.Errorf("add reply: %w", err)
		}
	}

	created, depth, ok := domain.FindComment(task.Comments, ev.CommentID)
	if !ok {
		return nil, domain.NewNotFoundError("comment", ev.CommentID, domain.ErrCommentNotFound)
	}

	return &AddCommentOutput{
		Task:         task,
		Comment:      *created,
		Depth:        depth,
		Mentioned:    mentioned,
		Notification: shared.Publish(ctx, uc.notifier, ev, uc.author.ID),
		Warning:      shared.Warning(uc.board, uc.notifier),
	}, nil
}

// resolveMentions looks up every mentioned member ID in the directory.
func (uc *AddComment) resolveMentions(text string) ([]domain.Member, error) {
	ids := markup.Mentions(text)
	if len(ids) == 0 || len(uc.members) == 0 {
		return nil, nil
	}
	mentioned := make([]domain.Member, 0, len(ids))
	for _, id := range ids {
		m, ok := uc.members.Lookup(id)
		if !ok {
			return nil, domain.NewValidationError("mention", "unknown member "+id, domain.ErrUnknownMember)
		}
		mentioned = append(mentioned, m)
	}
	return mentioned, nil
}
