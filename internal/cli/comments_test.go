package cli

import (
	"context"
	"testing"

	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommentCommand_AddsComment(t *testing.T) {
	// Setup
	c, store := newTestContainer(t)
	seedTask(t, c, usecase.NewTaskInput{Title: "Review", AssigneeID: "2"})

	// Execute
	out, _, err := runCommand(newCommentCommand(c), "t-1", "Looks", "good")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Added comment c-")
	comments := store.Tasks[0].Comments
	require.Len(t, comments, 1)
	assert.Equal(t, "Looks good", comments[0].Text)
	assert.Equal(t, "Alex Morgan", comments[0].Author)
	assert.False(t, comments[0].IsFormatted)
	require.Len(t, store.Notifications, 2)
	assert.Equal(t, domain.NotificationTaskUpdated, store.Notifications[1].Type)
}

func TestNewCommentCommand_FormattedFlag(t *testing.T) {
	c, store := newTestContainer(t)
	seedTask(t, c, usecase.NewTaskInput{Title: "Review"})

	_, _, err := runCommand(newCommentCommand(c), "t-1", "plain text", "--formatted")

	require.NoError(t, err)
	assert.True(t, store.Tasks[0].Comments[0].IsFormatted)
}

func TestNewCommentCommand_DetectsMarkup(t *testing.T) {
	c, store := newTestContainer(t)
	seedTask(t, c, usecase.NewTaskInput{Title: "Review"})

	_, _, err := runCommand(newCommentCommand(c), "t-1", "**urgent**")

	require.NoError(t, err)
	assert.True(t, store.Tasks[0].Comments[0].IsFormatted)
}

func TestNewCommentCommand_StyleFlag(t *testing.T) {
	c, store := newTestContainer(t)
	seedTask(t, c, usecase.NewTaskInput{Title: "Review"})

	_, _, err := runCommand(newCommentCommand(c), "t-1", "make", "release", "--style", "code")

	require.NoError(t, err)
	comment := store.Tasks[0].Comments[0]
	assert.Equal(t, "`make release`", comment.Text)
	assert.True(t, comment.IsFormatted)
}

func TestNewCommentCommand_Mentions(t *testing.T) {
	c, store := newTestContainer(t)
	seedTask(t, c, usecase.NewTaskInput{Title: "Review"})

	out, _, err := runCommand(newCommentCommand(c), "t-1", "ping @[Morgan Chen](2)")
	require.NoError(t, err)
	assert.Contains(t, out, "Mentioned Morgan Chen")

	_, _, err = runCommand(newCommentCommand(c), "t-1", "ping @[Ghost](9)")
	require.ErrorIs(t, err, domain.ErrUnknownMember)
	assert.Len(t, store.Tasks[0].Comments, 1)
}

func TestNewCommentCommand_EmptyText(t *testing.T) {
	c, store := newTestContainer(t)
	seedTask(t, c, usecase.NewTaskInput{Title: "Review"})

	_, _, err := runCommand(newCommentCommand(c), "t-1", "   ")

	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	assert.Empty(t, store.Tasks[0].Comments)
}

func TestNewReplyCommand_NestsUnderParent(t *testing.T) {
	// Setup
	c, store := newTestContainer(t)
	task := seedTask(t, c, usecase.NewTaskInput{Title: "Review"})
	top, err := c.AddCommentUseCase().Execute(context.Background(), usecase.AddCommentInput{TaskID: task.ID, Text: "Question"})
	require.NoError(t, err)

	// Execute
	out, _, err := runCommand(newReplyCommand(c), "t-1", top.Comment.ID, "Answer")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "(depth 1)")
	comments := store.Tasks[0].Comments
	require.Len(t, comments, 1)
	require.Len(t, comments[0].Replies, 1)
	assert.Equal(t, "Answer", comments[0].Replies[0].Text)
}

func TestNewReplyCommand_UnknownParent(t *testing.T) {
	c, _ := newTestContainer(t)
	seedTask(t, c, usecase.NewTaskInput{Title: "Review"})

	_, _, err := runCommand(newReplyCommand(c), "t-1", "c-404", "Answer")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
