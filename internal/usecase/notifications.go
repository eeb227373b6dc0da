package usecase

import (
	"context"

	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/notify"
)

// ListNotificationsInput contains the parameters for listing notifications.
type ListNotificationsInput struct {
	UnreadOnly bool
}

// ListNotificationsOutput contains the notification log, newest first.
type ListNotificationsOutput struct {
	Notifications []domain.Notification
	Unread        int
}

// ListNotifications is the use case for reading the notification log.
type ListNotifications struct {
	notifier *notify.Dispatcher
}

// NewListNotifications creates a new ListNotifications use case.
func NewListNotifications(notifier *notify.Dispatcher) *ListNotifications {
	return &ListNotifications{notifier: notifier}
}

// Execute returns the notifications and the unread count.
func (uc *ListNotifications) Execute(_ context.Context, in ListNotificationsInput) (*ListNotificationsOutput, error) {
	return &ListNotificationsOutput{
		Notifications: uc.notifier.List(in.UnreadOnly),
		Unread:        uc.notifier.UnreadCount(),
	}, nil
}

// MarkReadInput contains the parameters for marking notifications read.
type MarkReadInput struct {
	ID  string // Notification ID or unique prefix
	All bool   // Mark every notification; ID is ignored
}

// MarkReadOutput contains the unread count after the change.
type MarkReadOutput struct {
	Warning error
	Unread  int
}

// MarkRead is the use case for marking notifications read.
type MarkRead struct {
	notifier *notify.Dispatcher
}

// NewMarkRead creates a new MarkRead use case.
func NewMarkRead(notifier *notify.Dispatcher) *MarkRead {
	return &MarkRead{notifier: notifier}
}

// Execute marks one or all notifications read. An unknown ID is an error
// here even though the dispatcher itself ignores it.
func (uc *MarkRead) Execute(ctx context.Context, in MarkReadInput) (*MarkReadOutput, error) {
	if in.All {
		uc.notifier.MarkAllRead(ctx)
	} else {
		id, ok := uc.notifier.Resolve(in.ID)
		if !ok {
			return nil, domain.NewNotFoundError("notification", in.ID, nil)
		}
		uc.notifier.MarkRead(ctx, id)
	}

	return &MarkReadOutput{
		Unread:  uc.notifier.UnreadCount(),
		Warning: uc.notifier.Warning(),
	}, nil
}
