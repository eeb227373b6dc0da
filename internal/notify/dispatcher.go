// Package notify turns board events into notifications for the acting user.
package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/runoshun/flowsync/internal/domain"
)

const notificationIDPrefix = "n"

// Dispatcher records notifications and tracks which ones have been read.
// Notifications are stored in insertion order and listed newest first.
// Fields are ordered to minimize memory padding.
type Dispatcher struct {
	store       domain.NotificationStore // nil keeps notifications in memory only
	ids         domain.IDGenerator
	clock       domain.Clock
	logger      domain.Logger
	lastSaveErr error
	items       []domain.Notification
	mu          sync.Mutex
}

// New creates an empty Dispatcher.
func New(store domain.NotificationStore, ids domain.IDGenerator, clock domain.Clock, logger domain.Logger) *Dispatcher {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Dispatcher{
		store:  store,
		ids:    ids,
		clock:  clock,
		logger: logger,
	}
}

// Load replaces the in-memory log with the persisted one.
func (d *Dispatcher) Load(ctx context.Context) error {
	if d.store == nil {
		return nil
	}
	items, err := d.store.LoadNotifications(ctx)
	if err != nil {
		return domain.NewPersistenceError("load", err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items = append([]domain.Notification(nil), items...)
	return nil
}

// Dispatch routes ev to the matching handler and returns the notification
// created, or nil when the event does not notify anyone.
func (d *Dispatcher) Dispatch(ctx context.Context, ev *domain.Event, currentUserID string) *domain.Notification {
	if ev == nil || ev.Task == nil {
		return nil
	}
	switch ev.Kind {
	case domain.EventTaskCreated:
		return d.OnTaskCreated(ctx, ev, currentUserID)
	case domain.EventTaskMoved:
		return d.OnTaskMoved(ctx, ev, currentUserID)
	case domain.EventTaskCommented:
		return d.OnTaskCommented(ctx, ev, currentUserID)
	default:
		return nil
	}
}

// OnTaskCreated notifies the assignee of a new task.
func (d *Dispatcher) OnTaskCreated(ctx context.Context, ev *domain.Event, currentUserID string) *domain.Notification {
	return d.record(ctx, ev, currentUserID, domain.NewTaskAssignedNotification)
}

// OnTaskMoved notifies the assignee that the task changed column.
func (d *Dispatcher) OnTaskMoved(ctx context.Context, ev *domain.Event, currentUserID string) *domain.Notification {
	return d.record(ctx, ev, currentUserID, domain.NewTaskUpdatedNotification)
}

// OnTaskCommented notifies the assignee of a new comment or reply.
func (d *Dispatcher) OnTaskCommented(ctx context.Context, ev *domain.Event, currentUserID string) *domain.Notification {
	return d.record(ctx, ev, currentUserID, domain.NewTaskUpdatedNotification)
}

type builder func(id string, task *domain.Task, now time.Time) domain.Notification

func (d *Dispatcher) record(ctx context.Context, ev *domain.Event, currentUserID string, build builder) *domain.Notification {
	if ev == nil || ev.Task == nil {
		return nil
	}
	// Own changes never notify; unassigned tasks have nobody to notify.
	if ev.Task.Assignee.ID == "" || ev.Task.Assignee.ID == currentUserID {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	n := build(d.ids.NewID(notificationIDPrefix), ev.Task, d.clock.Now())
	d.items = append(d.items, n)
	d.logger.Info(ev.Task.ID, "notify", fmt.Sprintf("%s for %s", n.Type, ev.Task.Assignee.Name))
	d.persist(ctx)
	return &n
}

// MarkRead flips one notification to read. Unknown IDs are ignored.
func (d *Dispatcher) MarkRead(ctx context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.items {
		if d.items[i].ID != id {
			continue
		}
		if !d.items[i].Read {
			d.items[i].Read = true
			d.persist(ctx)
		}
		return
	}
}

// MarkAllRead flips every unread notification to read.
func (d *Dispatcher) MarkAllRead(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	changed := false
	for i := range d.items {
		if !d.items[i].Read {
			d.items[i].Read = true
			changed = true
		}
	}
	if changed {
		d.persist(ctx)
	}
}

// UnreadCount returns the number of unread notifications.
func (d *Dispatcher) UnreadCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for _, item := range d.items {
		if !item.Read {
			n++
		}
	}
	return n
}

// List returns notifications newest first. If unreadOnly is set, read
// notifications are skipped.
func (d *Dispatcher) List(unreadOnly bool) []domain.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]domain.Notification, 0, len(d.items))
	for i := len(d.items) - 1; i >= 0; i-- {
		if unreadOnly && d.items[i].Read {
			continue
		}
		out = append(out, d.items[i])
	}
	return out
}

// Resolve expands a notification ID prefix. It returns false when the
// prefix matches nothing or more than one notification.
func (d *Dispatcher) Resolve(ref string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, item := range d.items {
		if item.ID == ref {
			return ref, true
		}
	}
	if ref == "" {
		return "", false
	}
	var match string
	for _, item := range d.items {
		if !strings.HasPrefix(item.ID, ref) {
			continue
		}
		if match != "" {
			return "", false
		}
		match = item.ID
	}
	return match, match != ""
}

// Warning returns the last persistence failure, or nil once a later save
// has succeeded. A nil Dispatcher has no warning.
func (d *Dispatcher) Warning() error {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastSaveErr
}

func (d *Dispatcher) persist(ctx context.Context) {
	if d.store == nil {
		return
	}
	snapshot := append([]domain.Notification(nil), d.items...)
	if err := d.store.SaveNotifications(ctx, snapshot); err != nil {
		d.lastSaveErr = domain.NewPersistenceError("save", err)
		d.logger.Warn("", "store", fmt.Sprintf("save notifications failed: %v", err))
		return
	}
	d.lastSaveErr = nil
}
