package domain

import "time"

// NotificationType classifies notifications.
type NotificationType string

const (
	NotificationTaskAssigned NotificationType = "task-assigned"
	NotificationTaskUpdated  NotificationType = "task-updated"
)

// Notification is a message for the acting user about a task change.
// It holds a copy of the task data at event time.
// Fields are ordered to minimize memory padding.
type Notification struct {
	Time    time.Time        `json:"timestamp" yaml:"timestamp"`
	ID      string           `json:"id" yaml:"id"`
	Type    NotificationType `json:"type" yaml:"type"`
	Title   string           `json:"title" yaml:"title"`
	Message string           `json:"message" yaml:"message"`
	TaskID  string           `json:"taskId" yaml:"taskId"`
	Read    bool             `json:"read" yaml:"read"`
}

// NewTaskAssignedNotification builds the notification sent to a new assignee.
func NewTaskAssignedNotification(id string, task *Task, now time.Time) Notification {
	return Notification{
		ID:      id,
		Type:    NotificationTaskAssigned,
		Title:   "Task Assigned",
		Message: `Task "` + task.Title + `" has been assigned to you`,
		TaskID:  task.ID,
		Time:    now,
	}
}

// NewTaskUpdatedNotification builds the notification sent on task changes.
func NewTaskUpdatedNotification(id string, task *Task, now time.Time) Notification {
	return Notification{
		ID:      id,
		Type:    NotificationTaskUpdated,
		Title:   "Task Updated",
		Message: `Task "` + task.Title + `" has been updated`,
		TaskID:  task.ID,
		Time:    now,
	}
}
