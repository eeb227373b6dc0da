package tui

import (
	"time"

	"github.com/runoshun/flowsync/internal/domain"
)

// Msg is the sealed interface for all TUI messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgBoardLoaded is sent when the board snapshot has been read.
type MsgBoardLoaded struct {
	Now    time.Time
	Tasks  []*domain.Task
	Unread int
}

func (MsgBoardLoaded) sealed() {}

// MsgTaskChanged is sent after a task was created, moved or deleted.
// Warning carries a persistence failure that did not stop the change.
type MsgTaskChanged struct {
	Warning error
	TaskID  string
}

func (MsgTaskChanged) sealed() {}

// MsgNotificationsRead is sent after the notification log was marked read.
type MsgNotificationsRead struct {
	Warning error
	Unread  int
}

func (MsgNotificationsRead) sealed() {}

// MsgError is sent when an error occurs.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}
