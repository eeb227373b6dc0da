package shared

import (
	"context"
	"errors"

	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/notify"
)

// Publish hands a board event to the dispatcher on behalf of the acting
// user. A nil dispatcher or event produces no notification.
func Publish(ctx context.Context, d *notify.Dispatcher, ev *domain.Event, currentUserID string) *domain.Notification {
	if d == nil || ev == nil {
		return nil
	}
	return d.Dispatch(ctx, ev, currentUserID)
}

// Warner reports the last persistence failure of a component.
type Warner interface {
	Warning() error
}

// Warning joins the pending persistence warnings of the given components.
// Nil components are skipped.
func Warning(sources ...Warner) error {
	var errs []error
	for _, s := range sources {
		if s == nil {
			continue
		}
		if err := s.Warning(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
