// Package notify dispatches a due reminder to two independent sinks: a
// user-facing notification and a structured event broadcast. Sink
// failures are logged and swallowed here; they never reach the
// scheduler's control flow, and one sink failing never prevents the
// other from running.
package notify

import (
	"context"
	"fmt"

	"github.com/mkoval/markd/internal/domain"
	"github.com/mkoval/markd/internal/logger"
)

// NotificationTitle is the fixed title of every user notification.
const NotificationTitle = "Check-in reminder"

// EventReminderTriggered is the event name broadcast for each fire.
const EventReminderTriggered = "reminder-triggered"

// UserSink shows a user-facing notification.
type UserSink interface {
	Show(ctx context.Context, title, body string) error
}

// EventSink broadcasts a structured event carrying the full bookmark.
type EventSink interface {
	Emit(ctx context.Context, event string, bm *domain.Bookmark) error
}

// Notifier fans a due bookmark out to both sinks. Either sink may be
// nil (unconfigured) and is then skipped.
type Notifier struct {
	user   UserSink
	events EventSink
	logger logger.Logger
}

func New(user UserSink, events EventSink, log logger.Logger) *Notifier {
	return &Notifier{
		user:   user,
		events: events,
		logger: log,
	}
}

// Notify fires both sinks for bm. Fire-and-forget: no retry, no error
// returned.
func (n *Notifier) Notify(ctx context.Context, bm *domain.Bookmark) {
	if n.user != nil {
		body := fmt.Sprintf("Time to check back on %s", bm.Title)
		if err := n.user.Show(ctx, NotificationTitle, body); err != nil {
			n.logger.Warn("user notification failed",
				logger.Int64("bookmark_id", bm.ID),
				logger.Error(err))
		}
	}

	if n.events != nil {
		if err := n.events.Emit(ctx, EventReminderTriggered, bm); err != nil {
			n.logger.Warn("event broadcast failed",
				logger.Int64("bookmark_id", bm.ID),
				logger.Error(err))
		}
	}
}
