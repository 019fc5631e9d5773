// Package reminders holds the two reminder mutators, complete and
// snooze. Both are read-modify-write on a single reminder with no
// transaction spanning the read and the write; a racing full bookmark
// update is resolved last-writer-wins by the store.
package reminders

import (
	"context"
	"time"

	"github.com/mkoval/markd/internal/domain"
	"github.com/mkoval/markd/internal/logger"
)

// Store is the slice of the storage layer the mutators need.
type Store interface {
	Get(ctx context.Context, id int64) (*domain.Bookmark, error)
	ReplaceReminder(ctx context.Context, id int64, r *domain.Reminder) (*domain.Bookmark, error)
}

type Service struct {
	store  Store
	logger logger.Logger
	now    func() time.Time
}

func New(store Store, log logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: log,
		now:    time.Now,
	}
}

// Complete stamps last_reminded with the current UTC time and persists
// it through a reminder-only replace. A bookmark without a reminder is
// a successful no-op.
func (s *Service) Complete(ctx context.Context, id int64) error {
	bm, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if bm.Reminder == nil {
		return nil
	}

	now := s.now().UTC()
	r := *bm.Reminder
	r.LastReminded = &now

	if _, err := s.store.ReplaceReminder(ctx, id, &r); err != nil {
		return err
	}

	s.logger.Info("reminder completed",
		logger.Int64("bookmark_id", id),
		logger.Time("last_reminded", now))
	return nil
}

// Snooze stamps next_reminder = now + minutes. It does not touch
// last_reminded, and due evaluation does not read next_reminder, so
// snoozing currently has no effect on when the reminder next fires.
func (s *Service) Snooze(ctx context.Context, id int64, minutes int) error {
	bm, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if bm.Reminder == nil {
		return nil
	}

	until := s.now().UTC().Add(time.Duration(minutes) * time.Minute)
	r := *bm.Reminder
	r.NextReminder = &until

	if _, err := s.store.ReplaceReminder(ctx, id, &r); err != nil {
		return err
	}

	s.logger.Info("reminder snoozed",
		logger.Int64("bookmark_id", id),
		logger.Int("minutes", minutes),
		logger.Time("next_reminder", until))
	return nil
}
