package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mkoval/markd/internal/domain"
	"github.com/mkoval/markd/internal/logger"
)

type fakeStore struct {
	bookmark *domain.Bookmark
	replaced *domain.Reminder
	getErr   error
}

func (f *fakeStore) Get(_ context.Context, id int64) (*domain.Bookmark, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.bookmark, nil
}

func (f *fakeStore) ReplaceReminder(_ context.Context, id int64, r *domain.Reminder) (*domain.Bookmark, error) {
	f.replaced = r
	bm := *f.bookmark
	bm.Reminder = r
	return &bm, nil
}

func fixedNow() time.Time {
	return time.Date(2024, 6, 12, 9, 0, 30, 0, time.UTC)
}

func newService(store Store) *Service {
	s := New(store, logger.Nop())
	s.now = fixedNow
	return s
}

func TestCompleteStampsLastReminded(t *testing.T) {
	store := &fakeStore{bookmark: &domain.Bookmark{
		ID: 1,
		Reminder: &domain.Reminder{
			Enabled:   true,
			Frequency: domain.Frequency{Kind: domain.FrequencyDaily},
			Time:      "09:00",
		},
	}}
	svc := newService(store)

	if err := svc.Complete(context.Background(), 1); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if store.replaced == nil || store.replaced.LastReminded == nil {
		t.Fatal("Complete did not persist last_reminded")
	}
	if !store.replaced.LastReminded.Equal(fixedNow()) {
		t.Errorf("last_reminded = %v, want %v", store.replaced.LastReminded, fixedNow())
	}
	if store.replaced.NextReminder != nil {
		t.Error("Complete must not touch next_reminder")
	}
	// The original reminder sub-fields survive the replace.
	if store.replaced.Time != "09:00" || !store.replaced.Enabled {
		t.Errorf("Complete altered unrelated reminder fields: %+v", store.replaced)
	}
}

func TestSnoozeStampsNextReminderOnly(t *testing.T) {
	earlier := fixedNow().AddDate(0, 0, -1)
	store := &fakeStore{bookmark: &domain.Bookmark{
		ID: 2,
		Reminder: &domain.Reminder{
			Enabled:      true,
			Frequency:    domain.Frequency{Kind: domain.FrequencyDaily},
			Time:         "09:00",
			LastReminded: &earlier,
		},
	}}
	svc := newService(store)

	if err := svc.Snooze(context.Background(), 2, 45); err != nil {
		t.Fatalf("Snooze failed: %v", err)
	}

	if store.replaced == nil || store.replaced.NextReminder == nil {
		t.Fatal("Snooze did not persist next_reminder")
	}
	want := fixedNow().Add(45 * time.Minute)
	if !store.replaced.NextReminder.Equal(want) {
		t.Errorf("next_reminder = %v, want %v", store.replaced.NextReminder, want)
	}
	if store.replaced.LastReminded == nil || !store.replaced.LastReminded.Equal(earlier) {
		t.Error("Snooze must not alter last_reminded")
	}

	// Known gap, preserved: the persisted next_reminder has no effect
	// on due evaluation.
	if got := domain.Due(fixedNow().AddDate(0, 0, 1), store.replaced); !got {
		t.Error("due output changed because of next_reminder")
	}
}

func TestMutatorsNoopWithoutReminder(t *testing.T) {
	store := &fakeStore{bookmark: &domain.Bookmark{ID: 3}}
	svc := newService(store)

	if err := svc.Complete(context.Background(), 3); err != nil {
		t.Errorf("Complete on reminder-less bookmark should succeed, got %v", err)
	}
	if err := svc.Snooze(context.Background(), 3, 10); err != nil {
		t.Errorf("Snooze on reminder-less bookmark should succeed, got %v", err)
	}
	if store.replaced != nil {
		t.Error("no write should happen for a bookmark without a reminder")
	}
}

func TestMutatorsPropagateNotFound(t *testing.T) {
	wantErr := errors.New("bookmark not found")
	store := &fakeStore{getErr: wantErr}
	svc := newService(store)

	if err := svc.Complete(context.Background(), 9); !errors.Is(err, wantErr) {
		t.Errorf("Complete error = %v, want %v", err, wantErr)
	}
	if err := svc.Snooze(context.Background(), 9, 5); !errors.Is(err, wantErr) {
		t.Errorf("Snooze error = %v, want %v", err, wantErr)
	}
}
