package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mkoval/markd/internal/domain"
	"github.com/mkoval/markd/internal/logger"
)

type fakeStore struct {
	candidates []*domain.Bookmark
	err        error
	calls      chan struct{}
}

func (f *fakeStore) Candidates(_ context.Context) ([]*domain.Bookmark, error) {
	if f.calls != nil {
		f.calls <- struct{}{}
	}
	return f.candidates, f.err
}

type fakeNotifier struct {
	notified []int64
}

func (f *fakeNotifier) Notify(_ context.Context, bm *domain.Bookmark) {
	f.notified = append(f.notified, bm.ID)
}

func reminderAt(clock string) *domain.Reminder {
	return &domain.Reminder{
		Enabled:   true,
		Frequency: domain.Frequency{Kind: domain.FrequencyDaily},
		Time:      clock,
	}
}

func TestCheckNotifiesOnlyDueBookmarks(t *testing.T) {
	now := time.Date(2024, 6, 12, 9, 0, 30, 0, time.UTC)

	store := &fakeStore{candidates: []*domain.Bookmark{
		{ID: 1, Title: "due", Reminder: reminderAt("09:00")},
		{ID: 2, Title: "later", Reminder: reminderAt("15:00")},
		{ID: 3, Title: "disabled", Reminder: &domain.Reminder{
			Enabled:   false,
			Frequency: domain.Frequency{Kind: domain.FrequencyDaily},
			Time:      "09:00",
		}},
		// Candidate whose reminder payload degraded to nil on read.
		{ID: 4, Title: "corrupt"},
	}}
	notifier := &fakeNotifier{}

	c := NewChecker(store, notifier, logger.Nop(), time.Minute, nil)
	c.now = func() time.Time { return now }

	if err := c.Check(context.Background()); err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if len(notifier.notified) != 1 || notifier.notified[0] != 1 {
		t.Errorf("notified = %v, want [1]", notifier.notified)
	}
}

func TestCheckOneBadCandidateDoesNotAbortTheRest(t *testing.T) {
	now := time.Date(2024, 6, 12, 9, 0, 30, 0, time.UTC)

	store := &fakeStore{candidates: []*domain.Bookmark{
		{ID: 1, Title: "malformed", Reminder: reminderAt("nonsense")},
		{ID: 2, Title: "fine", Reminder: reminderAt("09:00")},
	}}
	notifier := &fakeNotifier{}

	c := NewChecker(store, notifier, logger.Nop(), time.Minute, nil)
	c.now = func() time.Time { return now }

	if err := c.Check(context.Background()); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(notifier.notified) != 1 || notifier.notified[0] != 2 {
		t.Errorf("notified = %v, want [2]", notifier.notified)
	}
}

func TestCheckPropagatesStorageError(t *testing.T) {
	wantErr := errors.New("database locked")
	store := &fakeStore{err: wantErr}

	c := NewChecker(store, &fakeNotifier{}, logger.Nop(), time.Minute, nil)

	if err := c.Check(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("Check error = %v, want %v", err, wantErr)
	}
}

func TestCheckerManualTriggerAndStop(t *testing.T) {
	store := &fakeStore{calls: make(chan struct{}, 16)}
	trigger := make(chan struct{}, 1)

	c := NewChecker(store, &fakeNotifier{}, logger.Nop(), time.Hour, trigger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Initial check runs synchronously on Start.
	select {
	case <-store.calls:
	default:
		t.Fatal("Start should run one check immediately")
	}

	// Manual trigger forces a check without waiting for the ticker.
	trigger <- struct{}{}
	select {
	case <-store.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("manual trigger did not cause a check")
	}

	c.Stop()
	time.Sleep(50 * time.Millisecond) // let the loop goroutine exit

	// After Stop no further triggers are serviced.
	trigger <- struct{}{}
	select {
	case <-store.calls:
		t.Error("checker serviced a trigger after Stop")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCheckerStopsOnContextCancel(t *testing.T) {
	store := &fakeStore{calls: make(chan struct{}, 16)}
	trigger := make(chan struct{}, 1)

	c := NewChecker(store, &fakeNotifier{}, logger.Nop(), time.Hour, trigger)

	ctx, cancel := context.WithCancel(context.Background())
	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	<-store.calls // initial check

	cancel()
	time.Sleep(50 * time.Millisecond) // let the loop goroutine exit

	trigger <- struct{}{}
	select {
	case <-store.calls:
		t.Error("checker serviced a trigger after context cancellation")
	case <-time.After(50 * time.Millisecond):
	}
}
