package notify

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkoval/markd/internal/domain"
	"github.com/mkoval/markd/internal/logger"
)

type recordSink struct {
	title string
	body  string
	event string
	bm    *domain.Bookmark
	err   error
	calls int
}

func (r *recordSink) Show(_ context.Context, title, body string) error {
	r.calls++
	r.title = title
	r.body = body
	return r.err
}

func (r *recordSink) Emit(_ context.Context, event string, bm *domain.Bookmark) error {
	r.calls++
	r.event = event
	r.bm = bm
	return r.err
}

func TestNotifyInvokesBothSinks(t *testing.T) {
	user := &recordSink{}
	events := &recordSink{}
	n := New(user, events, logger.Nop())

	bm := &domain.Bookmark{ID: 7, Title: "Daily Deals"}
	n.Notify(context.Background(), bm)

	if user.title != NotificationTitle {
		t.Errorf("title = %q, want %q", user.title, NotificationTitle)
	}
	if user.body != "Time to check back on Daily Deals" {
		t.Errorf("body = %q", user.body)
	}
	if events.event != EventReminderTriggered {
		t.Errorf("event = %q, want %q", events.event, EventReminderTriggered)
	}
	if events.bm != bm {
		t.Error("event sink should receive the full bookmark record")
	}
}

func TestNotifySinkFailuresAreIsolated(t *testing.T) {
	user := &recordSink{err: errors.New("notification daemon down")}
	events := &recordSink{}
	n := New(user, events, logger.Nop())

	n.Notify(context.Background(), &domain.Bookmark{ID: 1, Title: "a"})

	if events.calls != 1 {
		t.Error("event sink must still run when the user sink fails")
	}

	// And the other way around.
	user2 := &recordSink{}
	events2 := &recordSink{err: errors.New("redis gone")}
	n2 := New(user2, events2, logger.Nop())

	n2.Notify(context.Background(), &domain.Bookmark{ID: 2, Title: "b"})

	if user2.calls != 1 {
		t.Error("user sink must still run when the event sink fails")
	}
}

func TestNotifyNilSinksSkipped(t *testing.T) {
	n := New(nil, nil, logger.Nop())
	// Must not panic.
	n.Notify(context.Background(), &domain.Bookmark{ID: 3, Title: "c"})
}

func TestWebhookSink(t *testing.T) {
	var gotTitle, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTitle = r.Header.Get("Title")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
	}))
	defer srv.Close()

	sink := NewWebhookSink(srv.URL)
	if err := sink.Show(context.Background(), "Check-in reminder", "Time to check back on x"); err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if gotTitle != "Check-in reminder" {
		t.Errorf("Title header = %q", gotTitle)
	}
	if gotBody != "Time to check back on x" {
		t.Errorf("body = %q", gotBody)
	}
}

func TestWebhookSinkErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sink := NewWebhookSink(srv.URL)
	if err := sink.Show(context.Background(), "t", "b"); err == nil {
		t.Error("non-2xx response should be an error")
	}
}
