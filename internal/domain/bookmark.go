package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Bookmark is a saved URL with optional check-back reminder.
// Identity is assigned by the store on creation.
type Bookmark struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Category    string     `json:"category,omitempty"`
	Tags        []string   `json:"tags"`
	IconURL     string     `json:"icon_url,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Reminder    *Reminder  `json:"reminder,omitempty"`
	VisitCount  int64      `json:"visit_count"`
	LastVisited *time.Time `json:"last_visited,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Reminder is an embedded value object on a bookmark. It is created and
// replaced wholesale with its owning bookmark; only LastReminded and
// NextReminder are ever mutated on their own (by the reminder mutators).
// A disabled reminder is inert regardless of its other fields.
type Reminder struct {
	Enabled   bool      `json:"enabled"`
	Frequency Frequency `json:"frequency"`
	// Time is the scheduled time of day, 24-hour "HH:MM".
	Time string `json:"time"`
	// Days are weekday numbers 0-6 (0 = Sunday). Only meaningful for
	// weekly reminders.
	Days []int `json:"days"`
	// LastReminded is stamped (UTC) by the completion mutator. It is the
	// dedup key for same-day suppression.
	LastReminded *time.Time `json:"last_reminded,omitempty"`
	// NextReminder is written by snooze. Due evaluation does not read
	// it; snoozing currently has no effect on when a reminder fires.
	NextReminder *time.Time `json:"next_reminder,omitempty"`
}

// FrequencyKind enumerates the closed set of reminder frequencies.
type FrequencyKind string

const (
	FrequencyDaily  FrequencyKind = "daily"
	FrequencyWeekly FrequencyKind = "weekly"
	FrequencyCustom FrequencyKind = "custom"
	FrequencyOnce   FrequencyKind = "once"
)

// Frequency is a tagged union: daily, weekly, custom{interval_days} or
// once. The JSON shape is {"type":"daily"} with interval_days present
// only for custom.
type Frequency struct {
	Kind         FrequencyKind
	IntervalDays int
}

type frequencyJSON struct {
	Type         FrequencyKind `json:"type"`
	IntervalDays int           `json:"interval_days,omitempty"`
}

func (f Frequency) MarshalJSON() ([]byte, error) {
	out := frequencyJSON{Type: f.Kind}
	if f.Kind == FrequencyCustom {
		out.IntervalDays = f.IntervalDays
	}
	return json.Marshal(out)
}

func (f *Frequency) UnmarshalJSON(data []byte) error {
	var in frequencyJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	f.Kind = in.Type
	f.IntervalDays = in.IntervalDays
	return nil
}

// Validate enforces the reminder invariants: a parsable 24-hour HH:MM
// time, weekday numbers in [0,6], a known frequency kind and
// interval_days >= 1 for custom frequencies.
func (r *Reminder) Validate() error {
	if _, err := time.Parse("15:04", r.Time); err != nil {
		return fmt.Errorf("invalid reminder time %q: want 24-hour HH:MM", r.Time)
	}
	for _, d := range r.Days {
		if d < 0 || d > 6 {
			return fmt.Errorf("invalid reminder day %d: want 0-6 (0 = Sunday)", d)
		}
	}
	switch r.Frequency.Kind {
	case FrequencyDaily, FrequencyWeekly, FrequencyOnce:
	case FrequencyCustom:
		if r.Frequency.IntervalDays < 1 {
			return fmt.Errorf("invalid interval_days %d: want >= 1", r.Frequency.IntervalDays)
		}
	default:
		return fmt.Errorf("unknown reminder frequency %q", r.Frequency.Kind)
	}
	return nil
}

// CreateInput carries the caller-settable fields for a new bookmark.
type CreateInput struct {
	Title    string    `json:"title" validate:"required"`
	URL      string    `json:"url" validate:"required,url"`
	Category string    `json:"category,omitempty"`
	Tags     []string  `json:"tags"`
	Notes    string    `json:"notes,omitempty"`
	Reminder *Reminder `json:"reminder,omitempty"`
}

// UpdateInput replaces fields on an existing bookmark. Nil string
// pointers leave the stored value alone; Tags and Reminder replace
// wholesale, with a nil Reminder clearing it.
type UpdateInput struct {
	Title    *string   `json:"title,omitempty"`
	URL      *string   `json:"url,omitempty" validate:"omitempty,url"`
	Category *string   `json:"category,omitempty"`
	Tags     []string  `json:"tags,omitempty"`
	Notes    *string   `json:"notes,omitempty"`
	Reminder *Reminder `json:"reminder,omitempty"`
}
