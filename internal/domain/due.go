package domain

import "time"

// graceWindow bounds how long after its scheduled time of day a
// reminder stays eligible to fire. It is aligned with the scheduler's
// default poll period.
const graceWindow = time.Minute

// Due reports whether a reminder should fire at now. It is pure: the
// clock is a parameter, and the verdict depends only on (now, r).
//
// A misconfigured time of day is treated as "not due" rather than an
// error so evaluation stays total over corrupt historical data.
// NextReminder is never consulted.
func Due(now time.Time, r *Reminder) bool {
	if r == nil || !r.Enabled {
		return false
	}

	scheduled, err := time.Parse("15:04", r.Time)
	if err != nil {
		return false
	}

	schedOfDay := time.Duration(scheduled.Hour())*time.Hour +
		time.Duration(scheduled.Minute())*time.Minute
	nowOfDay := time.Duration(now.Hour())*time.Hour +
		time.Duration(now.Minute())*time.Minute +
		time.Duration(now.Second())*time.Second

	// No wraparound to a previous day, and nothing outside the window.
	if nowOfDay < schedOfDay {
		return false
	}
	if nowOfDay-schedOfDay > graceWindow {
		return false
	}

	// Same-day suppression: once stamped for today's local date, a
	// reminder cannot fire again regardless of frequency.
	if r.LastReminded != nil && sameLocalDay(*r.LastReminded, now) {
		return false
	}

	switch r.Frequency.Kind {
	case FrequencyDaily:
		return true
	case FrequencyWeekly:
		weekday := int(now.Weekday())
		for _, d := range r.Days {
			if d == weekday {
				return true
			}
		}
		return false
	case FrequencyCustom:
		if r.LastReminded == nil {
			return true
		}
		elapsedDays := int(now.Sub(*r.LastReminded) / (24 * time.Hour))
		return elapsedDays >= r.Frequency.IntervalDays
	case FrequencyOnce:
		// Fires at most once; the completion mutator stamping
		// LastReminded is what retires it.
		return r.LastReminded == nil
	default:
		return false
	}
}

// sameLocalDay compares calendar dates in now's location.
func sameLocalDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
