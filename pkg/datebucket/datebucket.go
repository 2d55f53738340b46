// Package datebucket classifies timestamps relative to a reference instant.
// All calendar comparisons happen in the reference instant's location so a
// single fixed timezone governs what "today" means.
package datebucket

import "time"

// Bucket is the classification of a timestamp relative to "now".
type Bucket string

const (
	// Invalid marks a timestamp that could not be resolved (zero value).
	// Callers must branch on it explicitly; it never folds into Past or
	// Future.
	Invalid  Bucket = "invalid"
	Today    Bucket = "today"
	Tomorrow Bucket = "tomorrow"
	Past     Bucket = "past"
	Future   Bucket = "future"
)

// Classify buckets target relative to now. Today and Tomorrow are calendar
// day matches, not 24-hour windows.
func Classify(now, target time.Time) Bucket {
	if target.IsZero() {
		return Invalid
	}
	switch {
	case SameDay(now, target):
		return Today
	case SameDay(now.AddDate(0, 0, 1), target):
		return Tomorrow
	case target.Before(now):
		return Past
	default:
		return Future
	}
}

// SameDay reports whether a and b fall on the same calendar day in a's
// location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Within reports whether t lies in [start, end], inclusive of both bounds.
// A zero t is never within any interval.
func Within(t, start, end time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(start) && !t.After(end)
}

// Weekday returns the full English weekday name of t, e.g. "Monday".
func Weekday(t time.Time) string {
	return t.Weekday().String()
}
