package models

import (
	"fmt"
	"time"
)

// DateLayout is the wire and display format of scheduled dates.
const DateLayout = "2006-01-02"

// Scheduled dates are calendar days. They are compared by their year, month
// and day in their own location, never as instants.

// ParseDate parses "YYYY-MM-DD" (or an RFC 3339 timestamp, keeping only its
// calendar day) into midnight UTC of that day.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return DayOf(t), nil
}

// DayOf returns midnight UTC of t's calendar day.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders the calendar day of t, or "" for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return DayOf(*t).Format(DateLayout)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b))
}

// DayBefore reports whether a's calendar day is strictly before b's.
func DayBefore(a, b time.Time) bool {
	return DayOf(a).Before(DayOf(b))
}
