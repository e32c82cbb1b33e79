// Package schedule decides whether a postcard may be placed on a calendar day.
package schedule

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/postplanner/internal/client/models"
)

// MaxPerDay is how many postcards a single day can hold.
const MaxPerDay = 3

var (
	ErrPastDate = errors.New("cannot schedule in the past")
	ErrDayFull  = errors.New("day already has the maximum number of posts")
)

type Verdict int

const (
	OK Verdict = iota
	PastDate
	DayFull
)

func (v Verdict) String() string {
	switch v {
	case OK:
		return "ok"
	case PastDate:
		return "past date"
	case DayFull:
		return "day full"
	}
	return "unknown"
}

// Err maps the verdict to its sentinel error, nil for OK.
func (v Verdict) Err() error {
	switch v {
	case PastDate:
		return ErrPastDate
	case DayFull:
		return ErrDayFull
	}
	return nil
}

// CanPlace checks target against today and against the items already on that
// day. The item with excludingID does not count, so moving a postcard within
// its own day is allowed. Today itself is not in the past.
func CanPlace(items []models.Postcard, target time.Time, excludingID string, today time.Time) Verdict {
	if models.DayBefore(target, today) {
		return PastDate
	}
	if CountOn(items, target, excludingID) >= MaxPerDay {
		return DayFull
	}
	return OK
}

// CountOn counts the items scheduled on day, skipping excludingID.
func CountOn(items []models.Postcard, day time.Time, excludingID string) int {
	n := 0
	for _, it := range items {
		if it.ScheduledDate == nil || (excludingID != "" && it.ID == excludingID) {
			continue
		}
		if models.SameDay(*it.ScheduledDate, day) {
			n++
		}
	}
	return n
}
