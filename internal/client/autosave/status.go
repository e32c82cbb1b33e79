package autosave

import (
	"fmt"
	"time"
)

type Status int

const (
	Clean Status = iota
	Dirty
	Saving
)

func (s Status) String() string {
	switch s {
	case Clean:
		return "clean"
	case Dirty:
		return "dirty"
	case Saving:
		return "saving"
	}
	return "unknown"
}

const (
	TextSaving     = "Saving…"
	TextAllSaved   = "All changes saved"
	TextUnsaved    = "Unsaved changes"
	TextNotSaved   = "Not saved yet"
	freshSaveLimit = 5 * time.Second
)

// statusText renders the indicator shown next to an editor.
func statusText(status Status, lastSaved, now time.Time) string {
	if status == Saving {
		return TextSaving
	}
	if !lastSaved.IsZero() {
		age := now.Sub(lastSaved)
		if status == Clean && age < freshSaveLimit {
			return TextAllSaved
		}
		return "Saved " + ago(age)
	}
	if status == Dirty {
		return TextUnsaved
	}
	return TextNotSaved
}

func ago(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return plural(int(d/time.Second), "second") + " ago"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute") + " ago"
	default:
		return plural(int(d/time.Hour), "hour") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
