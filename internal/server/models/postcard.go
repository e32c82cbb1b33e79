// Package models holds the server-side postcard records.
package models

import "time"

const (
	StateDraft     = "draft"
	StateApproved  = "approved"
	StateScheduled = "scheduled"
	StatePublished = "published"

	TemplateNone  = ""
	TemplateStory = "story"
	TemplateTool  = "tool"
)

const (
	MaxPrimaryLength   = 280
	MaxSecondaryLength = 3000
)

// Postcard is one stored row. ScheduledDate is a calendar day at UTC
// midnight.
type Postcard struct {
	ID               string
	PrimaryContent   string
	SecondaryContent string
	Template         string
	State            string
	ScheduledDate    *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PostcardPatch changes the non-nil fields only.
type PostcardPatch struct {
	PrimaryContent   *string
	SecondaryContent *string
	Template         *string
	State            *string
	ScheduledDate    *time.Time
}

// StateRank orders states along the workflow; unknown states rank -1.
func StateRank(s string) int {
	switch s {
	case StateDraft:
		return 0
	case StateApproved:
		return 1
	case StateScheduled:
		return 2
	case StatePublished:
		return 3
	}
	return -1
}

func ValidTemplate(t string) bool {
	return t == TemplateNone || t == TemplateStory || t == TemplateTool
}

// RequiresDate reports whether a postcard in state s must carry a date.
func RequiresDate(s string) bool {
	return s == StateScheduled || s == StatePublished
}
