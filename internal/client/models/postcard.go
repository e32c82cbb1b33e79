// Package models defines the postcard types the planner client edits, stores
// and schedules.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Template classifies a postcard layout. The zero value means "no template".
type Template string

const (
	TemplateNone  Template = ""
	TemplateStory Template = "story"
	TemplateTool  Template = "tool"
)

// State is the forward-only publishing lifecycle of a postcard.
type State string

const (
	StateDraft     State = "draft"
	StateApproved  State = "approved"
	StateScheduled State = "scheduled"
	StatePublished State = "published"
)

const (
	MaxPrimaryLength   = 280
	MaxSecondaryLength = 3000
)

var (
	ErrContentTooLong  = errors.New("content too long")
	ErrInvalidTemplate = errors.New("invalid template")
	ErrInvalidState    = errors.New("invalid state")
	ErrEmptyPatch      = errors.New("empty patch")
)

// ParseTemplate accepts "story", "tool", and "" or "none" for no template.
func ParseTemplate(s string) (Template, error) {
	switch t := Template(strings.ToLower(strings.TrimSpace(s))); t {
	case TemplateStory, TemplateTool, TemplateNone:
		return t, nil
	case "none":
		return TemplateNone, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTemplate, s)
	}
}

func (t Template) Valid() bool {
	return t == TemplateNone || t == TemplateStory || t == TemplateTool
}

func (t Template) String() string {
	if t == TemplateNone {
		return "none"
	}
	return string(t)
}

func ParseState(s string) (State, error) {
	st := State(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidState, s)
	}
	return st, nil
}

func (s State) Valid() bool {
	return s.rank() > 0
}

// RequiresDate reports whether a postcard in this state must carry a date.
func (s State) RequiresDate() bool {
	return s == StateScheduled || s == StatePublished
}

// Before reports whether s comes strictly earlier in the lifecycle than o.
func (s State) Before(o State) bool {
	return s.rank() < o.rank()
}

func (s State) rank() int {
	switch s {
	case StateDraft:
		return 1
	case StateApproved:
		return 2
	case StateScheduled:
		return 3
	case StatePublished:
		return 4
	}
	return 0
}

// Postcard is a short-form post as confirmed by the remote store.
// ID is empty until the postcard has been persisted remotely.
type Postcard struct {
	ID               string     `json:"id,omitempty"`
	PrimaryContent   string     `json:"primaryContent"`
	SecondaryContent string     `json:"secondaryContent"`
	Template         Template   `json:"template,omitempty"`
	State            State      `json:"state"`
	ScheduledDate    *time.Time `json:"scheduledDate,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Clone returns a copy that shares no pointers with p.
func (p Postcard) Clone() Postcard {
	if p.ScheduledDate != nil {
		d := *p.ScheduledDate
		p.ScheduledDate = &d
	}
	return p
}

// Title is the first line of the primary content, shortened for listings.
func (p Postcard) Title() string {
	line, _, _ := strings.Cut(p.PrimaryContent, "\n")
	if utf8.RuneCountInString(line) > 48 {
		return string([]rune(line)[:47]) + "…"
	}
	return line
}

// Fields are the caller-supplied values of a postcard that does not exist yet.
type Fields struct {
	PrimaryContent   string     `json:"primaryContent"`
	SecondaryContent string     `json:"secondaryContent"`
	Template         Template   `json:"template,omitempty"`
	State            State      `json:"state,omitempty"`
	ScheduledDate    *time.Time `json:"scheduledDate,omitempty"`
}

// Validate checks content limits, template and state. An empty state is
// allowed and means draft.
func (f Fields) Validate() error {
	if err := checkContent(&f.PrimaryContent, &f.SecondaryContent); err != nil {
		return err
	}
	if !f.Template.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTemplate, string(f.Template))
	}
	if f.State != "" && !f.State.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidState, string(f.State))
	}
	return nil
}

// Patch is a partial update. Nil fields are left untouched; a pointer to
// TemplateNone clears the template.
type Patch struct {
	PrimaryContent   *string    `json:"primaryContent,omitempty"`
	SecondaryContent *string    `json:"secondaryContent,omitempty"`
	Template         *Template  `json:"template,omitempty"`
	State            *State     `json:"state,omitempty"`
	ScheduledDate    *time.Time `json:"scheduledDate,omitempty"`
}

func (p Patch) IsEmpty() bool {
	return p.PrimaryContent == nil && p.SecondaryContent == nil && p.Template == nil &&
		p.State == nil && p.ScheduledDate == nil
}

func (p Patch) Validate() error {
	if p.IsEmpty() {
		return ErrEmptyPatch
	}
	if err := checkContent(p.PrimaryContent, p.SecondaryContent); err != nil {
		return err
	}
	if p.Template != nil && !p.Template.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTemplate, string(*p.Template))
	}
	if p.State != nil && !p.State.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidState, string(*p.State))
	}
	return nil
}

// Apply returns a copy of c with the patch applied.
func (p Patch) Apply(c Postcard) Postcard {
	c = c.Clone()
	if p.PrimaryContent != nil {
		c.PrimaryContent = *p.PrimaryContent
	}
	if p.SecondaryContent != nil {
		c.SecondaryContent = *p.SecondaryContent
	}
	if p.Template != nil {
		c.Template = *p.Template
	}
	if p.State != nil {
		c.State = *p.State
	}
	if p.ScheduledDate != nil {
		d := *p.ScheduledDate
		c.ScheduledDate = &d
	}
	return c
}

func checkContent(primary, secondary *string) error {
	if primary != nil && utf8.RuneCountInString(*primary) > MaxPrimaryLength {
		return fmt.Errorf("%w: primary content exceeds %d characters", ErrContentTooLong, MaxPrimaryLength)
	}
	if secondary != nil && utf8.RuneCountInString(*secondary) > MaxSecondaryLength {
		return fmt.Errorf("%w: secondary content exceeds %d characters", ErrContentTooLong, MaxSecondaryLength)
	}
	return nil
}
