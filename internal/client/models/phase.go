package models

import (
	"errors"
	"fmt"
	"strings"
)

// A phase is a run of days for which the generation service writes a batch
// of postcards at a fixed cadence.

const (
	TemplatePreferenceMixed = "mixed"

	MaxPostsPerDay  = 10
	MaxDurationDays = 90
)

var ErrInvalidPhase = errors.New("invalid phase")

// PhaseSpec is a bulk generation request.
type PhaseSpec struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	PostsPerDay        int    `json:"postsPerDay"`
	DurationDays       int    `json:"durationDays"`
	TemplatePreference string `json:"templatePreference"`
}

// Expected is the number of postcards the phase asks for.
func (p PhaseSpec) Expected() int {
	return p.PostsPerDay * p.DurationDays
}

func (p PhaseSpec) Validate() error {
	switch {
	case strings.TrimSpace(p.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidPhase)
	case p.PostsPerDay < 1 || p.PostsPerDay > MaxPostsPerDay:
		return fmt.Errorf("%w: posts per day must be between 1 and %d", ErrInvalidPhase, MaxPostsPerDay)
	case p.DurationDays < 1 || p.DurationDays > MaxDurationDays:
		return fmt.Errorf("%w: duration must be between 1 and %d days", ErrInvalidPhase, MaxDurationDays)
	}
	switch p.TemplatePreference {
	case "", TemplatePreferenceMixed, string(TemplateStory), string(TemplateTool):
		return nil
	}
	return fmt.Errorf("%w: unknown template preference %q", ErrInvalidPhase, p.TemplatePreference)
}

// GenerateResult accounts for a bulk generation: how many postcards were
// asked for, how many the service produced, how many landed in the local
// collection, and how many are missing.
type GenerateResult struct {
	Requested int
	Generated int
	Inserted  int
	Failed    int
	Note      string
	Items     []Postcard
}

// Partial reports whether fewer postcards arrived than were requested.
func (r GenerateResult) Partial() bool {
	return r.Failed > 0
}
