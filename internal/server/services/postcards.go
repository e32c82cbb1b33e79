// Package services contains the server-side business logic: the postcard
// store rules and phase generation.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/postplanner/internal/common"
	"github.com/dmitrijs2005/postplanner/internal/server/models"
	"github.com/dmitrijs2005/postplanner/internal/server/repositories/postcards"
	"github.com/dmitrijs2005/postplanner/internal/server/repositories/repomanager"
)

// PostcardService enforces the postcard rules on top of a repository:
//   - content length limits and known templates
//   - states only move forward: draft, approved, scheduled, published
//   - scheduled and published postcards carry a date
//   - a newly set date is not in the past (UTC)
type PostcardService struct {
	repomanager repomanager.RepositoryManager
	now         func() time.Time
	newID       func() string
}

func NewPostcardService(m repomanager.RepositoryManager) *PostcardService {
	return &PostcardService{
		repomanager: m,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       func() string { return uuid.NewString() },
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// dayOf truncates t to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *PostcardService) validate(p *models.Postcard) error {
	if n := utf8.RuneCountInString(p.PrimaryContent); n > models.MaxPrimaryLength {
		return invalid("primary content is %d characters, limit is %d", n, models.MaxPrimaryLength)
	}
	if n := utf8.RuneCountInString(p.SecondaryContent); n > models.MaxSecondaryLength {
		return invalid("secondary content is %d characters, limit is %d", n, models.MaxSecondaryLength)
	}
	if !models.ValidTemplate(p.Template) {
		return invalid("unknown template %q", p.Template)
	}
	if models.StateRank(p.State) < 0 {
		return invalid("unknown state %q", p.State)
	}
	if models.RequiresDate(p.State) && p.ScheduledDate == nil {
		return invalid("state %s requires a scheduled date", p.State)
	}
	return nil
}

func (s *PostcardService) checkNewDate(d *time.Time) error {
	if d != nil && d.Before(dayOf(s.now())) {
		return invalid("scheduled date %s is in the past", d.Format(time.DateOnly))
	}
	return nil
}

// parseID rejects malformed ids as not found; the Postgres column is a UUID.
func parseID(id string) (string, error) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", fmt.Errorf("postcard %q: %w", id, common.ErrNotFound)
	}
	return u.String(), nil
}

func (s *PostcardService) List(ctx context.Context) ([]models.Postcard, error) {
	return s.repomanager.Postcards().List(ctx)
}

func (s *PostcardService) Get(ctx context.Context, id string) (*models.Postcard, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Postcards().Get(ctx, id)
}

// Insert stores a new postcard with a fresh id. An empty state means draft.
func (s *PostcardService) Insert(ctx context.Context, in models.Postcard) (*models.Postcard, error) {
	now := s.now()
	p := in
	p.ID = s.newID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.State == "" {
		p.State = models.StateDraft
	}
	if p.ScheduledDate != nil {
		d := dayOf(*p.ScheduledDate)
		p.ScheduledDate = &d
	}

	if err := s.validate(&p); err != nil {
		return nil, err
	}
	if err := s.checkNewDate(p.ScheduledDate); err != nil {
		return nil, err
	}
	if err := s.repomanager.Postcards().Create(ctx, &p); err != nil {
		return nil, fmt.Errorf("insert postcard: %w", err)
	}
	return &p, nil
}

// Patch applies the set fields of patch atomically and returns the result.
func (s *PostcardService) Patch(ctx context.Context, id string, patch models.PostcardPatch) (*models.Postcard, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var out *models.Postcard
	err = s.repomanager.InTx(ctx, func(ctx context.Context, repo postcards.Repository) error {
		cur, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		next := *cur
		if patch.PrimaryContent != nil {
			next.PrimaryContent = *patch.PrimaryContent
		}
		if patch.SecondaryContent != nil {
			next.SecondaryContent = *patch.SecondaryContent
		}
		if patch.Template != nil {
			next.Template = *patch.Template
		}
		if patch.State != nil {
			next.State = *patch.State
		}
		if patch.ScheduledDate != nil {
			d := dayOf(*patch.ScheduledDate)
			next.ScheduledDate = &d
			if cur.ScheduledDate == nil || !cur.ScheduledDate.Equal(d) {
				if err := s.checkNewDate(&d); err != nil {
					return err
				}
			}
		}

		if err := s.validate(&next); err != nil {
			return err
		}
		if models.StateRank(next.State) < models.StateRank(cur.State) {
			return invalid("cannot move postcard from %s back to %s", cur.State, next.State)
		}

		next.UpdatedAt = s.now()
		if err := repo.Update(ctx, &next); err != nil {
			return err
		}
		out = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostcardService) Remove(ctx context.Context, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repomanager.Postcards().Delete(ctx, id)
}
