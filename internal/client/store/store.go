// Package store owns the in-memory postcard collection and applies
// mutations to it optimistically, reconciling with the remote store when a
// call fails.
//
// Items are kept newest first. Mutations on different postcards run
// concurrently; mutations on the same postcard are serialized. Remote calls
// never happen while the collection lock is held.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/postplanner/internal/client/client"
	"github.com/dmitrijs2005/postplanner/internal/client/models"
	"github.com/dmitrijs2005/postplanner/internal/client/schedule"
	"github.com/dmitrijs2005/postplanner/internal/clock"
	"github.com/dmitrijs2005/postplanner/internal/logging"
)

var ErrNotFound = errors.New("postcard not in collection")

type Store struct {
	client    client.Client
	generator client.Generator
	clock     clock.Clock
	log       logging.Logger
	ids       *keyedMutex
	days      *keyedMutex

	mu      sync.RWMutex
	items   []models.Postcard
	loading int
	lastErr error
}

func New(c client.Client, g client.Generator, clk clock.Clock, log logging.Logger) *Store {
	if clk == nil {
		clk = clock.Real()
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Store{
		client:    c,
		generator: g,
		clock:     clk,
		log:       log.With("component", "store"),
		ids:       newKeyedMutex(),
		days:      newKeyedMutex(),
	}
}

// Items returns a copy of the collection.
func (s *Store) Items() []models.Postcard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.items)
}

func (s *Store) Find(id string) (models.Postcard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.items[i].Clone(), true
	}
	return models.Postcard{}, false
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading > 0
}

// LastError is the failure of the most recent operation, nil if it
// succeeded.
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) Load(ctx context.Context) error {
	s.begin()
	defer s.end()

	items, err := s.client.FetchAll(ctx)
	if err != nil {
		return s.fail(fmt.Errorf("load postcards: %w", err))
	}

	s.mu.Lock()
	s.items = cloneAll(items)
	s.mu.Unlock()
	return nil
}

// Create inserts a new postcard remotely and prepends it once confirmed.
func (s *Store) Create(ctx context.Context, fields models.Fields) (*models.Postcard, error) {
	s.begin()
	defer s.end()

	if err := fields.Validate(); err != nil {
		return nil, s.fail(err)
	}

	created, err := s.client.Insert(ctx, fields)
	if err != nil {
		return nil, s.fail(fmt.Errorf("create postcard: %w", err))
	}

	s.mu.Lock()
	s.items = append([]models.Postcard{created.Clone()}, s.items...)
	s.mu.Unlock()

	return created, nil
}

// Update applies patch locally at once, then remotely. On remote failure the
// collection is refetched; if that fails too the item goes back to how it
// was before the update.
func (s *Store) Update(ctx context.Context, id string, patch models.Patch) (*models.Postcard, error) {
	s.begin()
	defer s.end()

	if err := patch.Validate(); err != nil {
		return nil, s.fail(err)
	}

	unlock := s.ids.lock(id)
	defer unlock()

	return s.update(ctx, id, patch)
}

func (s *Store) update(ctx context.Context, id string, patch models.Patch) (*models.Postcard, error) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, s.fail(fmt.Errorf("update %s: %w", id, ErrNotFound))
	}
	before := s.items[i].Clone()
	s.items[i] = patch.Apply(before)
	s.mu.Unlock()

	updated, err := s.client.Patch(ctx, id, patch)
	if err != nil {
		s.rollbackUpdate(ctx, before)
		return nil, s.fail(fmt.Errorf("update %s: %w", id, err))
	}

	s.replace(*updated)
	return updated, nil
}

func (s *Store) rollbackUpdate(ctx context.Context, before models.Postcard) {
	items, err := s.client.FetchAll(ctx)
	if err == nil {
		s.mu.Lock()
		s.items = cloneAll(items)
		s.mu.Unlock()
		return
	}

	s.log.Warn(ctx, "refetch after failed update", "id", before.ID, "error", err)
	s.replace(before)
}

// Delete removes the postcard at once and puts it back in its old position
// if the remote call fails.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.begin()
	defer s.end()

	unlock := s.ids.lock(id)
	defer unlock()

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return s.fail(fmt.Errorf("delete %s: %w", id, ErrNotFound))
	}
	removed := s.items[i].Clone()
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	s.mu.Unlock()

	if err := s.client.Remove(ctx, id); err != nil {
		s.mu.Lock()
		at := min(i, len(s.items))
		s.items = append(s.items[:at:at], append([]models.Postcard{removed}, s.items[at:]...)...)
		s.mu.Unlock()
		return s.fail(fmt.Errorf("delete %s: %w", id, err))
	}
	return nil
}

func (s *Store) TransitionState(ctx context.Context, id string, state models.State) (*models.Postcard, error) {
	return s.Update(ctx, id, models.Patch{State: &state})
}

// Reschedule moves a postcard to date and marks it scheduled. Past dates and
// full days are rejected without a remote call. Days are UTC calendar days,
// the same basis the server uses.
func (s *Store) Reschedule(ctx context.Context, id string, date time.Time) (*models.Postcard, error) {
	s.begin()
	defer s.end()

	unlock := s.ids.lock(id)
	defer unlock()

	// Held until the patch settles so two ids cannot both take the last slot.
	target := models.DayOf(date)
	unlockDay := s.days.lock(models.FormatDate(&target))
	defer unlockDay()

	s.mu.RLock()
	found := s.indexLocked(id) >= 0
	verdict := schedule.CanPlace(s.items, date, id, s.today())
	s.mu.RUnlock()

	if !found {
		return nil, s.fail(fmt.Errorf("reschedule %s: %w", id, ErrNotFound))
	}
	if err := verdict.Err(); err != nil {
		return nil, s.fail(fmt.Errorf("reschedule %s to %s: %w", id, models.FormatDate(&date), err))
	}

	state := models.StateScheduled
	return s.update(ctx, id, models.Patch{ScheduledDate: &target, State: &state})
}

func (s *Store) today() time.Time {
	return s.clock.Now().UTC()
}

// BulkGenerate asks the generator for a phase and prepends whatever it
// returns, in the order returned. Nothing is inserted optimistically.
func (s *Store) BulkGenerate(ctx context.Context, phase models.PhaseSpec) (*models.GenerateResult, error) {
	s.begin()
	defer s.end()

	if err := phase.Validate(); err != nil {
		return nil, s.fail(err)
	}
	if s.generator == nil {
		return nil, s.fail(errors.New("generation is not configured"))
	}

	res, err := s.generator.GeneratePhase(ctx, phase)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	fresh := make([]models.Postcard, 0, len(res.Items))
	for _, p := range res.Items {
		if p.ID != "" && s.indexLocked(p.ID) >= 0 {
			continue
		}
		fresh = append(fresh, p.Clone())
	}
	s.items = append(fresh, s.items...)
	s.mu.Unlock()

	res.Inserted = len(fresh)
	if res.Generated == 0 {
		res.Generated = len(res.Items)
	}

	s.log.Info(ctx, "phase generated", "title", phase.Title,
		"requested", res.Requested, "generated", res.Generated, "inserted", res.Inserted, "failed", res.Failed)
	return res, nil
}

// Upsert replaces the postcard with the same id or prepends it.
func (s *Store) Upsert(p models.Postcard) {
	if p.ID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(p.ID); i >= 0 {
		s.items[i] = p.Clone()
		return
	}
	s.items = append([]models.Postcard{p.Clone()}, s.items...)
}

// CommitFunc persists an editor buffer: insert when id is empty, otherwise
// patch and re-read. The collection is left to the caller's Upsert.
func (s *Store) CommitFunc() func(ctx context.Context, id string, d models.Draft) (*models.Postcard, error) {
	return func(ctx context.Context, id string, d models.Draft) (*models.Postcard, error) {
		if id == "" {
			fields := d.Fields()
			if err := fields.Validate(); err != nil {
				return nil, err
			}
			return s.client.Insert(ctx, fields)
		}

		patch := d.Patch()
		if err := patch.Validate(); err != nil {
			return nil, err
		}

		unlock := s.ids.lock(id)
		defer unlock()

		if _, err := s.client.Patch(ctx, id, patch); err != nil {
			return nil, err
		}
		return s.client.Get(ctx, id)
	}
}

func (s *Store) replace(p models.Postcard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(p.ID); i >= 0 {
		s.items[i] = p.Clone()
	}
}

func (s *Store) begin() {
	s.mu.Lock()
	s.loading++
	s.lastErr = nil
	s.mu.Unlock()
}

func (s *Store) end() {
	s.mu.Lock()
	s.loading--
	s.mu.Unlock()
}

func (s *Store) fail(err error) error {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	return err
}

func (s *Store) indexLocked(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(items []models.Postcard) []models.Postcard {
	out := make([]models.Postcard, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}
