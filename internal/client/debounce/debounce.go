// Package debounce coalesces bursts of values into a single commit once the
// input has been quiet for a delay.
package debounce

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/postplanner/internal/clock"
)

// CommitFunc receives the latest scheduled value.
type CommitFunc[T any] func(ctx context.Context, value T) error

// Scheduler holds at most one pending value. Scheduling again replaces the
// value and restarts the delay; a superseded timer never commits.
type Scheduler[T any] struct {
	clock   clock.Clock
	commit  CommitFunc[T]
	onError func(error)

	mu      sync.Mutex
	timer   clock.Timer
	gen     uint64
	pending bool
	value   T
}

// New returns a scheduler that calls commit. Errors from timer-driven commits
// go to onError when it is set and are dropped otherwise.
func New[T any](clk clock.Clock, commit CommitFunc[T], onError func(error)) *Scheduler[T] {
	if clk == nil {
		clk = clock.Real()
	}
	return &Scheduler[T]{clock: clk, commit: commit, onError: onError}
}

// Schedule arms the timer for value, cancelling whatever was pending.
func (s *Scheduler[T]) Schedule(value T, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.gen++
	gen := s.gen
	s.value = value
	s.pending = true
	s.timer = s.clock.AfterFunc(delay, func() { s.fire(gen) })
}

// FlushNow commits the pending value immediately on the calling goroutine
// and returns the commit's error. It is a no-op when nothing is pending.
func (s *Scheduler[T]) FlushNow(ctx context.Context) error {
	value, ok := s.take()
	if !ok {
		return nil
	}
	return s.commit(ctx, value)
}

// Cancel drops the pending value without committing it.
func (s *Scheduler[T]) Cancel() {
	s.take()
}

func (s *Scheduler[T]) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *Scheduler[T]) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || !s.pending {
		s.mu.Unlock()
		return
	}
	value := s.value
	s.clearLocked()
	s.mu.Unlock()

	if err := s.commit(context.Background(), value); err != nil && s.onError != nil {
		s.onError(err)
	}
}

func (s *Scheduler[T]) take() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.value, s.pending
	s.stopLocked()
	s.gen++
	s.clearLocked()
	return value, ok
}

func (s *Scheduler[T]) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Scheduler[T]) clearLocked() {
	var zero T
	s.value = zero
	s.pending = false
	s.timer = nil
}
