// Package backup keeps a crash-safe local copy of unsaved editor buffers.
//
// Every write stores {payload, timestamp, version} under a key. Reads ignore
// and delete records older than TTL or in an unknown format. Failures of the
// underlying medium are logged and swallowed: the backup is a best-effort
// side channel and never blocks editing.
package backup

import (
	"context"
	"time"

	"github.com/dmitrijs2005/postplanner/internal/client/repositories/backups"
	"github.com/dmitrijs2005/postplanner/internal/clock"
	"github.com/dmitrijs2005/postplanner/internal/logging"
)

const (
	Version = "1.0"
	TTL     = 24 * time.Hour
)

type record[T any] struct {
	Payload   T      `cbor:"payload"`
	Timestamp int64  `cbor:"timestamp"`
	Version   string `cbor:"version"`
}

// Store is a typed view over a backups.Repository.
type Store[T any] struct {
	repo  backups.Repository
	clock clock.Clock
	log   logging.Logger
}

func New[T any](repo backups.Repository, clk clock.Clock, log logging.Logger) *Store[T] {
	if clk == nil {
		clk = clock.Real()
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Store[T]{repo: repo, clock: clk, log: log.With("component", "backup")}
}

// Write stores payload under key, replacing any previous record.
func (s *Store[T]) Write(ctx context.Context, key string, payload T) {
	b, err := encMode.Marshal(record[T]{
		Payload:   payload,
		Timestamp: s.clock.Now().UnixMilli(),
		Version:   Version,
	})
	if err != nil {
		s.log.Warn(ctx, "encode backup", "key", key, "error", err)
		return
	}
	if err := s.repo.Set(ctx, key, b); err != nil {
		s.log.Warn(ctx, "write backup", "key", key, "error", err)
	}
}

// Read returns the payload stored under key if it is younger than TTL.
// Expired or undecodable records are deleted.
func (s *Store[T]) Read(ctx context.Context, key string) (T, bool) {
	var zero T

	b, err := s.repo.Get(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "read backup", "key", key, "error", err)
		return zero, false
	}
	if b == nil {
		return zero, false
	}

	rec, ok := s.decode(b)
	if !ok {
		s.log.Info(ctx, "dropping unreadable backup", "key", key)
		s.Clear(ctx, key)
		return zero, false
	}
	if s.expired(rec) {
		s.log.Info(ctx, "dropping expired backup", "key", key)
		s.Clear(ctx, key)
		return zero, false
	}
	return rec.Payload, true
}

// Clear deletes the record under key.
func (s *Store[T]) Clear(ctx context.Context, key string) {
	if err := s.repo.Delete(ctx, key); err != nil {
		s.log.Warn(ctx, "clear backup", "key", key, "error", err)
	}
}

// Keys lists the keys of live records, dropping stale ones on the way.
func (s *Store[T]) Keys(ctx context.Context) []string {
	keys, err := s.repo.Keys(ctx)
	if err != nil {
		s.log.Warn(ctx, "list backups", "error", err)
		return nil
	}
	live := keys[:0]
	for _, k := range keys {
		if _, ok := s.Read(ctx, k); ok {
			live = append(live, k)
		}
	}
	return live
}

func (s *Store[T]) decode(b []byte) (record[T], bool) {
	var rec record[T]
	if err := decMode.Unmarshal(b, &rec); err != nil {
		return rec, false
	}
	return rec, rec.Version == Version
}

func (s *Store[T]) expired(rec record[T]) bool {
	age := s.clock.Now().Sub(time.UnixMilli(rec.Timestamp))
	return age >= TTL
}
