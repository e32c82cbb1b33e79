// Package repomanager selects the postcard storage backend and runs
// read-modify-write sequences atomically on it.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/postplanner/internal/server/repositories/postcards"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Postcards() postcards.Repository
	// InTx runs fn with a repository whose operations commit or roll back
	// together. Concurrent InTx calls touching the same row do not
	// interleave.
	InTx(ctx context.Context, fn func(ctx context.Context, repo postcards.Repository) error) error
	Close() error
}
