package client

import (
	"context"

	"github.com/dmitrijs2005/postplanner/internal/client/models"
)

// Client is the remote authoritative postcard store.
type Client interface {
	FetchAll(ctx context.Context) ([]models.Postcard, error)
	Get(ctx context.Context, id string) (*models.Postcard, error)
	Insert(ctx context.Context, fields models.Fields) (*models.Postcard, error)
	Patch(ctx context.Context, id string, patch models.Patch) (*models.Postcard, error)
	Remove(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close() error
}

// Generator produces a batch of postcards for a phase. The returned items
// are already persisted remotely.
type Generator interface {
	GeneratePhase(ctx context.Context, spec models.PhaseSpec) (*models.GenerateResult, error)
}
