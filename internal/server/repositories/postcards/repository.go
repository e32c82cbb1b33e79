// Package postcards stores postcards in PostgreSQL or in memory.
package postcards

import (
	"context"

	"github.com/dmitrijs2005/postplanner/internal/server/models"
)

// Repository persists postcards. Get, GetForUpdate, Update and Delete
// return common.ErrNotFound for unknown ids.
type Repository interface {
	List(ctx context.Context) ([]models.Postcard, error)
	Get(ctx context.Context, id string) (*models.Postcard, error)
	// GetForUpdate is Get that also locks the row until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, id string) (*models.Postcard, error)
	Create(ctx context.Context, p *models.Postcard) error
	Update(ctx context.Context, p *models.Postcard) error
	Delete(ctx context.Context, id string) error
}
