package postcards

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/postplanner/internal/common"
	"github.com/dmitrijs2005/postplanner/internal/server/models"
)

// MemoryRepository keeps postcards in a map. It is used when the server
// runs without a database.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.Postcard
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]models.Postcard)}
}

func clone(p models.Postcard) models.Postcard {
	if p.ScheduledDate != nil {
		d := *p.ScheduledDate
		p.ScheduledDate = &d
	}
	return p
}

func (m *MemoryRepository) List(_ context.Context) ([]models.Postcard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Postcard, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *MemoryRepository) Get(_ context.Context, id string) (*models.Postcard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	c := clone(p)
	return &c, nil
}

// GetForUpdate is Get; MemoryManager.InTx serializes transactions instead.
func (m *MemoryRepository) GetForUpdate(ctx context.Context, id string) (*models.Postcard, error) {
	return m.Get(ctx, id)
}

func (m *MemoryRepository) Create(_ context.Context, p *models.Postcard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[p.ID] = clone(*p)
	return nil
}

func (m *MemoryRepository) Update(_ context.Context, p *models.Postcard) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.items[p.ID]
	if !ok {
		return common.ErrNotFound
	}
	c := clone(*p)
	c.CreatedAt = old.CreatedAt
	m.items[p.ID] = c
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.items, id)
	return nil
}
