package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/postplanner/internal/server/repositories/postcards"
)

// MemoryManager keeps postcards in process memory. InTx calls are
// serialized; there is no rollback.
type MemoryManager struct {
	txMu sync.Mutex
	repo *postcards.MemoryRepository
}

func NewMemoryManager() *MemoryManager {
	return &MemoryManager{repo: postcards.NewMemoryRepository()}
}

func (m *MemoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryManager) Postcards() postcards.Repository { return m.repo }

func (m *MemoryManager) InTx(ctx context.Context, fn func(ctx context.Context, repo postcards.Repository) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, m.repo)
}

func (m *MemoryManager) Close() error { return nil }
