package backups

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository keeps records for the lifetime of the process.
type MemoryRepository struct {
	records sync.Map
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Get(_ context.Context, key string) ([]byte, error) {
	if v, ok := m.records.Load(key); ok {
		return append([]byte(nil), v.([]byte)...), nil
	}
	return nil, nil
}

func (m *MemoryRepository) Set(_ context.Context, key string, record []byte) error {
	m.records.Store(key, append([]byte(nil), record...))
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, key string) error {
	m.records.Delete(key)
	return nil
}

func (m *MemoryRepository) Keys(_ context.Context) ([]string, error) {
	var keys []string
	m.records.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	sort.Strings(keys)
	return keys, nil
}
