package memory

import (
	"context"
	"sync"

	"github.com/fdg312/culinary-hub/internal/storage"
)

// MemoryStorage is an in-memory storage.Store used by tests and
// STORAGE_MODE=memory.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string][]byte

	// FailPut, when set, is returned from Put without storing anything.
	FailPut error
}

func New() *MemoryStorage {
	return &MemoryStorage{values: make(map[string][]byte)}
}

func (m *MemoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStorage) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailPut != nil {
		return m.FailPut
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

func (m *MemoryStorage) Close() error { return nil }

// SetFailPut toggles write failures under the lock.
func (m *MemoryStorage) SetFailPut(err error) {
	m.mu.Lock()
	m.FailPut = err
	m.mu.Unlock()
}
