package cartstore

import (
	"context"
	"sync"
)

// Store is the key-value persistence boundary for serialized carts.
// Implementations are last-writer-wins; read-modify-write is not atomic
// across processes and callers serialize mutations themselves.
type Store interface {
	// Load returns the payload for key and whether it exists
	Load(ctx context.Context, key string) (string, bool, error)
	// Save writes the payload for key
	Save(ctx context.Context, key, payload string) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	Close() error
}

// MemoryStore is a map-backed Store used for tests and single-process runs
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Load(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.data[key]
	return payload, ok, nil
}

func (m *MemoryStore) Save(_ context.Context, key, payload string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = payload
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
