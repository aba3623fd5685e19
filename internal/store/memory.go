package store

import (
	"sync"

	"catalog-go/internal/catalog"
)

// MemoryStore is an in-memory implementation of catalog.Store.
// Nothing survives the process, which makes it useful for tests.
// This implementation is safe for concurrent use.
type MemoryStore struct {
	blobs map[string]string
	mu    sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]string)}
}

// Load returns the blob stored under key.
func (m *MemoryStore) Load(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	text, ok := m.blobs[key]
	return text, ok, nil
}

// Save replaces the blob stored under key.
func (m *MemoryStore) Save(key string, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blobs[key] = text
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

// Compile-time check that MemoryStore implements catalog.Store
var _ catalog.Store = (*MemoryStore)(nil)
