package testutil

import (
	"errors"
	"sync"

	"catalog-go/internal/catalog"
	"catalog-go/internal/store"
)

// NewTestStore creates an empty in-memory store.
func NewTestStore() *store.MemoryStore {
	return store.NewMemoryStore()
}

// ErrStoreUnavailable is returned by FailingStore.
var ErrStoreUnavailable = errors.New("store unavailable")

// FailingStore wraps a Store and fails loads or saves on demand.
type FailingStore struct {
	catalog.Store

	mu        sync.Mutex
	failLoad  bool
	failSave  bool
	saveCalls int
}

// NewFailingStore wraps inner. Failures are off until enabled.
func NewFailingStore(inner catalog.Store) *FailingStore {
	return &FailingStore{Store: inner}
}

// FailLoads makes every subsequent Load return ErrStoreUnavailable.
func (s *FailingStore) FailLoads(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failLoad = fail
}

// FailSaves makes every subsequent Save return ErrStoreUnavailable.
func (s *FailingStore) FailSaves(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSave = fail
}

// SaveCalls returns the number of Save calls, failed ones included.
func (s *FailingStore) SaveCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveCalls
}

func (s *FailingStore) Load(key string) (string, bool, error) {
	s.mu.Lock()
	fail := s.failLoad
	s.mu.Unlock()
	if fail {
		return "", false, ErrStoreUnavailable
	}
	return s.Store.Load(key)
}

func (s *FailingStore) Save(key, text string) error {
	s.mu.Lock()
	s.saveCalls++
	fail := s.failSave
	s.mu.Unlock()
	if fail {
		return ErrStoreUnavailable
	}
	return s.Store.Save(key, text)
}
