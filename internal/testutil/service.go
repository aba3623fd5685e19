package testutil

import (
	"testing"

	"catalog-go/internal/catalog"
	"catalog-go/internal/destination"
)

// ServiceFixture bundles a Service with the doubles behind it.
type ServiceFixture struct {
	Service     *catalog.Service
	Store       catalog.Store
	Destination *destination.MemoryDestination
	Confirmer   *RecordingConfirmer
	Clock       *StubClock
	IDs         *StubIDGenerator
	Logger      *RecordingLogger
}

// NewTestService creates a Service over an in-memory store, an in-memory
// destination, the test encryptor, and a confirmer that says yes.
// The store is seeded on first load as usual.
func NewTestService(t *testing.T) *ServiceFixture {
	t.Helper()
	return NewTestServiceWithStore(t, NewTestStore())
}

// NewTestServiceWithStore is NewTestService over a caller-supplied store.
func NewTestServiceWithStore(t *testing.T, s catalog.Store) *ServiceFixture {
	t.Helper()

	f := &ServiceFixture{
		Store:       s,
		Destination: NewTestDestination(),
		Confirmer:   NewRecordingConfirmer(true),
		Clock:       FixedClock(),
		IDs:         NewStubIDGenerator(),
		Logger:      NewRecordingLogger(),
	}
	f.Service = catalog.NewService(s, f.Destination, NewTestEncryptor(), f.Confirmer, f.Logger, f.Clock, f.IDs)
	return f
}
