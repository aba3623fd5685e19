package testutil

import (
	"catalog-go/internal/destination"
)

// NewTestDestination creates a new in-memory export destination for testing.
func NewTestDestination() *destination.MemoryDestination {
	return destination.NewMemoryDestination("test-destination")
}
