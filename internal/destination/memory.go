package destination

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	"catalog-go/internal/catalog"
)

// MemoryDestination keeps export files in memory, making it useful for testing.
// This implementation is safe for concurrent use.
type MemoryDestination struct {
	name  string
	files map[string][]byte
	mu    sync.RWMutex
}

// NewMemoryDestination creates an empty in-memory destination.
func NewMemoryDestination(name string) *MemoryDestination {
	return &MemoryDestination{
		name:  name,
		files: make(map[string][]byte),
	}
}

// Put stores the file, replacing any file with the same name.
func (m *MemoryDestination) Put(ctx context.Context, name string, r io.Reader, size int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[name] = data
	return nil
}

// Get writes the named file to w.
func (m *MemoryDestination) Get(ctx context.Context, name string, w io.Writer) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[name]
	if !ok {
		return fmt.Errorf("export not found: %s", name)
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write content: %w", err)
	}
	return nil
}

// Names lists the stored file names in sorted order.
func (m *MemoryDestination) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ValidateSetup always succeeds for the in-memory destination.
func (m *MemoryDestination) ValidateSetup(ctx context.Context) error {
	return nil
}

// Compile-time check that MemoryDestination implements catalog.Destination
var _ catalog.Destination = (*MemoryDestination)(nil)
