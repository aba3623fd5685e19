package catalog

import (
	"context"
	"io"
)

// Destination receives export files (product CSVs, category lists, store
// snapshots). Files are addressed by name; writing an existing name replaces it.
type Destination interface {
	// Put stores a file under name.
	// size is the number of bytes that will be read from r.
	Put(ctx context.Context, name string, r io.Reader, size int64) error

	// Get retrieves the named file and writes it to w.
	Get(ctx context.Context, name string, w io.Writer) error

	// ValidateSetup verifies that the destination is reachable and writable.
	ValidateSetup(ctx context.Context) error
}
