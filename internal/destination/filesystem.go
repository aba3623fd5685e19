package destination

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"catalog-go/internal/catalog"
)

// FileSystemDestination writes export files into a single directory:
//
//	<root>/
//	  woocommerce-products-2024-05-01.csv
//	  woocommerce-categories-2024-05-01.txt.age
type FileSystemDestination struct {
	name string
	root string
}

// NewFileSystemDestination creates a destination rooted at root, creating the directory.
func NewFileSystemDestination(name, root string) (*FileSystemDestination, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &FileSystemDestination{name: name, root: root}, nil
}

// Root returns the export directory.
func (d *FileSystemDestination) Root() string {
	return d.root
}

// Put writes the file atomically, replacing any file with the same name.
func (d *FileSystemDestination) Put(ctx context.Context, name string, r io.Reader, size int64) error {
	destPath, err := d.pathFor(name)
	if err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(d.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if written != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Get copies the named file to w.
func (d *FileSystemDestination) Get(ctx context.Context, name string, w io.Writer) error {
	srcPath, err := d.pathFor(name)
	if err != nil {
		return err
	}

	f, err := os.Open(srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("export not found: %s", name)
		}
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return nil
}

// ValidateSetup verifies that the export directory exists and is writable.
func (d *FileSystemDestination) ValidateSetup(ctx context.Context) error {
	info, err := os.Stat(d.root)
	if err != nil {
		return fmt.Errorf("export directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("export path is not a directory: %s", d.root)
	}

	probe, err := os.CreateTemp(d.root, ".probe-*")
	if err != nil {
		return fmt.Errorf("export directory not writable: %w", err)
	}
	probe.Close()
	return os.Remove(probe.Name())
}

// pathFor rejects names that are not plain file names.
func (d *FileSystemDestination) pathFor(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid export name: %q", name)
	}
	return filepath.Join(d.root, name), nil
}

// Compile-time check that FileSystemDestination implements catalog.Destination
var _ catalog.Destination = (*FileSystemDestination)(nil)
