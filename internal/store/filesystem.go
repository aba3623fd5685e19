package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"catalog-go/internal/catalog"
)

// FileSystemStore keeps each key in its own file:
//
//	<root>/
//	  <key>.json
//
// Writes go through a temp file and a rename, so a crash leaves either the
// old or the new blob, never a torn one.
type FileSystemStore struct {
	root string
}

// NewFileSystemStore creates a store rooted at root, creating the directory.
func NewFileSystemStore(root string) (*FileSystemStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileSystemStore{root: root}, nil
}

// Load returns the blob stored under key.
func (s *FileSystemStore) Load(key string) (string, bool, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return string(data), true, nil
}

// Save atomically replaces the blob stored under key.
func (s *FileSystemStore) Save(key string, text string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(s.root, ".tmp-*")
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

	if _, err := tmpFile.WriteString(text); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Close is a no-op.
func (s *FileSystemStore) Close() error {
	return nil
}

// pathFor maps a key to its file, rejecting keys that would escape root.
func (s *FileSystemStore) pathFor(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid store key: %q", key)
	}
	return filepath.Join(s.root, key+".json"), nil
}

// Compile-time check that FileSystemStore implements catalog.Store
var _ catalog.Store = (*FileSystemStore)(nil)
