package store

import (
	"fmt"
	"os"
	"path/filepath"

	"catalog-go/internal/catalog"
	"catalog-go/internal/config"
)

// DBFileName is the name of the sqlite store file inside data_dir.
const DBFileName = "catalog.db"

// NewStoreFromConfig creates a Store implementation based on the store config type.
func NewStoreFromConfig(cfg config.StoreConfig) (catalog.Store, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite store")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		s, err := NewSQLiteStore(filepath.Join(cfg.DataDir, DBFileName))
		if err != nil {
			return nil, err
		}
		return s, nil
	case "filesystem":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for filesystem store")
		}
		s, err := NewFileSystemStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}
