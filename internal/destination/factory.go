package destination

import (
	"context"
	"fmt"
	"os"

	"catalog-go/internal/catalog"
	"catalog-go/internal/config"
)

// Environment variables holding static S3 credentials. They may live in .env.
const (
	EnvS3AccessKeyID     = "CATALOG_S3_ACCESS_KEY_ID"
	EnvS3SecretAccessKey = "CATALOG_S3_SECRET_ACCESS_KEY"
)

// NewDestinationFromConfig creates a Destination based on the destination config type.
func NewDestinationFromConfig(ctx context.Context, cfg config.DestinationConfig) (catalog.Destination, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryDestination(cfg.Name), nil
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem destination requires fs_root to be set")
		}
		d, err := NewFileSystemDestination(cfg.Name, cfg.FSRoot)
		if err != nil {
			return nil, err
		}
		return d, nil
	case "s3":
		d, err := NewS3Destination(ctx, cfg.Name, S3Options{
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     os.Getenv(EnvS3AccessKeyID),
			SecretAccessKey: os.Getenv(EnvS3SecretAccessKey),
		})
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown destination type: %s", cfg.Type)
	}
}
