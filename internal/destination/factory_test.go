package destination

import (
	"context"
	"path/filepath"
	"testing"

	"catalog-go/internal/config"
)

func TestNewDestinationFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.DestinationConfig
		wantErr bool
	}{
		{
			name: "memory destination",
			cfg:  config.DestinationConfig{Type: "memory", Name: "test-memory"},
		},
		{
			name: "filesystem destination",
			cfg:  config.DestinationConfig{Type: "filesystem", Name: "local", FSRoot: filepath.Join(t.TempDir(), "exports")},
		},
		{
			name:    "filesystem destination without root",
			cfg:     config.DestinationConfig{Type: "filesystem", Name: "local"},
			wantErr: true,
		},
		{
			name:    "s3 destination without bucket",
			cfg:     config.DestinationConfig{Type: "s3", Name: "cloud", S3Region: "us-east-1"},
			wantErr: true,
		},
		{
			name:    "unknown destination type",
			cfg:     config.DestinationConfig{Type: "ftp", Name: "legacy"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewDestinationFromConfig(context.Background(), tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewDestinationFromConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if got != nil {
					t.Errorf("NewDestinationFromConfig() = %v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("NewDestinationFromConfig() returned nil")
			}
		})
	}
}

func TestNewDestinationFromConfig_S3(t *testing.T) {
	t.Setenv(EnvS3AccessKeyID, "AKIDEXAMPLE")
	t.Setenv(EnvS3SecretAccessKey, "secret")

	got, err := NewDestinationFromConfig(context.Background(), config.DestinationConfig{
		Type:       "s3",
		Name:       "r2",
		S3Bucket:   "exports",
		S3Region:   "auto",
		S3Endpoint: "http://127.0.0.1:9000",
	})
	if err != nil {
		t.Fatalf("NewDestinationFromConfig() error = %v", err)
	}
	if _, ok := got.(*S3Destination); !ok {
		t.Errorf("NewDestinationFromConfig() = %T, want *S3Destination", got)
	}
}
