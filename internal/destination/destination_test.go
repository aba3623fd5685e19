package destination

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"catalog-go/internal/catalog"
)

func destinationImpls(t *testing.T) map[string]catalog.Destination {
	t.Helper()

	fsDest, err := NewFileSystemDestination("local", t.TempDir())
	if err != nil {
		t.Fatalf("NewFileSystemDestination() error = %v", err)
	}
	return map[string]catalog.Destination{
		"filesystem": fsDest,
		"memory":     NewMemoryDestination("mem"),
		"s3":         newS3Destination("bucket", "exports", "woo", newFakeS3()),
	}
}

func TestDestination_PutAndGet(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "csv export", file: "woocommerce-products-2024-05-01.csv", content: "SKU,Name\n\"TEE-001\",\"Shirt\""},
		{name: "empty file", file: "empty.txt", content: ""},
		{name: "large file", file: "large.txt", content: strings.Repeat("x", 100000)},
	}

	ctx := context.Background()
	for implName, d := range destinationImpls(t) {
		t.Run(implName, func(t *testing.T) {
			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					err := d.Put(ctx, tt.file, strings.NewReader(tt.content), int64(len(tt.content)))
					if err != nil {
						t.Fatalf("Put() error = %v", err)
					}

					var buf bytes.Buffer
					if err := d.Get(ctx, tt.file, &buf); err != nil {
						t.Fatalf("Get() error = %v", err)
					}
					if buf.String() != tt.content {
						t.Errorf("Get() returned %d bytes, want %d", buf.Len(), len(tt.content))
					}
				})
			}
		})
	}
}

func TestDestination_PutReplaces(t *testing.T) {
	ctx := context.Background()
	for implName, d := range destinationImpls(t) {
		t.Run(implName, func(t *testing.T) {
			for _, content := range []string{"first", "second"} {
				if err := d.Put(ctx, "file.txt", strings.NewReader(content), int64(len(content))); err != nil {
					t.Fatalf("Put(%q) error = %v", content, err)
				}
			}
			var buf bytes.Buffer
			if err := d.Get(ctx, "file.txt", &buf); err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if buf.String() != "second" {
				t.Errorf("Get() = %q, want %q", buf.String(), "second")
			}
		})
	}
}

func TestDestination_SizeMismatch(t *testing.T) {
	ctx := context.Background()
	for implName, d := range destinationImpls(t) {
		t.Run(implName, func(t *testing.T) {
			err := d.Put(ctx, "short.txt", strings.NewReader("abc"), 10)
			if err == nil {
				t.Fatal("Put() expected size mismatch error")
			}
		})
	}
}

func TestDestination_GetMissing(t *testing.T) {
	ctx := context.Background()
	for implName, d := range destinationImpls(t) {
		t.Run(implName, func(t *testing.T) {
			var buf bytes.Buffer
			if err := d.Get(ctx, "missing.csv", &buf); err == nil {
				t.Fatal("Get() expected error for missing file")
			}
		})
	}
}

func TestDestination_ValidateSetup(t *testing.T) {
	ctx := context.Background()
	for implName, d := range destinationImpls(t) {
		t.Run(implName, func(t *testing.T) {
			if err := d.ValidateSetup(ctx); err != nil {
				t.Errorf("ValidateSetup() error = %v", err)
			}
		})
	}
}
