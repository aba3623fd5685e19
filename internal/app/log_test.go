package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"catalog-go/internal/config"
)

func TestCatalogHandler_Handle(t *testing.T) {
	ts := time.Date(2024, 6, 15, 14, 30, 45, 0, time.UTC)

	tests := []struct {
		name    string
		runID   string
		level   slog.Level
		message string
		attrs   []slog.Attr
		want    string
	}{
		{
			name:    "basic info message",
			runID:   "run-123",
			level:   slog.LevelInfo,
			message: "product added",
			want:    "2024-06-15T14:30:45Z\tINFO\trun-123\tproduct added\n",
		},
		{
			name:    "warn level",
			runID:   "run-456",
			level:   slog.LevelWarn,
			message: "stored collection unreadable, using defaults",
			want:    "2024-06-15T14:30:45Z\tWARN\trun-456\tstored collection unreadable, using defaults\n",
		},
		{
			name:    "with record attrs",
			runID:   "run-789",
			level:   slog.LevelInfo,
			message: "export delivered",
			attrs:   []slog.Attr{slog.String("name", "woocommerce-products-2024-06-15.csv"), slog.Int("size", 42)},
			want:    "2024-06-15T14:30:45Z\tINFO\trun-789\texport delivered\tname=woocommerce-products-2024-06-15.csv\tsize=42\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &catalogHandler{sinks: []logSink{{w: &buf, min: slog.LevelDebug}}, runID: tt.runID}

			r := slog.NewRecord(ts, tt.level, tt.message, 0)
			for _, a := range tt.attrs {
				r.AddAttrs(a)
			}

			if err := h.Handle(context.Background(), r); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("Handle() output =\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestCatalogHandler_SinkLevels(t *testing.T) {
	var file, stderr bytes.Buffer
	h := &catalogHandler{
		sinks: []logSink{
			{w: &file, min: slog.LevelInfo},
			{w: &stderr, min: slog.LevelWarn},
		},
		runID: "run-1",
	}
	logger := slog.New(h)

	logger.Debug("collection saved")
	logger.Info("product added")
	logger.Warn("field contains a quote")

	if strings.Contains(file.String(), "collection saved") {
		t.Error("DEBUG record reached the INFO sink")
	}
	if !strings.Contains(file.String(), "product added") || !strings.Contains(file.String(), "field contains a quote") {
		t.Errorf("file sink = %q", file.String())
	}
	if strings.Contains(stderr.String(), "product added") {
		t.Error("INFO record reached the WARN sink")
	}
	if !strings.Contains(stderr.String(), "field contains a quote") {
		t.Errorf("stderr sink = %q", stderr.String())
	}

	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Enabled(DEBUG) = true with INFO as the lowest sink")
	}
}

// brokenWriter fails every write, like a log file on a full disk.
type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("no space left on device") }

func TestCatalogHandler_FailingSinkDoesNotHideOthers(t *testing.T) {
	var stderr bytes.Buffer
	h := &catalogHandler{
		sinks: []logSink{
			{w: brokenWriter{}, min: slog.LevelInfo},
			{w: &stderr, min: slog.LevelWarn},
		},
		runID: "run-1",
	}

	r := slog.NewRecord(time.Now(), slog.LevelError, "saving collection failed", 0)
	err := h.Handle(context.Background(), r)
	if err == nil || !strings.Contains(err.Error(), "no space left on device") {
		t.Errorf("Handle() error = %v, want the file sink error", err)
	}
	if !strings.Contains(stderr.String(), "saving collection failed") {
		t.Errorf("stderr sink = %q, want the record despite the file sink failing", stderr.String())
	}
}

func TestCatalogHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := &catalogHandler{sinks: []logSink{{w: &buf}}, runID: "run-1", attrs: []slog.Attr{slog.String("a", "1")}}

	h2 := h.WithAttrs([]slog.Attr{slog.String("component", "store")}).(*catalogHandler)
	if len(h.attrs) != 1 {
		t.Errorf("original handler attrs modified: got %d, want 1", len(h.attrs))
	}

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "saved", 0)
	r.AddAttrs(slog.String("key", "woocommerce_products"))
	if err := h2.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{"a=1", "component=store", "key=woocommerce_products"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "log")

	logger, closer, err := newLogger(dir, config.LogConfig{MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}, "test-run")
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	logger.Info("product added", "sku", "TEE-001")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "\ttest-run\tproduct added\tsku=TEE-001") {
		t.Errorf("log file = %q", data)
	}
}
