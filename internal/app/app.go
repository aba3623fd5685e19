package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"catalog-go/internal/catalog"
	"catalog-go/internal/config"
	"catalog-go/internal/destination"
	"catalog-go/internal/encryption"
	"catalog-go/internal/fs"
	"catalog-go/internal/store"
)

// CatalogApp is the application layer between the CLI and catalog.Service.
// It constructs all dependencies from config, exposes the operations that
// touch the local filesystem, and releases the store and log file on Close.
type CatalogApp struct {
	cfg       *config.Config
	store     catalog.Store
	dest      catalog.Destination
	encryptor catalog.Encryptor
	service   *catalog.Service
	run       *Run
	logger    *slog.Logger
	logFile   io.Closer
}

// NewCatalogApp creates a fully wired CatalogApp from the given config.
// command identifies the CLI command being run (e.g. "AddProduct", "ExportProducts").
// The caller must call Close when done.
func NewCatalogApp(ctx context.Context, cfg *config.Config, command, parameters string, confirmer catalog.Confirmer) (*CatalogApp, error) {
	st, err := store.NewStoreFromConfig(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}

	if checker, ok := st.(interface{ CheckMigrations() error }); ok {
		if err := checker.CheckMigrations(); err != nil {
			st.Close()
			return nil, fmt.Errorf("store schema out of date: %w", err)
		}
	}

	dest, err := destination.NewDestinationFromConfig(ctx, cfg.Destination)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating destination: %w", err)
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	run := NewRun(command, parameters, time.Now())
	logger, logFile, err := newLogger(cfg.LogDir, cfg.Log, run.ID)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	svc := catalog.NewService(st, dest, enc, confirmer, &slogAdapter{l: logger}, catalog.RealClock{}, catalog.UUIDGenerator{})
	svc.SetExportName(cfg.Export.Name)

	logger.Info("command started", "command", command, "parameters", parameters)

	return &CatalogApp{
		cfg:       cfg,
		store:     st,
		dest:      dest,
		encryptor: enc,
		service:   svc,
		run:       run,
		logger:    logger,
		logFile:   logFile,
	}, nil
}

// Service returns the catalog service.
func (a *CatalogApp) Service() *catalog.Service {
	return a.service
}

// ImportCategoriesFile reads the category list at rawPath and installs it.
// Only .txt files are accepted; the check happens before the file is read.
func (a *CatalogApp) ImportCategoriesFile(rawPath string, mode catalog.ImportMode) (int, error) {
	name := filepath.Base(rawPath)

	text, err := fs.ReadTextFile(rawPath, ".txt")
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrWrongExtension):
			return 0, &catalog.FileFormatError{Name: name, Reason: "please select a .txt file"}
		case errors.Is(err, fs.ErrNotText):
			return 0, &catalog.FileFormatError{Name: name, Reason: "file is not UTF-8 text"}
		}
		return 0, err
	}

	return a.service.ImportCategories(text, mode, name)
}

// CheckDestination verifies the configured export destination is writable.
func (a *CatalogApp) CheckDestination(ctx context.Context) error {
	return a.dest.ValidateSetup(ctx)
}

// EncryptionConfigured reports whether export keys exist.
func (a *CatalogApp) EncryptionConfigured() bool {
	return a.encryptor.IsConfigured()
}

// Finish records the outcome of the command. A non-nil err marks the run
// as failed and is logged; err is returned unchanged.
func (a *CatalogApp) Finish(err error) error {
	if err == nil {
		return nil
	}
	if !errors.Is(err, catalog.ErrCanceled) {
		a.run.Fail()
		a.logger.Error("command failed", "command", a.run.Command, "error", err)
	}
	return err
}

// Close logs the run status and closes the store and the log file.
func (a *CatalogApp) Close() error {
	a.logger.Info("command finished", "command", a.run.Command, "status", a.run.Status)

	var errs []error
	if err := a.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing store: %w", err))
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing log: %w", err))
		}
	}
	return errors.Join(errs...)
}
