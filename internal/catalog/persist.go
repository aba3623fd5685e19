package catalog

import (
	"encoding/json"
	"fmt"
)

// saveCollection writes the full state of one collection under key.
// The in-memory state is already mutated when this runs; a failed save is
// reported but not rolled back.
func saveCollection(store Store, logger Logger, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := store.Save(key, string(data)); err != nil {
		logger.Error("saving collection failed", "key", key, "error", err)
		return fmt.Errorf("saving %s: %w", key, err)
	}
	logger.Debug("collection saved", "key", key, "bytes", len(data))
	return nil
}

// loadOutcome is the result of reading one collection at startup.
type loadOutcome int

const (
	// loadFound means the stored blob was decoded.
	loadFound loadOutcome = iota
	// loadMissing means nothing usable is stored: the key is absent or its
	// blob is unreadable. The seed replaces it, in memory and in the store.
	loadMissing
	// loadFailed means the store could not be read. The seed is used in
	// memory only; the stored blob may still be intact and is not overwritten.
	loadFailed
)

// loadCollection decodes the blob under key into v.
func loadCollection(store Store, logger Logger, key string, v any) loadOutcome {
	text, ok, err := store.Load(key)
	if err != nil {
		logger.Error("loading collection failed, using defaults without saving", "key", key, "error", err)
		return loadFailed
	}
	if !ok {
		logger.Debug("collection not stored yet, using defaults", "key", key)
		return loadMissing
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		logger.Warn("stored collection unreadable, using defaults", "key", key, "error", err)
		return loadMissing
	}
	return loadFound
}
