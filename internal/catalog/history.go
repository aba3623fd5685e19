package catalog

import (
	"catalog-go/internal/model"
)

// History actions.
const (
	ActionAdded              = "Added"
	ActionUpdated            = "Updated"
	ActionDeleted            = "Deleted"
	ActionDeletedAll         = "Deleted All"
	ActionClearedCategories  = "Cleared Categories"
	ActionExported           = "Exported"
	ActionExportedCategories = "Exported Categories"
	ActionImportedReplace    = "Imported Categories (Replace)"
	ActionImportedAdd        = "Imported Categories (Add)"
)

// History is the activity log, newest entry first.
// Every component records its actions through Append.
type History struct {
	entries []model.HistoryEntry
	store   Store
	clock   Clock
	idgen   IDGenerator
	logger  Logger
}

// NewHistory creates a History holding entries (newest first).
func NewHistory(entries []model.HistoryEntry, store Store, clock Clock, idgen IDGenerator, logger Logger) *History {
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	return &History{
		entries: entries,
		store:   store,
		clock:   clock,
		idgen:   idgen,
		logger:  logger,
	}
}

// Append records an action at the front of the log and persists the log.
func (h *History) Append(action, subject string) error {
	entry := model.HistoryEntry{
		ID:        h.idgen.New(),
		Action:    action,
		Product:   subject,
		Timestamp: h.clock.Now(),
	}
	h.entries = append([]model.HistoryEntry{entry}, h.entries...)
	h.logger.Info("history recorded", "action", action, "subject", subject)
	return h.persist()
}

// Clear empties the log. Clearing is not itself recorded.
// Returns ErrEmptyCollection and changes nothing when the log is already empty.
func (h *History) Clear() (int, error) {
	n := len(h.entries)
	if n == 0 {
		return 0, emptyErr("history to clear")
	}
	h.entries = []model.HistoryEntry{}
	return n, h.persist()
}

// List returns a copy of the log, newest first.
func (h *History) List() []model.HistoryEntry {
	out := make([]model.HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

func (h *History) persist() error {
	return saveCollection(h.store, h.logger, KeyHistory, h.entries)
}

// productSubject formats the subject of a per-product history entry.
func productSubject(name, sku string) string {
	if sku == "" {
		return name
	}
	return name + " (" + sku + ")"
}
