package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ImportMode selects how imported categories combine with the registry.
type ImportMode int

const (
	// ModeMerge unions the imported paths with the existing set.
	ModeMerge ImportMode = iota
	// ModeReplace discards the existing set.
	ModeReplace
)

func (m ImportMode) String() string {
	switch m {
	case ModeReplace:
		return "replace"
	default:
		return "merge"
	}
}

// Registry is the deduplicated, sorted set of category paths.
// It is independent of products: removing a product never removes its
// category, and clearing the registry never touches products.
type Registry struct {
	paths   []string
	store   Store
	history *History
	logger  Logger
}

// NewRegistry creates a Registry from paths. Duplicates are dropped and the
// result is sorted, so the invariant holds even for hand-edited stored data.
func NewRegistry(paths []string, store Store, history *History, logger Logger) *Registry {
	return &Registry{
		paths:   normalizePaths(paths),
		store:   store,
		history: history,
		logger:  logger,
	}
}

// Add registers path after trimming it. Empty input and paths already
// present are ignored. Reports whether the set changed.
func (r *Registry) Add(path string) (bool, error) {
	path = strings.TrimSpace(path)
	if path == "" || r.Contains(path) {
		return false, nil
	}
	r.paths = normalizePaths(append(r.paths, path))
	r.logger.Debug("category registered", "path", path)
	return true, r.persist()
}

// Contains reports whether path is registered exactly as given.
func (r *Registry) Contains(path string) bool {
	_, found := slices.BinarySearch(r.paths, path)
	return found
}

// List returns a copy of the sorted set.
func (r *Registry) List() []string {
	return slices.Clone(r.paths)
}

// Len returns the number of registered categories.
func (r *Registry) Len() int {
	return len(r.paths)
}

// ImportFromText reads one category path per line from text and installs
// them according to mode. source names the origin of the text in the
// history entry. Returns the number of usable lines read, duplicates included.
func (r *Registry) ImportFromText(text string, mode ImportMode, source string) (int, error) {
	lines := ParseCategoryLines(text)
	if len(lines) == 0 {
		return 0, &FileFormatError{Name: source, Reason: "no valid categories found"}
	}

	action := ActionImportedAdd
	if mode == ModeReplace {
		r.paths = normalizePaths(lines)
		action = ActionImportedReplace
	} else {
		r.paths = normalizePaths(append(r.paths, lines...))
	}

	r.logger.Info("categories imported", "mode", mode.String(), "lines", len(lines), "total", len(r.paths))
	return len(lines), errors.Join(
		r.persist(),
		r.history.Append(action, fmt.Sprintf("%d categories from %s", len(lines), source)),
	)
}

// ExportToText returns the set one path per line.
func (r *Registry) ExportToText() (string, error) {
	data, err := EncodeCategoriesText(r.paths)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Clear empties the registry and records how many paths were removed.
func (r *Registry) Clear() (int, error) {
	n := len(r.paths)
	if n == 0 {
		return 0, emptyErr("categories to clear")
	}
	r.paths = []string{}
	return n, errors.Join(
		r.persist(),
		r.history.Append(ActionClearedCategories, fmt.Sprintf("%d categories", n)),
	)
}

func (r *Registry) persist() error {
	return saveCollection(r.store, r.logger, KeyCategories, r.paths)
}

// ParseCategoryLines splits text into trimmed lines, skipping blank lines
// and lines starting with '#'.
func ParseCategoryLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// normalizePaths returns a sorted copy of paths with duplicates removed.
func normalizePaths(paths []string) []string {
	out := slices.Clone(paths)
	if out == nil {
		out = []string{}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
