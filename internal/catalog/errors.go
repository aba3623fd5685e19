package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyCollection is returned when an export, clear or delete-all
	// is attempted on a collection with nothing in it.
	ErrEmptyCollection = errors.New("collection is empty")

	// ErrCanceled is returned when the user declines a confirmation.
	ErrCanceled = errors.New("canceled")

	// ErrNoEditSession is returned when an edit operation runs without an
	// active session.
	ErrNoEditSession = errors.New("no edit in progress")
)

// ValidationError reports required product fields that were left empty.
type ValidationError struct {
	Fields []string // human-readable field names, in form order
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Please fill in SKU, Name, and Price (required fields): missing %s",
		strings.Join(e.Fields, ", "))
}

// FileFormatError reports an import file that was rejected before or
// after reading.
type FileFormatError struct {
	Name   string
	Reason string
}

func (e *FileFormatError) Error() string {
	if e.Name == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Reason)
}

// emptyErr wraps ErrEmptyCollection with a message naming what was empty.
func emptyErr(what string) error {
	return fmt.Errorf("no %s: %w", what, ErrEmptyCollection)
}
