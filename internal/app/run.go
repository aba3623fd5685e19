package app

import "time"

// Run tracks one CLI invocation. Its ID tags every log line the
// invocation writes, and its status is logged when the app closes.
type Run struct {
	ID         string
	Command    string
	Parameters string
	Status     string // "success" or "error"
}

// NewRun creates a run for command, identified by its start time.
func NewRun(command, parameters string, started time.Time) *Run {
	return &Run{
		ID:         started.UTC().Format("20060102T150405Z"),
		Command:    command,
		Parameters: parameters,
		Status:     "success",
	}
}

// Fail marks the run as failed.
func (r *Run) Fail() {
	r.Status = "error"
}

// Failed returns true if the run was marked as failed.
func (r *Run) Failed() bool {
	return r.Status == "error"
}
