package catalog

// Confirmer gates destructive operations.
// Confirm returns true when the operation described by prompt may proceed.
type Confirmer interface {
	Confirm(prompt string) bool
}

// AlwaysConfirm approves every prompt.
type AlwaysConfirm struct{}

func (AlwaysConfirm) Confirm(string) bool { return true }

// NeverConfirm declines every prompt.
type NeverConfirm struct{}

func (NeverConfirm) Confirm(string) bool { return false }
