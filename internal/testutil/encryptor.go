package testutil

import (
	"catalog-go/internal/catalog"
	"catalog-go/internal/encryption"
)

// NewTestEncryptor creates a new test encryptor for testing.
func NewTestEncryptor() catalog.Encryptor {
	return encryption.NewTestEncryptor()
}
