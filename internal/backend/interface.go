// Package backend selects and builds the record store the trip state is
// persisted in.
package backend

import (
	"context"

	"tripsplit/internal/store"
)

// CleanupFunc represents a cleanup function for backend resources.
type CleanupFunc func() error

// BackendResult contains the record store and optional cleanup function.
type BackendResult struct {
	Records store.RecordStore
	Cleanup CleanupFunc
}

// Factory creates record stores based on configuration.
type Factory interface {
	// CreateBackend creates a backend instance based on the provided config.
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation.
type Config struct {
	// Backend type
	Type BackendType

	// SQLite specific
	SQLiteDBPath string
}

// BackendType represents the type of backend.
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid.
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
