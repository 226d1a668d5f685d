package storage

import (
	"context"

	"github.com/whattoread/ingest/core"
)

// WorkRepository persists works keyed by their natural key.
// Implementations must wrap each UpsertWorks call in a single transaction
// so a failed batch leaves the store untouched.
type WorkRepository interface {
	// UpsertWorks inserts the given works in one all-or-nothing batch.
	// A work whose key already exists is silently skipped, never updated.
	// Returns the number of rows actually inserted (conflict skips are
	// excluded from the count).
	UpsertWorks(ctx context.Context, works ...*core.Work) (int, error)

	// GetWork retrieves a single work by its natural key.
	// Returns ErrNotFound if no row exists for the key.
	GetWork(ctx context.Context, key string) (*core.Work, error)

	// CountWorks returns the total number of stored works.
	CountWorks(ctx context.Context) (int64, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
