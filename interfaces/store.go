package interfaces

import (
	"context"

	"gmseer/model"
)

// EntityLoader bulk reads entities the store already holds.
type EntityLoader interface {
	LoadAccounts(ctx context.Context, ids []string) ([]*model.Account, error)
	// LoadEventIDs returns the subset of ids already stored for the given record kind.
	LoadEventIDs(ctx context.Context, kind model.EntityKind, ids []string) ([]string, error)
}

// Store is the flush target. Persist upserts every entity by id and records
// processedUpTo atomically.
type Store interface {
	EntityLoader
	Persist(ctx context.Context, changes *model.ChangeSet, processedUpTo uint64) error
	LastProcessed(ctx context.Context) (uint64, error)
	Close() error
}

// Sink receives a copy of each persisted change set, e.g. for dashboards.
type Sink interface {
	WriteChangeSet(changes *model.ChangeSet, batch *model.Batch)
	Flush()
	Close()
}
