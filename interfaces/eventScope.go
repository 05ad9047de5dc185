package interfaces

import (
	"context"

	"gmseer/model"
)

// EventScope exposes the decoded events of one batch by kind. Read only.
type EventScope interface {
	Transfers() []model.TransferEvent
	FrenBurns() []model.FrenBurnedEvent
	IdentityChanges() []model.IdentityEvent
}

// BatchSource hands out batches in block order and returns io.EOF when drained.
type BatchSource interface {
	Next(ctx context.Context) (*model.Batch, error)
	// Done is called once a batch has been persisted.
	Done(batch *model.Batch) error
}
