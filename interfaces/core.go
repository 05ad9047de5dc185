package interfaces

import (
	"context"

	"gmseer/model"
)

type Core interface {
	Run(ctx context.Context, source BatchSource) error
	ProcessBatch(ctx context.Context, batch *model.Batch) error
	Stop()
}
