package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/autonity/autonity/common/hexutil"
	"github.com/autonity/autonity/rpc"

	"gmseer/model"
)

const (
	readManyMethod   = "state_readMany"
	defaultChunkSize = 500
)

// Gateway reads decoded storage values from the state gateway. Large key lists are
// split into chunks that travel in a single JSON-RPC batch.
type Gateway struct {
	provider  ConnectionProvider
	chunkSize int
	timeout   time.Duration
}

func NewGateway(provider ConnectionProvider, chunkSize int, timeout time.Duration) *Gateway {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Gateway{provider: provider, chunkSize: chunkSize, timeout: timeout}
}

// blockArg pins a read to the snapshot hash, or to the number when no hash is known.
func blockArg(at model.BlockRef) string {
	if at.Hash != "" {
		return at.Hash
	}
	return hexutil.EncodeUint64(at.Number)
}

func (g *Gateway) ReadMany(ctx context.Context, at model.BlockRef, pallet, item string, keys []any) ([]json.RawMessage, error) {
	if len(keys) == 0 {
		return []json.RawMessage{}, nil
	}
	client, err := g.provider.GetRPCClient()
	if err != nil {
		return nil, err
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	chunks := make([][]any, 0, len(keys)/g.chunkSize+1)
	for start := 0; start < len(keys); start += g.chunkSize {
		end := min(start+g.chunkSize, len(keys))
		chunks = append(chunks, keys[start:end])
	}
	results := make([][]json.RawMessage, len(chunks))
	batch := make([]rpc.BatchElem, len(chunks))
	for i, chunk := range chunks {
		batch[i] = rpc.BatchElem{
			Method: readManyMethod,
			Args:   []interface{}{pallet, item, chunk, blockArg(at)},
			Result: &results[i],
		}
	}

	if err := client.BatchCallContext(ctx, batch); err != nil {
		if isTransportError(err) {
			g.provider.Discard(client)
		}
		return nil, fmt.Errorf("%s.%s at %d: %w", pallet, item, at.Number, err)
	}

	values := make([]json.RawMessage, 0, len(keys))
	for i, elem := range batch {
		if elem.Error != nil {
			return nil, fmt.Errorf("%s.%s at %d chunk %d: %w", pallet, item, at.Number, i, elem.Error)
		}
		if len(results[i]) != len(chunks[i]) {
			return nil, fmt.Errorf("%s.%s at %d chunk %d: %d values for %d keys",
				pallet, item, at.Number, i, len(results[i]), len(chunks[i]))
		}
		values = append(values, results[i]...)
	}
	slog.Debug("storage read", "pallet", pallet, "item", item, "block", at.Number, "keys", len(keys), "chunks", len(chunks))
	return values, nil
}

func isTransportError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var rpcErr rpc.Error
	return !errors.As(err, &rpcErr)
}
