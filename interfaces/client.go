package interfaces

import (
	"context"
	"encoding/json"

	"github.com/autonity/autonity/rpc"

	"gmseer/model"
)

// RPCClient defines the methods needed from a rpc.Client.
type RPCClient interface {
	BatchCallContext(ctx context.Context, b []rpc.BatchElem) error
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

// StorageReader reads one storage item for many keys at a single block. The result is
// aligned with keys; a null element means the key has no value. A failure covers all keys.
type StorageReader interface {
	ReadMany(ctx context.Context, at model.BlockRef, pallet, item string, keys []any) ([]json.RawMessage, error)
}

// StateReader is the typed view of the storage items the enricher needs. Every result
// slice is positionally aligned with keys; nil elements mean absent.
type StateReader interface {
	SystemAccounts(ctx context.Context, at model.BlockRef, keys [][]byte) ([]*model.NativeAccountData, error)
	TokenAccounts(ctx context.Context, at model.BlockRef, currency model.Currency, keys [][]byte) ([]*model.TokenAccountData, error)
	Identities(ctx context.Context, at model.BlockRef, keys [][]byte) ([]*model.IdentityRecord, error)
}

// AddressEncoder translates an account id into the storage key format of the chain.
type AddressEncoder interface {
	ChainKey(address string) ([]byte, error)
}
