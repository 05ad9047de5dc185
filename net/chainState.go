package net

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/autonity/autonity/common/hexutil"

	"gmseer/interfaces"
	"gmseer/model"
)

const (
	palletSystem   = "System"
	palletTokens   = "Tokens"
	palletIdentity = "Identity"
)

type accountInfo struct {
	Nonce uint64 `json:"nonce"`
	Data  struct {
		Free       model.Amount `json:"free"`
		Reserved   model.Amount `json:"reserved"`
		MiscFrozen model.Amount `json:"miscFrozen"`
		FeeFrozen  model.Amount `json:"feeFrozen"`
	} `json:"data"`
}

type tokenAccount struct {
	Free     model.Amount `json:"free"`
	Reserved model.Amount `json:"reserved"`
	Frozen   model.Amount `json:"frozen"`
}

// identityData is an on-chain data field; only raw values carry text.
type identityData struct {
	Raw *string `json:"raw"`
}

func (d *identityData) text() *string {
	if d == nil || d.Raw == nil || *d.Raw == "" {
		return nil
	}
	v := *d.Raw
	return &v
}

type registration struct {
	Judgements []struct {
		Registrar uint32 `json:"registrar"`
		Judgement string `json:"judgement"`
	} `json:"judgements"`
	Info struct {
		Display    *identityData     `json:"display"`
		Twitter    *identityData     `json:"twitter"`
		Additional [][2]identityData `json:"additional"`
	} `json:"info"`
}

// ChainState decodes the storage items the enricher reads from a StorageReader.
type ChainState struct {
	storage interfaces.StorageReader
}

func NewChainState(storage interfaces.StorageReader) *ChainState {
	return &ChainState{storage: storage}
}

func (s *ChainState) SystemAccounts(ctx context.Context, at model.BlockRef, keys [][]byte) ([]*model.NativeAccountData, error) {
	return readDecoded(ctx, s.storage, at, palletSystem, "Account", accountKeys(keys), func(info *accountInfo) *model.NativeAccountData {
		return &model.NativeAccountData{
			Free:       info.Data.Free.OrZero(),
			Reserved:   info.Data.Reserved.OrZero(),
			MiscFrozen: info.Data.MiscFrozen.OrZero(),
			FeeFrozen:  info.Data.FeeFrozen.OrZero(),
		}
	})
}

// TokenAccounts reads Tokens.Accounts, a double map keyed by (account, currency).
func (s *ChainState) TokenAccounts(ctx context.Context, at model.BlockRef, currency model.Currency, keys [][]byte) ([]*model.TokenAccountData, error) {
	pairs := make([]any, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, []any{hexutil.Bytes(key), currency.String()})
	}
	return readDecoded(ctx, s.storage, at, palletTokens, "Accounts", pairs, func(acc *tokenAccount) *model.TokenAccountData {
		return &model.TokenAccountData{
			Free:     acc.Free.OrZero(),
			Reserved: acc.Reserved.OrZero(),
			Frozen:   acc.Frozen.OrZero(),
		}
	})
}

func (s *ChainState) Identities(ctx context.Context, at model.BlockRef, keys [][]byte) ([]*model.IdentityRecord, error) {
	return readDecoded(ctx, s.storage, at, palletIdentity, "IdentityOf", accountKeys(keys), identityRecord)
}

func identityRecord(reg *registration) *model.IdentityRecord {
	record := &model.IdentityRecord{
		Display: reg.Info.Display.text(),
		Twitter: reg.Info.Twitter.text(),
	}
	for _, field := range reg.Info.Additional {
		if key := field[0].text(); key != nil && strings.EqualFold(*key, "discord") {
			record.Discord = field[1].text()
		}
	}
	for _, j := range reg.Judgements {
		switch strings.ToLower(j.Judgement) {
		case "reasonable", "knowngood":
			record.Verified = true
		}
	}
	return record
}

func accountKeys(keys [][]byte) []any {
	out := make([]any, 0, len(keys))
	for _, key := range keys {
		out = append(out, hexutil.Bytes(key))
	}
	return out
}

var jsonNull = []byte("null")

// readDecoded runs one bulk read and decodes every value. Null values stay nil. A
// value that fails to decode fails the whole read.
func readDecoded[R any, T any](ctx context.Context, storage interfaces.StorageReader, at model.BlockRef,
	pallet, item string, keys []any, convert func(*R) *T) ([]*T, error) {
	raw, err := storage.ReadMany(ctx, at, pallet, item, keys)
	if err != nil {
		return nil, err
	}
	if len(raw) != len(keys) {
		return nil, fmt.Errorf("%s.%s: %d values for %d keys", pallet, item, len(raw), len(keys))
	}
	out := make([]*T, len(raw))
	for i, value := range raw {
		value = bytes.TrimSpace(value)
		if len(value) == 0 || bytes.Equal(value, jsonNull) {
			continue
		}
		var decoded R
		if err := json.Unmarshal(value, &decoded); err != nil {
			return nil, fmt.Errorf("decode %s.%s value %d: %w", pallet, item, i, err)
		}
		out[i] = convert(&decoded)
	}
	return out, nil
}
