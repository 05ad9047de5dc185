package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"golang.org/x/sync/errgroup"

	"gmseer/helper"
	"gmseer/interfaces"
	"gmseer/metrics"
	"gmseer/model"
)

const (
	sourceNative   = "native"
	sourceGM       = "gm"
	sourceGN       = "gn"
	sourceIdentity = "identity"
)

var ErrMisaligned = errors.New("response not aligned with keys")

type sourceResult[T any] struct {
	values []T
	err    error
}

func (r sourceResult[T]) ok() bool { return r.err == nil }

// enrichmentResults is only read after all four reads settled.
type enrichmentResults struct {
	native   sourceResult[*model.NativeAccountData]
	gm       sourceResult[*model.TokenAccountData]
	gn       sourceResult[*model.TokenAccountData]
	identity sourceResult[*model.IdentityRecord]
}

func (r *enrichmentResults) balancesOK() bool {
	return r.native.ok() && r.gm.ok() && r.gn.ok()
}

func (r *enrichmentResults) allOK() bool {
	return r.balancesOK() && r.identity.ok()
}

func (r *enrichmentResults) failed() []string {
	failed := make([]string, 0)
	if !r.native.ok() {
		failed = append(failed, sourceNative)
	}
	if !r.gm.ok() {
		failed = append(failed, sourceGM)
	}
	if !r.gn.ok() {
		failed = append(failed, sourceGN)
	}
	if !r.identity.ok() {
		failed = append(failed, sourceIdentity)
	}
	return failed
}

type EnrichOutcome struct {
	Accounts        int
	Skipped         int
	Committed       int
	BalancesWritten bool
	IdentityApplied bool
	FailedSources   []string
}

// Enricher refreshes balances and identities of the accounts a batch touched, reading
// every source at the batch's snapshot block.
type Enricher struct {
	reader  interfaces.StateReader
	encoder interfaces.AddressEncoder
}

func NewEnricher(reader interfaces.StateReader, encoder interfaces.AddressEncoder) *Enricher {
	return &Enricher{reader: reader, encoder: encoder}
}

func (e *Enricher) Enrich(ctx context.Context, cache *helper.EntityCache, at model.BlockRef, accounts []*model.Account) EnrichOutcome {
	outcome := EnrichOutcome{Accounts: len(accounts)}
	if len(accounts) == 0 {
		return outcome
	}

	keys := make([][]byte, 0, len(accounts))
	targets := make([]*model.Account, 0, len(accounts))
	for _, acc := range accounts {
		key, err := e.encoder.ChainKey(acc.ID)
		if err != nil {
			slog.Warn("skipping account with malformed address", "account", acc.ID, "error", err)
			outcome.Skipped++
			continue
		}
		keys = append(keys, key)
		targets = append(targets, acc)
	}
	if len(targets) == 0 {
		return outcome
	}

	res := e.fetch(ctx, at, keys)
	outcome.FailedSources = res.failed()
	outcome.BalancesWritten = res.balancesOK()
	outcome.IdentityApplied = res.identity.ok()

	for i, acc := range targets {
		if res.balancesOK() {
			writeNativeBalance(cache, acc, res.native.values[i], at.Number)
			writeTokenBalance(cache, acc, model.GM, res.gm.values[i], at.Number)
			writeTokenBalance(cache, acc, model.GN, res.gn.values[i], at.Number)
		}
		if res.identity.ok() {
			applyIdentity(acc, res.identity.values[i])
		}
		// Identity changes computed above are dropped for the batch unless every
		// source succeeded. This matches the existing index and is kept on purpose.
		if res.allOK() {
			cache.Upsert(acc)
			outcome.Committed++
		}
	}

	metrics.AccountsEnriched.WithLabelValues("true").Add(float64(outcome.Committed))
	metrics.AccountsEnriched.WithLabelValues("false").Add(float64(len(targets) - outcome.Committed))
	if len(outcome.FailedSources) > 0 {
		slog.Warn("partial enrichment", "block", at.Number, "failed", outcome.FailedSources,
			"accounts", len(targets), "balances", outcome.BalancesWritten, "identity", outcome.IdentityApplied)
	}
	return outcome
}

// fetch runs the four reads concurrently and waits for all of them. A failing read
// never cancels the others.
func (e *Enricher) fetch(ctx context.Context, at model.BlockRef, keys [][]byte) *enrichmentResults {
	res := &enrichmentResults{}
	var g errgroup.Group
	g.Go(func() error {
		res.native = readSource(sourceNative, len(keys), func() ([]*model.NativeAccountData, error) {
			return e.reader.SystemAccounts(ctx, at, keys)
		})
		return nil
	})
	g.Go(func() error {
		res.gm = readSource(sourceGM, len(keys), func() ([]*model.TokenAccountData, error) {
			return e.reader.TokenAccounts(ctx, at, model.GM, keys)
		})
		return nil
	})
	g.Go(func() error {
		res.gn = readSource(sourceGN, len(keys), func() ([]*model.TokenAccountData, error) {
			return e.reader.TokenAccounts(ctx, at, model.GN, keys)
		})
		return nil
	})
	g.Go(func() error {
		res.identity = readSource(sourceIdentity, len(keys), func() ([]*model.IdentityRecord, error) {
			return e.reader.Identities(ctx, at, keys)
		})
		return nil
	})
	_ = g.Wait()
	return res
}

func readSource[T any](name string, want int, read func() ([]T, error)) sourceResult[T] {
	values, err := read()
	if err == nil && len(values) != want {
		err = fmt.Errorf("%w: %d values for %d keys", ErrMisaligned, len(values), want)
	}
	if err != nil {
		slog.Warn("state source unavailable", "source", name, "error", err)
		metrics.SourceFailures.WithLabelValues(name).Inc()
		return sourceResult[T]{err: err}
	}
	return sourceResult[T]{values: values}
}

func writeNativeBalance(cache *helper.EntityCache, acc *model.Account, data *model.NativeAccountData, block uint64) {
	if data == nil {
		data = &model.NativeAccountData{}
	}
	balance := helper.GetOrCreateBalance(cache, acc, model.FREN)
	balance.Free = orZero(data.Free)
	balance.Reserved = orZero(data.Reserved)
	balance.MiscFrozen = orZero(data.MiscFrozen)
	balance.FeeFrozen = orZero(data.FeeFrozen)
	balance.Frozen = nil
	// frozen amounts are part of free for the native currency
	balance.Total = new(big.Int).Add(balance.Free, balance.Reserved)
	balance.UpdatedAt = block
	cache.Upsert(balance)
}

func writeTokenBalance(cache *helper.EntityCache, acc *model.Account, currency model.Currency, data *model.TokenAccountData, block uint64) {
	if data == nil {
		data = &model.TokenAccountData{}
	}
	balance := helper.GetOrCreateBalance(cache, acc, currency)
	balance.Free = orZero(data.Free)
	balance.Reserved = orZero(data.Reserved)
	balance.Frozen = orZero(data.Frozen)
	balance.MiscFrozen = nil
	balance.FeeFrozen = nil
	balance.Total = new(big.Int).Add(balance.Free, balance.Reserved)
	balance.Total.Add(balance.Total, balance.Frozen)
	balance.UpdatedAt = block
	cache.Upsert(balance)
}

func applyIdentity(acc *model.Account, record *model.IdentityRecord) {
	if record == nil {
		acc.Display, acc.Discord, acc.Twitter = nil, nil, nil
		acc.Verified = false
		return
	}
	acc.Display = record.Display
	acc.Discord = record.Discord
	acc.Twitter = record.Twitter
	acc.Verified = record.Verified
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}

// collectTouchedAccounts lists every account referenced by the batch's events once,
// in first-reference order: transfers (from, to), burns, then identity changes.
func collectTouchedAccounts(scope interfaces.EventScope, cache *helper.EntityCache) []*model.Account {
	seen := make(map[string]struct{})
	touched := make([]*model.Account, 0)
	touch := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		touched = append(touched, helper.GetOrCreateAccount(cache, id))
	}
	for _, ev := range scope.Transfers() {
		touch(ev.From)
		touch(ev.To)
	}
	for _, ev := range scope.FrenBurns() {
		touch(ev.Who)
	}
	for _, ev := range scope.IdentityChanges() {
		touch(ev.Who)
	}
	return touched
}
