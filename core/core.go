package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"gmseer/events/registry"
	"gmseer/helper"
	"gmseer/interfaces"
	"gmseer/metrics"
	"gmseer/model"
)

type syncTracker struct {
	sync.Mutex
	lastProcessed uint64
	started       bool
}

// shouldProcess reports whether a batch still has unprocessed blocks. Overlapping
// batches are processed again; already indexed events are skipped by the handlers.
func (s *syncTracker) shouldProcess(batch *model.Batch) bool {
	s.Lock()
	defer s.Unlock()
	if !s.started {
		return true
	}
	if batch.To <= s.lastProcessed {
		return false
	}
	if batch.From > s.lastProcessed+1 {
		slog.Warn("gap between batches", "lastProcessed", s.lastProcessed, "from", batch.From)
	}
	return true
}

func (s *syncTracker) updateProcessed(end uint64) (bool, uint64) {
	s.Lock()
	defer s.Unlock()
	s.started = true
	if end <= s.lastProcessed {
		return false, s.lastProcessed
	}
	s.lastProcessed = end
	return true, s.lastProcessed
}

type core struct {
	cancel   context.CancelFunc
	store    interfaces.Store
	sinks    []interfaces.Sink
	enricher *Enricher
	cache    *helper.EntityCache
	handlers []registry.NamedHandler
	tracker  *syncTracker
}

func New(store interfaces.Store, enricher *Enricher, cache *helper.EntityCache, sinks ...interfaces.Sink) interfaces.Core {
	handlers := registry.EventHandlers()
	if len(handlers) == 0 {
		registry.RegisterEventHandlers()
		handlers = registry.EventHandlers()
	}
	return &core{
		store:    store,
		sinks:    sinks,
		enricher: enricher,
		cache:    cache,
		handlers: handlers,
		tracker:  &syncTracker{},
	}
}

// Run processes batches from source one at a time until it is drained or ctx ends.
func (c *core) Run(ctx context.Context, source interfaces.BatchSource) error {
	ctx, c.cancel = context.WithCancel(ctx)
	defer c.cancel()

	lastProcessed, err := c.store.LastProcessed(ctx)
	if err != nil {
		return fmt.Errorf("read last processed block: %w", err)
	}
	if lastProcessed > 0 {
		c.tracker.updateProcessed(lastProcessed)
		metrics.LastProcessedBlock.Set(float64(lastProcessed))
	}
	slog.Info("resuming from last processed block", "number", lastProcessed)

	for {
		batch, err := source.Next(ctx)
		if errors.Is(err, io.EOF) {
			slog.Info("batch source drained", "lastProcessed", c.tracker.lastProcessed)
			return nil
		}
		if err != nil {
			return fmt.Errorf("next batch: %w", err)
		}
		if !c.tracker.shouldProcess(batch) {
			slog.Info("skipping processed batch", "from", batch.From, "to", batch.To, "source", batch.Source)
		} else if err := c.ProcessBatch(ctx, batch); err != nil {
			return err
		}
		if err := source.Done(batch); err != nil {
			slog.Warn("unable to mark batch done", "source", batch.Source, "error", err)
		}
	}
}

func (c *core) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
}

// ProcessBatch runs mutators, enrichment and the flush for one batch. Nothing reaches
// the store unless the whole batch succeeded.
func (c *core) ProcessBatch(ctx context.Context, batch *model.Batch) error {
	now := time.Now()
	scope := &batch.Events

	accountIDs, eventIDs := referencedIDs(scope)
	if err := c.cache.Preload(ctx, c.store, accountIDs, eventIDs); err != nil {
		c.cache.Reset()
		return fmt.Errorf("batch %d-%d: %w", batch.From, batch.To, err)
	}

	for _, h := range c.handlers {
		h.Handler.Handle(scope, c.cache)
	}

	touched := collectTouchedAccounts(scope, c.cache)
	outcome := c.enricher.Enrich(ctx, c.cache, batch.Snapshot(), touched)

	changes := c.cache.Flush()
	if err := c.store.Persist(ctx, changes, batch.To); err != nil {
		c.cache.Reset()
		return fmt.Errorf("persist batch %d-%d: %w", batch.From, batch.To, err)
	}
	c.tracker.updateProcessed(batch.To)

	for _, sink := range c.sinks {
		sink.WriteChangeSet(changes, batch)
		sink.Flush()
	}

	metrics.BatchesProcessed.Inc()
	metrics.BatchDuration.Observe(time.Since(now).Seconds())
	metrics.LastProcessedBlock.Set(float64(batch.To))
	metrics.EntitiesFlushed.WithLabelValues(model.KindAccount.String()).Add(float64(len(changes.Accounts)))
	metrics.EntitiesFlushed.WithLabelValues(model.KindAccountBalance.String()).Add(float64(len(changes.Balances)))
	metrics.EntitiesFlushed.WithLabelValues(model.KindTransfer.String()).Add(float64(len(changes.Transfers)))
	metrics.EntitiesFlushed.WithLabelValues(model.KindFrenBurned.String()).Add(float64(len(changes.FrenBurns)))

	slog.Info("batch complete", "from", batch.From, "to", batch.To,
		"events", scope.Len(), "accounts", outcome.Accounts, "committed", outcome.Committed,
		"entities", changes.Len(), "time taken", time.Since(now).Seconds())
	return nil
}

func referencedIDs(scope interfaces.EventScope) ([]string, map[model.EntityKind][]string) {
	accountIDs := make([]string, 0)
	transfers := make([]string, 0, len(scope.Transfers()))
	for _, ev := range scope.Transfers() {
		accountIDs = append(accountIDs, ev.From, ev.To)
		transfers = append(transfers, ev.ID)
	}
	burns := make([]string, 0, len(scope.FrenBurns()))
	for _, ev := range scope.FrenBurns() {
		accountIDs = append(accountIDs, ev.Who)
		burns = append(burns, ev.ID)
	}
	for _, ev := range scope.IdentityChanges() {
		accountIDs = append(accountIDs, ev.Who)
	}
	return accountIDs, map[model.EntityKind][]string{
		model.KindTransfer:   transfers,
		model.KindFrenBurned: burns,
	}
}
