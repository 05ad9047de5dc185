package helper

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"gmseer/interfaces"
	"gmseer/model"
)

type Key struct {
	Kind model.EntityKind
	ID   string
}

func keyOf(entity model.Entity) Key {
	return Key{Kind: entity.Kind(), ID: entity.EntityID()}
}

// EntityCache is the identity map and write buffer of one batch. It is not safe for
// concurrent use: mutators and the enricher merge phase run sequentially.
//
// Every key must be looked up (Get, Track or Preload) before it can be upserted, so a
// write never silently replaces state the batch did not read.
type EntityCache struct {
	entries map[Key]model.Entity
	seen    map[Key]struct{}
	dirty   map[Key]struct{}
	order   []Key

	// entities flushed by earlier batches, nil when retention is off
	retained *lru.Cache[Key, model.Entity]
}

func NewEntityCache(retain int) *EntityCache {
	c := &EntityCache{
		entries: make(map[Key]model.Entity),
		seen:    make(map[Key]struct{}),
		dirty:   make(map[Key]struct{}),
	}
	if retain > 0 {
		retained, err := lru.New[Key, model.Entity](retain)
		if err != nil {
			slog.Error("unable to create entity retention cache", "size", retain, "error", err)
		} else {
			c.retained = retained
		}
	}
	return c
}

// Get returns the cached instance for (kind, id) without any I/O.
func (c *EntityCache) Get(kind model.EntityKind, id string) (model.Entity, bool) {
	key := Key{Kind: kind, ID: id}
	c.seen[key] = struct{}{}
	if entity, ok := c.entries[key]; ok {
		return entity, true
	}
	if c.retained != nil {
		if entity, ok := c.retained.Get(key); ok {
			c.entries[key] = entity
			return entity, true
		}
	}
	return nil, false
}

// Track registers an instance the caller just created as a clean entry.
func (c *EntityCache) Track(entity model.Entity) {
	key := keyOf(entity)
	c.seen[key] = struct{}{}
	c.entries[key] = entity
}

// Upsert replaces the cached instance and marks the key for the next flush.
func (c *EntityCache) Upsert(entity model.Entity) {
	key := keyOf(entity)
	if _, ok := c.seen[key]; !ok {
		panic(fmt.Sprintf("entity cache: upsert of %s %q that was never looked up", key.Kind, key.ID))
	}
	c.entries[key] = entity
	if _, ok := c.dirty[key]; !ok {
		c.dirty[key] = struct{}{}
		c.order = append(c.order, key)
	}
}

func (c *EntityCache) IsDirty(kind model.EntityKind, id string) bool {
	_, ok := c.dirty[Key{Kind: kind, ID: id}]
	return ok
}

// Len is the number of entries visible to the current batch.
func (c *EntityCache) Len() int {
	return len(c.entries)
}

// Preload bulk reads accounts and already indexed event records that the batch is
// about to touch. Keys already cached are not read again. Event records are loaded as
// id-only markers so handlers can tell an event was indexed before.
func (c *EntityCache) Preload(ctx context.Context, loader interfaces.EntityLoader, accountIDs []string, eventIDs map[model.EntityKind][]string) error {
	missing := c.missing(model.KindAccount, accountIDs)
	if len(missing) > 0 {
		accounts, err := loader.LoadAccounts(ctx, missing)
		if err != nil {
			return fmt.Errorf("preload accounts: %w", err)
		}
		for _, acc := range accounts {
			c.Track(acc)
		}
	}
	for kind, ids := range eventIDs {
		missing = c.missing(kind, ids)
		if len(missing) == 0 {
			continue
		}
		known, err := loader.LoadEventIDs(ctx, kind, missing)
		if err != nil {
			return fmt.Errorf("preload %s ids: %w", kind, err)
		}
		for _, id := range known {
			switch kind {
			case model.KindTransfer:
				c.Track(&model.Transfer{ID: id})
			case model.KindFrenBurned:
				c.Track(&model.FrenBurned{ID: id})
			}
		}
	}
	return nil
}

func (c *EntityCache) missing(kind model.EntityKind, ids []string) []string {
	missing := make([]string, 0, len(ids))
	dedup := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := dedup[id]; ok {
			continue
		}
		dedup[id] = struct{}{}
		key := Key{Kind: kind, ID: id}
		if _, ok := c.entries[key]; ok {
			continue
		}
		if c.retained != nil && c.retained.Contains(key) {
			continue
		}
		missing = append(missing, id)
	}
	return missing
}

// Flush hands out every dirty entity exactly once, in first-upsert order, and starts a
// new batch. With retention enabled only the flushed entities are kept: a clean entry
// may carry in-memory changes that were never committed, so it is evicted and read
// from the store again next time.
func (c *EntityCache) Flush() *model.ChangeSet {
	changes := &model.ChangeSet{}
	for _, key := range c.order {
		changes.Add(c.entries[key])
	}
	if c.retained != nil {
		for key, entity := range c.entries {
			if _, ok := c.dirty[key]; ok {
				c.retained.Add(key, entity)
			} else {
				c.retained.Remove(key)
			}
		}
	}
	c.entries = make(map[Key]model.Entity)
	c.seen = make(map[Key]struct{})
	c.dirty = make(map[Key]struct{})
	c.order = nil
	return changes
}

func (c *EntityCache) Account(id string) (*model.Account, bool) {
	return getAs[*model.Account](c, model.KindAccount, id)
}

func (c *EntityCache) Balance(id string) (*model.AccountBalance, bool) {
	return getAs[*model.AccountBalance](c, model.KindAccountBalance, id)
}

func (c *EntityCache) Transfer(id string) (*model.Transfer, bool) {
	return getAs[*model.Transfer](c, model.KindTransfer, id)
}

func (c *EntityCache) FrenBurned(id string) (*model.FrenBurned, bool) {
	return getAs[*model.FrenBurned](c, model.KindFrenBurned, id)
}

func getAs[E model.Entity](c *EntityCache, kind model.EntityKind, id string) (E, bool) {
	var zero E
	entity, ok := c.Get(kind, id)
	if !ok {
		return zero, false
	}
	typed, ok := entity.(E)
	if !ok {
		panic(fmt.Sprintf("entity cache: %s %q holds %T", kind, id, entity))
	}
	return typed, true
}

// Reset drops everything, retained entries included. Used when a batch could not be
// persisted and cached state may be ahead of the store.
func (c *EntityCache) Reset() {
	c.entries = make(map[Key]model.Entity)
	c.seen = make(map[Key]struct{})
	c.dirty = make(map[Key]struct{})
	c.order = nil
	if c.retained != nil {
		c.retained.Purge()
	}
}
