package cli

import (
	"context"
	"fmt"
	"log/slog"

	"gmseer/config"
	"gmseer/core"
	"gmseer/db"
	"gmseer/helper"
	"gmseer/interfaces"
	"gmseer/net"
)

// indexer bundles a core with the resources it holds open.
type indexer struct {
	core  interfaces.Core
	store *db.Store
	sinks []interfaces.Sink
	pool  *net.ConnectionPool
}

func (ix *indexer) Close() {
	for _, sink := range ix.sinks {
		sink.Close()
	}
	ix.pool.Close()
	if err := ix.store.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

func newIndexer(ctx context.Context, cfg config.Config) (*indexer, error) {
	if len(cfg.Node.RPC.URLs) == 0 {
		return nil, fmt.Errorf("no state gateway configured (node.rpc.urls)")
	}
	store, err := db.NewStore(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := store.ApplySchema(db.SchemaLatest); err != nil {
		_ = store.Close()
		return nil, err
	}

	pool := net.NewConnectionPool(cfg.Node.RPC.URLs, cfg.Node.RPC.MaxConnections)
	if pool.Size() == 0 {
		_ = store.Close()
		return nil, net.ErrNoConnection
	}
	gateway := net.NewGateway(net.NewConnectionProvider(pool), cfg.Node.RPC.ChunkSize, cfg.Node.RPC.Timeout)
	enricher := core.NewEnricher(net.NewChainState(gateway), helper.NewHexAddressEncoder())

	sinks := make([]interfaces.Sink, 0, 1)
	if cfg.InfluxDB.Enabled {
		sinks = append(sinks, db.NewInfluxSink(cfg.InfluxDB))
	}

	c := core.New(store, enricher, helper.NewEntityCache(cfg.Cache.Retain), sinks...)
	return &indexer{core: c, store: store, sinks: sinks, pool: pool}, nil
}
