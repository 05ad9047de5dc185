package cli

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gmseer/metrics"
	"gmseer/spool"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process the spool dir and keep following new batch files",
	Run:   watch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func watch(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Spool.Dir == "" {
		log.Fatalf("spool.dir is not set")
	}
	slog.Info("starting gmseer", "spool", cfg.Spool.Dir, "engine", cfg.Database.Engine)

	dir, err := spool.NewDirSource(cfg.Spool.Dir, cfg.Spool.DoneDir, cfg.Spool.Pattern)
	if err != nil {
		log.Fatalf("Failed to open spool: %v", err)
	}
	follower := spool.NewFollower(dir, cfg.Spool.Poll)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	metrics.Serve(ctx, cfg.Metrics.Addr)

	ix, err := newIndexer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to start indexer: %v", err)
	}
	defer ix.Close()

	go func() {
		if err := follower.Watch(ctx); err != nil {
			slog.Error("spool watcher stopped, falling back to polling", "error", err, "poll", cfg.Spool.Poll)
		}
	}()

	if err := ix.core.Run(ctx, follower); err != nil {
		slog.Error("indexer stopped", "error", err)
	}
	ix.core.Stop()
}
