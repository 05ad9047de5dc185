package cli

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gmseer/interfaces"
	"gmseer/metrics"
	"gmseer/spool"
)

var replayCmd = &cobra.Command{
	Use:   "replay [batch files...]",
	Short: "Process the given batch files, or everything pending in the spool dir, and exit",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var source interfaces.BatchSource
		if len(args) > 0 {
			source = spool.NewFileSource(args...)
		} else {
			if cfg.Spool.Dir == "" {
				log.Fatalf("No batch files given and spool.dir is not set")
			}
			source, err = spool.NewDirSource(cfg.Spool.Dir, cfg.Spool.DoneDir, cfg.Spool.Pattern)
			if err != nil {
				log.Fatalf("Failed to open spool: %v", err)
			}
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		metrics.Serve(ctx, cfg.Metrics.Addr)

		ix, err := newIndexer(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to start indexer: %v", err)
		}
		defer ix.Close()

		slog.Info("starting replay", "files", len(args), "spool", cfg.Spool.Dir)
		if err := ix.core.Run(ctx, source); err != nil {
			slog.Error("replay stopped", "error", err)
			return
		}
		ix.core.Stop()
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
