package cli

import (
	"context"
	"log"
	"log/slog"

	"github.com/spf13/cobra"

	"gmseer/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded database schema",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		version, _ := cmd.Flags().GetInt64("version")

		ctx := context.Background()
		store, err := db.NewStore(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer store.Close()

		if err := store.ApplySchema(version); err != nil {
			slog.Error("migration failed", "error", err)
			return
		}
		last, err := store.LastProcessed(ctx)
		if err != nil {
			slog.Error("unable to read sync state", "error", err)
			return
		}
		slog.Info("database ready", "engine", cfg.Database.Engine, "lastProcessed", last)
	},
}

func init() {
	migrateCmd.Flags().Int64("version", db.SchemaLatest, "target schema version, -2 for latest, -1 for the next one")
	rootCmd.AddCommand(migrateCmd)
}
