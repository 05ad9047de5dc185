package db

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed schema/pgsql/*.sql
var EmbedPgsqlSchema embed.FS

//go:embed schema/sqlite/*.sql
var EmbedSqliteSchema embed.FS

const (
	// SchemaLatest applies every pending migration.
	SchemaLatest int64 = -2
	// SchemaNext applies a single migration.
	SchemaNext int64 = -1
)

func (s *Store) setDialect() (string, error) {
	var engineDialect, schemaDirectory string
	switch s.engine {
	case EnginePgsql:
		goose.SetBaseFS(EmbedPgsqlSchema)
		engineDialect = "postgres"
		schemaDirectory = "schema/pgsql"
	case EngineSqlite:
		goose.SetBaseFS(EmbedSqliteSchema)
		engineDialect = "sqlite3"
		schemaDirectory = "schema/sqlite"
	default:
		return "", fmt.Errorf("unknown database engine %q", s.engine)
	}
	if err := goose.SetDialect(engineDialect); err != nil {
		return "", err
	}
	return schemaDirectory, nil
}

// ApplySchema migrates the database to version, or to SchemaLatest / SchemaNext.
func (s *Store) ApplySchema(version int64) error {
	schemaDirectory, err := s.setDialect()
	if err != nil {
		return err
	}

	switch version {
	case SchemaLatest:
		err = goose.Up(s.db.DB, schemaDirectory, goose.WithAllowMissing())
	case SchemaNext:
		err = goose.UpByOne(s.db.DB, schemaDirectory, goose.WithAllowMissing())
	default:
		err = goose.UpTo(s.db.DB, schemaDirectory, version, goose.WithAllowMissing())
	}
	if err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	current, err := s.SchemaVersion(context.Background())
	if err == nil {
		slog.Info("database schema applied", "engine", s.engine, "version", current)
	}
	return nil
}

func (s *Store) SchemaVersion(ctx context.Context) (int64, error) {
	if _, err := s.setDialect(); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, s.db.DB)
}
