package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"

	"gmseer/config"
	"gmseer/interfaces"
	"gmseer/model"
)

type Engine string

const (
	EngineSqlite Engine = "sqlite"
	EnginePgsql  Engine = "pgsql"
	engineAny    Engine = ""
)

// rows per multi-value insert and ids per IN clause
const (
	insertChunk = 500
	selectChunk = 1000
)

// Store persists the entity graph in sqlite or postgres. Every batch is written in a
// single transaction together with the last processed block.
type Store struct {
	engine Engine
	db     *sqlx.DB
	// sqlite allows a single writer
	writerMutex sync.Mutex
}

var _ interfaces.Store = (*Store)(nil)

func checkDbConn(ctx context.Context, dbConn *sqlx.DB, name string) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := dbConn.PingContext(ctx); err != nil {
		return fmt.Errorf("unable to ping %s: %w", name, err)
	}
	return nil
}

func connLimits(maxOpen, maxIdle int) (int, int) {
	if maxOpen == 0 {
		maxOpen = 50
	}
	if maxIdle == 0 {
		maxIdle = 10
	}
	if maxOpen < maxIdle {
		maxIdle = maxOpen
	}
	return maxOpen, maxIdle
}

func openSqlite(cfg config.SqliteConfig) (*sqlx.DB, error) {
	maxOpen, maxIdle := connLimits(cfg.MaxOpenConns, cfg.MaxIdleConns)
	slog.Info("initializing sqlite connection", "file", cfg.File, "maxIdle", maxIdle, "maxOpen", maxOpen)
	dbConn, err := sqlx.Open("sqlite", fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", cfg.File))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	dbConn.SetConnMaxIdleTime(0)
	dbConn.SetConnMaxLifetime(0)
	dbConn.SetMaxOpenConns(maxOpen)
	dbConn.SetMaxIdleConns(maxIdle)
	return dbConn, nil
}

func openPgsql(cfg config.PgsqlConfig) (*sqlx.DB, error) {
	maxOpen, maxIdle := connLimits(cfg.MaxOpenConns, cfg.MaxIdleConns)
	slog.Info("initializing pgsql connection", "host", cfg.Host, "maxIdle", maxIdle, "maxOpen", maxOpen)
	dbConn, err := sqlx.Open("pgx", fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name))
	if err != nil {
		return nil, fmt.Errorf("open pgsql database: %w", err)
	}
	dbConn.SetConnMaxIdleTime(30 * time.Second)
	dbConn.SetConnMaxLifetime(60 * time.Second)
	dbConn.SetMaxOpenConns(maxOpen)
	dbConn.SetMaxIdleConns(maxIdle)
	return dbConn, nil
}

func NewStore(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	var (
		dbConn *sqlx.DB
		err    error
	)
	engine := Engine(cfg.Engine)
	switch engine {
	case EngineSqlite:
		dbConn, err = openSqlite(cfg.Sqlite)
	case EnginePgsql:
		dbConn, err = openPgsql(cfg.Pgsql)
	default:
		return nil, fmt.Errorf("unknown database engine type: %q", cfg.Engine)
	}
	if err != nil {
		return nil, err
	}
	if err := checkDbConn(ctx, dbConn, "database"); err != nil {
		_ = dbConn.Close()
		return nil, err
	}
	return &Store{engine: engine, db: dbConn}, nil
}

func (s *Store) engineQuery(queryMap map[Engine]string) string {
	if q, ok := queryMap[s.engine]; ok {
		return q
	}
	return queryMap[engineAny]
}

func (s *Store) runTransaction(ctx context.Context, handler func(tx *sqlx.Tx) error) error {
	if s.engine == EngineSqlite {
		s.writerMutex.Lock()
		defer s.writerMutex.Unlock()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting db transaction: %w", err)
	}
	defer tx.Rollback()

	if err := handler(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing db transaction: %w", err)
	}
	return nil
}

// Persist writes a batch's change set and moves the sync marker in one transaction.
func (s *Store) Persist(ctx context.Context, changes *model.ChangeSet, processedUpTo uint64) error {
	return s.runTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.upsertAccounts(ctx, tx, changes.Accounts); err != nil {
			return fmt.Errorf("upsert accounts: %w", err)
		}
		if err := s.upsertBalances(ctx, tx, changes.Balances); err != nil {
			return fmt.Errorf("upsert balances: %w", err)
		}
		if err := s.insertTransfers(ctx, tx, changes.Transfers); err != nil {
			return fmt.Errorf("insert transfers: %w", err)
		}
		if err := s.insertFrenBurns(ctx, tx, changes.FrenBurns); err != nil {
			return fmt.Errorf("insert burns: %w", err)
		}
		return s.saveLastProcessed(ctx, tx, processedUpTo)
	})
}

func (s *Store) saveLastProcessed(ctx context.Context, tx *sqlx.Tx, block uint64) error {
	_, err := tx.ExecContext(ctx, s.engineQuery(map[Engine]string{
		EnginePgsql:  "INSERT INTO sync_state (id, last_processed) VALUES (1, $1) ON CONFLICT (id) DO UPDATE SET last_processed = excluded.last_processed",
		EngineSqlite: "INSERT OR REPLACE INTO sync_state (id, last_processed) VALUES (1, $1)",
	}), int64(block))
	if err != nil {
		return fmt.Errorf("save last processed: %w", err)
	}
	return nil
}

func (s *Store) LastProcessed(ctx context.Context) (uint64, error) {
	var last int64
	err := s.db.GetContext(ctx, &last, "SELECT last_processed FROM sync_state WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read last processed: %w", err)
	}
	return uint64(last), nil
}

func (s *Store) LoadAccounts(ctx context.Context, ids []string) ([]*model.Account, error) {
	accounts := make([]*model.Account, 0, len(ids))
	err := forChunks(ids, selectChunk, func(chunk []string) error {
		query, args, err := sqlx.In("SELECT "+accountSelectColumns+" FROM accounts WHERE id IN (?)", chunk)
		if err != nil {
			return err
		}
		rows := make([]*accountRow, 0, len(chunk))
		if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
			return err
		}
		for _, row := range rows {
			acc, err := row.toModel()
			if err != nil {
				return err
			}
			accounts = append(accounts, acc)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	return accounts, nil
}

func (s *Store) LoadEventIDs(ctx context.Context, kind model.EntityKind, ids []string) ([]string, error) {
	var table string
	switch kind {
	case model.KindTransfer:
		table = "transfers"
	case model.KindFrenBurned:
		table = "fren_burns"
	default:
		return nil, fmt.Errorf("no event table for %s", kind)
	}
	known := make([]string, 0)
	err := forChunks(ids, selectChunk, func(chunk []string) error {
		query, args, err := sqlx.In("SELECT id FROM "+table+" WHERE id IN (?)", chunk)
		if err != nil {
			return err
		}
		found := make([]string, 0)
		if err := s.db.SelectContext(ctx, &found, s.db.Rebind(query), args...); err != nil {
			return err
		}
		known = append(known, found...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load %s ids: %w", kind, err)
	}
	return known, nil
}

// LoadBalances returns the stored balances of one account.
func (s *Store) LoadBalances(ctx context.Context, accountID string) ([]*model.AccountBalance, error) {
	rows := make([]*balanceRow, 0, len(model.Currencies))
	err := s.db.SelectContext(ctx, &rows, "SELECT "+balanceSelectColumns+" FROM account_balances WHERE account_id = $1 ORDER BY currency", accountID)
	if err != nil {
		return nil, fmt.Errorf("load balances: %w", err)
	}
	balances := make([]*model.AccountBalance, 0, len(rows))
	for _, row := range rows {
		b, err := row.toModel()
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func forChunks[T any](items []T, size int, fn func([]T) error) error {
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		if err := fn(items[start:end]); err != nil {
			return err
		}
	}
	return nil
}
