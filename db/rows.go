package db

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"gmseer/model"
)

// Amounts are stored as decimal text; pgsql keeps them in NUMERIC columns and casts
// them back on read.

type accountRow struct {
	ID               string         `db:"id"`
	ReceivedGM       string         `db:"received_gm"`
	ReceivedGN       string         `db:"received_gn"`
	ReceivedGMGN     string         `db:"received_gmgn"`
	SentGM           string         `db:"sent_gm"`
	SentGN           string         `db:"sent_gn"`
	SentGMGN         string         `db:"sent_gmgn"`
	BurnedForGM      string         `db:"burned_for_gm"`
	BurnedForGN      string         `db:"burned_for_gn"`
	BurnedForGMGN    string         `db:"burned_for_gmgn"`
	BurnedForNothing string         `db:"burned_for_nothing"`
	BurnedTotal      string         `db:"burned_total"`
	Display          sql.NullString `db:"display"`
	Discord          sql.NullString `db:"discord"`
	Twitter          sql.NullString `db:"twitter"`
	Verified         bool           `db:"verified"`
}

var accountColumns = []string{
	"id", "received_gm", "received_gn", "received_gmgn", "sent_gm", "sent_gn", "sent_gmgn",
	"burned_for_gm", "burned_for_gn", "burned_for_gmgn", "burned_for_nothing", "burned_total",
	"display", "discord", "twitter", "verified",
}

var accountSelectColumns = selectList(accountColumns, "id", "display", "discord", "twitter", "verified")

type balanceRow struct {
	ID         string         `db:"id"`
	AccountID  string         `db:"account_id"`
	Currency   string         `db:"currency"`
	Free       string         `db:"free"`
	Reserved   string         `db:"reserved"`
	Total      string         `db:"total"`
	MiscFrozen sql.NullString `db:"misc_frozen"`
	FeeFrozen  sql.NullString `db:"fee_frozen"`
	Frozen     sql.NullString `db:"frozen"`
	UpdatedAt  int64          `db:"updated_at"`
}

var balanceColumns = []string{
	"id", "account_id", "currency", "free", "reserved", "total", "misc_frozen", "fee_frozen", "frozen", "updated_at",
}

var balanceSelectColumns = selectList(balanceColumns, "id", "account_id", "currency", "updated_at")

var transferColumns = []string{
	"id", "block_number", "timestamp", "extrinsic_hash", "from_id", "to_id", "currency", "amount", "fee",
}

var frenBurnColumns = []string{
	"id", "block_number", "timestamp", "extrinsic_hash", "account_id", "burned_amount", "burned_for",
}

// selectList casts every column except the plain ones to text.
func selectList(columns []string, plain ...string) string {
	keep := make(map[string]struct{}, len(plain))
	for _, c := range plain {
		keep[c] = struct{}{}
	}
	list := make([]string, 0, len(columns))
	for _, c := range columns {
		if _, ok := keep[c]; ok {
			list = append(list, c)
			continue
		}
		list = append(list, fmt.Sprintf("CAST(%s AS TEXT) AS %s", c, c))
	}
	return strings.Join(list, ", ")
}

func parseAmount(column, v string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(v, 10)
	if !ok {
		return nil, fmt.Errorf("invalid %s value %q", column, v)
	}
	return n, nil
}

func parseNullAmount(column string, v sql.NullString) (*big.Int, error) {
	if !v.Valid {
		return nil, nil
	}
	return parseAmount(column, v.String)
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func (r *accountRow) toModel() (*model.Account, error) {
	acc := &model.Account{
		ID:       r.ID,
		Display:  nullString(r.Display),
		Discord:  nullString(r.Discord),
		Twitter:  nullString(r.Twitter),
		Verified: r.Verified,
	}
	fields := []struct {
		column string
		value  string
		target **big.Int
	}{
		{"received_gm", r.ReceivedGM, &acc.ReceivedGM},
		{"received_gn", r.ReceivedGN, &acc.ReceivedGN},
		{"received_gmgn", r.ReceivedGMGN, &acc.ReceivedGMGN},
		{"sent_gm", r.SentGM, &acc.SentGM},
		{"sent_gn", r.SentGN, &acc.SentGN},
		{"sent_gmgn", r.SentGMGN, &acc.SentGMGN},
		{"burned_for_gm", r.BurnedForGM, &acc.BurnedForGM},
		{"burned_for_gn", r.BurnedForGN, &acc.BurnedForGN},
		{"burned_for_gmgn", r.BurnedForGMGN, &acc.BurnedForGMGN},
		{"burned_for_nothing", r.BurnedForNothing, &acc.BurnedForNothing},
		{"burned_total", r.BurnedTotal, &acc.BurnedTotal},
	}
	for _, f := range fields {
		v, err := parseAmount(f.column, f.value)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", r.ID, err)
		}
		*f.target = v
	}
	return acc, nil
}

func (r *balanceRow) toModel() (*model.AccountBalance, error) {
	currency, ok := model.ParseCurrency(r.Currency)
	if !ok {
		return nil, fmt.Errorf("balance %s: unknown currency %q", r.ID, r.Currency)
	}
	b := &model.AccountBalance{
		ID:        r.ID,
		AccountID: r.AccountID,
		Currency:  currency,
		UpdatedAt: uint64(r.UpdatedAt),
	}
	var err error
	if b.Free, err = parseAmount("free", r.Free); err != nil {
		return nil, err
	}
	if b.Reserved, err = parseAmount("reserved", r.Reserved); err != nil {
		return nil, err
	}
	if b.Total, err = parseAmount("total", r.Total); err != nil {
		return nil, err
	}
	if b.MiscFrozen, err = parseNullAmount("misc_frozen", r.MiscFrozen); err != nil {
		return nil, err
	}
	if b.FeeFrozen, err = parseNullAmount("fee_frozen", r.FeeFrozen); err != nil {
		return nil, err
	}
	if b.Frozen, err = parseNullAmount("frozen", r.Frozen); err != nil {
		return nil, err
	}
	return b, nil
}

func amountArg(v *big.Int) any {
	if v == nil {
		return nil
	}
	return v.String()
}

func counterArg(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func timeArg(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func (s *Store) upsertAccounts(ctx context.Context, tx *sqlx.Tx, accounts []*model.Account) error {
	rows := make([][]any, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, []any{
			a.ID,
			counterArg(a.ReceivedGM), counterArg(a.ReceivedGN), counterArg(a.ReceivedGMGN),
			counterArg(a.SentGM), counterArg(a.SentGN), counterArg(a.SentGMGN),
			counterArg(a.BurnedForGM), counterArg(a.BurnedForGN), counterArg(a.BurnedForGMGN),
			counterArg(a.BurnedForNothing), counterArg(a.BurnedTotal),
			a.Display, a.Discord, a.Twitter, a.Verified,
		})
	}
	return s.insertRows(ctx, tx, "accounts", accountColumns, rows, true)
}

func (s *Store) upsertBalances(ctx context.Context, tx *sqlx.Tx, balances []*model.AccountBalance) error {
	rows := make([][]any, 0, len(balances))
	for _, b := range balances {
		rows = append(rows, []any{
			b.ID, b.AccountID, b.Currency.String(),
			counterArg(b.Free), counterArg(b.Reserved), counterArg(b.Total),
			amountArg(b.MiscFrozen), amountArg(b.FeeFrozen), amountArg(b.Frozen),
			int64(b.UpdatedAt),
		})
	}
	return s.insertRows(ctx, tx, "account_balances", balanceColumns, rows, true)
}

func (s *Store) insertTransfers(ctx context.Context, tx *sqlx.Tx, transfers []*model.Transfer) error {
	rows := make([][]any, 0, len(transfers))
	for _, t := range transfers {
		rows = append(rows, []any{
			t.ID, int64(t.BlockNumber), timeArg(t.Timestamp), t.ExtrinsicHash,
			t.FromID, t.ToID, t.Currency.String(), counterArg(t.Amount), amountArg(t.Fee),
		})
	}
	return s.insertRows(ctx, tx, "transfers", transferColumns, rows, false)
}

func (s *Store) insertFrenBurns(ctx context.Context, tx *sqlx.Tx, burns []*model.FrenBurned) error {
	rows := make([][]any, 0, len(burns))
	for _, b := range burns {
		var burnedFor any
		if b.BurnedFor != nil {
			burnedFor = b.BurnedFor.String()
		}
		rows = append(rows, []any{
			b.ID, int64(b.BlockNumber), timeArg(b.Timestamp), b.ExtrinsicHash,
			b.AccountID, counterArg(b.BurnedAmount), burnedFor,
		})
	}
	return s.insertRows(ctx, tx, "fren_burns", frenBurnColumns, rows, false)
}

// insertRows writes rows with multi-value inserts. Mutable tables replace existing
// rows by id; write-once tables keep the first version.
func (s *Store) insertRows(ctx context.Context, tx *sqlx.Tx, table string, columns []string, rows [][]any, replace bool) error {
	return forChunks(rows, insertChunk, func(chunk [][]any) error {
		var sql strings.Builder
		if replace {
			fmt.Fprint(&sql, s.engineQuery(map[Engine]string{
				EnginePgsql:  "INSERT INTO ",
				EngineSqlite: "INSERT OR REPLACE INTO ",
			}))
		} else {
			fmt.Fprint(&sql, s.engineQuery(map[Engine]string{
				EnginePgsql:  "INSERT INTO ",
				EngineSqlite: "INSERT OR IGNORE INTO ",
			}))
		}
		fmt.Fprintf(&sql, "%s (%s) VALUES ", table, strings.Join(columns, ", "))

		fieldCount := len(columns)
		args := make([]any, 0, len(chunk)*fieldCount)
		for i, row := range chunk {
			if i > 0 {
				fmt.Fprint(&sql, ", ")
			}
			fmt.Fprint(&sql, "(")
			for f := 0; f < fieldCount; f++ {
				if f > 0 {
					fmt.Fprint(&sql, ", ")
				}
				fmt.Fprintf(&sql, "$%v", len(args)+f+1)
			}
			fmt.Fprint(&sql, ")")
			args = append(args, row...)
		}

		if s.engine == EnginePgsql {
			if replace {
				updates := make([]string, 0, fieldCount-1)
				for _, c := range columns[1:] {
					updates = append(updates, fmt.Sprintf("%s = excluded.%s", c, c))
				}
				fmt.Fprintf(&sql, " ON CONFLICT (id) DO UPDATE SET %s", strings.Join(updates, ", "))
			} else {
				fmt.Fprint(&sql, " ON CONFLICT (id) DO NOTHING")
			}
		}

		_, err := tx.ExecContext(ctx, sql.String(), args...)
		return err
	})
}
