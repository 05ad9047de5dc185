package db

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gmseer/config"
	"gmseer/model"
)

func newSqliteStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(context.Background(), config.DatabaseConfig{
		Engine: string(EngineSqlite),
		Sqlite: config.SqliteConfig{File: filepath.Join(t.TempDir(), "seer.db")},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.ApplySchema(SchemaLatest))
	return store
}

func str(s string) *string { return &s }

func sampleChangeSet() *model.ChangeSet {
	a := model.NewAccount("A")
	a.SentGM.SetInt64(100)
	a.SentGMGN.SetInt64(100)
	a.BurnedForGN.SetInt64(40)
	a.BurnedForGMGN.SetInt64(40)
	a.BurnedTotal.SetInt64(40)
	a.Display = str("alice")
	a.Verified = true

	b := model.NewAccount("B")
	huge, _ := new(big.Int).SetString("340282366920938463463374607431768211456", 10)
	b.ReceivedGM.Set(huge)
	b.ReceivedGMGN.Set(huge)

	fren := model.NewAccountBalance(a, model.FREN)
	fren.Free.SetInt64(5)
	fren.Total.SetInt64(5)
	fren.MiscFrozen = big.NewInt(1)
	fren.FeeFrozen = big.NewInt(2)
	fren.UpdatedAt = 500
	gm := model.NewAccountBalance(a, model.GM)
	gm.Free.SetInt64(60)
	gm.Total.SetInt64(60)
	gm.Frozen = new(big.Int)
	gm.UpdatedAt = 500

	gn := model.GN
	return &model.ChangeSet{
		Accounts: []*model.Account{a, b},
		Balances: []*model.AccountBalance{fren, gm},
		Transfers: []*model.Transfer{{
			ID: "10-1", BlockNumber: 10, Timestamp: time.UnixMilli(1_700_000_000_000),
			FromID: "A", ToID: "B", Currency: model.GM, Amount: big.NewInt(100),
		}},
		FrenBurns: []*model.FrenBurned{{
			ID: "20-1", BlockNumber: 20, AccountID: "A", BurnedAmount: big.NewInt(40), BurnedFor: &gn,
		}},
	}
}

func TestStore_PersistAndLoad(t *testing.T) {
	store := newSqliteStore(t)
	ctx := context.Background()

	last, err := store.LastProcessed(ctx)
	require.NoError(t, err)
	assert.Zero(t, last)

	require.NoError(t, store.Persist(ctx, sampleChangeSet(), 500))

	last, err = store.LastProcessed(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), last)

	accounts, err := store.LoadAccounts(ctx, []string{"A", "B", "C"})
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	byID := map[string]*model.Account{accounts[0].ID: accounts[0], accounts[1].ID: accounts[1]}

	a := byID["A"]
	require.NotNil(t, a)
	assert.Equal(t, "100", a.SentGM.String())
	assert.Equal(t, "40", a.BurnedTotal.String())
	assert.Equal(t, "0", a.ReceivedGN.String())
	require.NotNil(t, a.Display)
	assert.Equal(t, "alice", *a.Display)
	assert.Nil(t, a.Twitter)
	assert.True(t, a.Verified)
	assert.Equal(t, "340282366920938463463374607431768211456", byID["B"].ReceivedGM.String())

	balances, err := store.LoadBalances(ctx, "A")
	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.Equal(t, model.FREN, balances[0].Currency)
	assert.Equal(t, "1", balances[0].MiscFrozen.String())
	assert.Nil(t, balances[0].Frozen)
	assert.Equal(t, model.GM, balances[1].Currency)
	assert.Equal(t, "0", balances[1].Frozen.String())
	assert.Equal(t, uint64(500), balances[1].UpdatedAt)

	ids, err := store.LoadEventIDs(ctx, model.KindTransfer, []string{"10-1", "10-2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"10-1"}, ids)
	ids, err = store.LoadEventIDs(ctx, model.KindFrenBurned, []string{"20-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"20-1"}, ids)

	_, err = store.LoadEventIDs(ctx, model.KindAccount, []string{"A"})
	assert.Error(t, err)
}

func TestStore_PersistOverwrites(t *testing.T) {
	store := newSqliteStore(t)
	ctx := context.Background()
	require.NoError(t, store.Persist(ctx, sampleChangeSet(), 500))

	changes := sampleChangeSet()
	changes.Accounts[0].SentGM.SetInt64(250)
	changes.Accounts[0].Display = nil
	changes.Balances[1].Free.SetInt64(1)
	changes.Transfers[0].Amount = big.NewInt(999)
	require.NoError(t, store.Persist(ctx, changes, 600))

	accounts, err := store.LoadAccounts(ctx, []string{"A"})
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "250", accounts[0].SentGM.String())
	assert.Nil(t, accounts[0].Display)

	balances, err := store.LoadBalances(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, "1", balances[1].Free.String())

	var amount string
	require.NoError(t, store.db.Get(&amount, "SELECT amount FROM transfers WHERE id = $1", "10-1"))
	assert.Equal(t, "100", amount, "transfers are write-once")

	last, err := store.LastProcessed(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(600), last)
}

func TestStore_PersistManyRows(t *testing.T) {
	store := newSqliteStore(t)
	ctx := context.Background()

	changes := &model.ChangeSet{}
	ids := make([]string, 0, 1200)
	for i := 0; i < 1200; i++ {
		acc := model.NewAccount(big.NewInt(int64(i)).Text(16))
		acc.BurnedTotal.SetInt64(int64(i))
		changes.Accounts = append(changes.Accounts, acc)
		ids = append(ids, acc.ID)
	}
	require.NoError(t, store.Persist(ctx, changes, 1))

	accounts, err := store.LoadAccounts(ctx, ids)
	require.NoError(t, err)
	assert.Len(t, accounts, 1200)
}

func TestStore_EmptyChangeSetMovesMarker(t *testing.T) {
	store := newSqliteStore(t)
	ctx := context.Background()
	require.NoError(t, store.Persist(ctx, &model.ChangeSet{}, 42))
	last, err := store.LastProcessed(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), last)

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20260901000000), version)
}

func TestNewStore_UnknownEngine(t *testing.T) {
	_, err := NewStore(context.Background(), config.DatabaseConfig{Engine: "mysql"})
	assert.Error(t, err)
}

func TestSelectList(t *testing.T) {
	assert.Equal(t, "id, CAST(free AS TEXT) AS free", selectList([]string{"id", "free"}, "id"))
}

func TestChangeSetPoints(t *testing.T) {
	changes := sampleChangeSet()
	points := changeSetPoints(changes, &model.Batch{From: 1, To: 500, Source: "batch-1.json"})
	require.Len(t, points, 5)

	names := make([]string, 0, len(points))
	for _, p := range points {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"transfer", "fren_burned", "balance", "balance", "batch"}, names)
	assert.Equal(t, time.UnixMilli(1_700_000_000_000), points[0].Time())

	tags := make(map[string]string)
	for _, tag := range points[1].TagList() {
		tags[tag.Key] = tag.Value
	}
	assert.Equal(t, "GN", tags["burnedFor"])
}
