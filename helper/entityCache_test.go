package helper

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gmseer/mocks"
	"gmseer/model"
)

func TestEntityCache_ReadYourWrites(t *testing.T) {
	c := NewEntityCache(0)

	_, ok := c.Get(model.KindAccount, "alice")
	assert.False(t, ok, "untouched id must be absent")

	acc := model.NewAccount("alice")
	acc.SentGM.SetInt64(7)
	c.Upsert(acc)

	got, ok := c.Account("alice")
	require.True(t, ok)
	assert.Equal(t, acc, got)
	assert.True(t, c.IsDirty(model.KindAccount, "alice"))
}

func TestEntityCache_LastWriteWinsSingleFlushEntry(t *testing.T) {
	c := NewEntityCache(0)
	GetOrCreateAccount(c, "alice")

	var last *model.Account
	for i := 1; i <= 5; i++ {
		last = model.NewAccount("alice")
		last.ReceivedGN.SetInt64(int64(i))
		c.Upsert(last)
	}

	changes := c.Flush()
	require.Len(t, changes.Accounts, 1, "N upserts of one key must flush once")
	assert.Same(t, last, changes.Accounts[0])
	assert.Equal(t, int64(5), changes.Accounts[0].ReceivedGN.Int64())
	assert.Equal(t, 1, changes.Len())
}

func TestEntityCache_FlushOrderAndReset(t *testing.T) {
	c := NewEntityCache(0)
	a := GetOrCreateAccount(c, "a")
	b := GetOrCreateAccount(c, "b")
	balance := GetOrCreateBalance(c, a, model.GM)

	c.Upsert(b)
	c.Upsert(balance)
	c.Upsert(a)
	c.Upsert(b)

	changes := c.Flush()
	assert.Equal(t, []*model.Account{b, a}, changes.Accounts)
	assert.Equal(t, []*model.AccountBalance{balance}, changes.Balances)

	assert.Equal(t, 0, c.Len())
	assert.Zero(t, c.Flush().Len(), "dirty markers must be cleared")
	_, ok := c.Get(model.KindAccount, "a")
	assert.False(t, ok, "entries are dropped when retention is off")
}

func TestEntityCache_TrackIsClean(t *testing.T) {
	c := NewEntityCache(0)
	acc := GetOrCreateAccount(c, "alice")

	assert.False(t, c.IsDirty(model.KindAccount, "alice"))
	assert.Same(t, acc, GetOrCreateAccount(c, "alice"), "fetch-or-create must collapse onto one instance")
	assert.Zero(t, c.Flush().Len())
}

func TestEntityCache_UpsertWithoutLookupPanics(t *testing.T) {
	c := NewEntityCache(0)
	assert.Panics(t, func() {
		c.Upsert(model.NewAccount("ghost"))
	})
}

func TestEntityCache_KindMismatchPanics(t *testing.T) {
	c := NewEntityCache(0)
	c.Track(&model.Transfer{ID: "x"})
	// same id, different kind is a different key
	_, ok := c.Account("x")
	assert.False(t, ok)

	c.entries[Key{Kind: model.KindAccount, ID: "x"}] = &model.Transfer{ID: "x"}
	assert.Panics(t, func() {
		c.Account("x")
	})
}

func TestEntityCache_Retention(t *testing.T) {
	c := NewEntityCache(10)
	acc := GetOrCreateAccount(c, "alice")
	acc.BurnedTotal.SetInt64(3)
	c.Upsert(acc)
	c.Flush()

	got, ok := c.Account("alice")
	require.True(t, ok, "clean entries survive the flush when retention is on")
	assert.Same(t, acc, got)
	assert.False(t, c.IsDirty(model.KindAccount, "alice"))
}

func TestEntityCache_RetainsOnlyFlushedEntries(t *testing.T) {
	c := NewEntityCache(10)
	written := GetOrCreateAccount(c, "alice")
	c.Upsert(written)
	touched := GetOrCreateAccount(c, "bob")
	touched.Display = &[]string{"uncommitted"}[0]
	c.Flush()

	_, ok := c.Account("bob")
	assert.False(t, ok, "entries that were never upserted must not be retained")

	// a retained entry that is read but not upserted again is evicted on the next flush
	alice, ok := c.Account("alice")
	require.True(t, ok)
	assert.Same(t, written, alice)
	alice.Display = &[]string{"uncommitted"}[0]
	c.Flush()

	_, ok = c.Account("alice")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestEntityCache_Preload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := mocks.NewMockEntityLoader(ctrl)
	stored := model.NewAccount("bob")
	stored.SentGN = big.NewInt(42)

	c := NewEntityCache(0)
	cached := GetOrCreateAccount(c, "alice")

	loader.EXPECT().LoadAccounts(gomock.Any(), []string{"bob", "carol"}).Return([]*model.Account{stored}, nil)
	loader.EXPECT().LoadEventIDs(gomock.Any(), model.KindTransfer, []string{"1-1", "1-2"}).Return([]string{"1-2"}, nil)

	err := c.Preload(context.Background(), loader,
		[]string{"alice", "bob", "carol", "bob"},
		map[model.EntityKind][]string{model.KindTransfer: {"1-1", "1-2"}})
	require.NoError(t, err)

	bob, ok := c.Account("bob")
	require.True(t, ok)
	assert.Equal(t, int64(42), bob.SentGN.Int64())
	assert.False(t, c.IsDirty(model.KindAccount, "bob"))

	alice, _ := c.Account("alice")
	assert.Same(t, cached, alice, "preload must not replace cached entries")

	_, ok = c.Account("carol")
	assert.False(t, ok)
	_, ok = c.Transfer("1-2")
	assert.True(t, ok)
	_, ok = c.Transfer("1-1")
	assert.False(t, ok)
}

func TestEntityCache_PreloadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := mocks.NewMockEntityLoader(ctrl)
	loader.EXPECT().LoadAccounts(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	c := NewEntityCache(0)
	err := c.Preload(context.Background(), loader, []string{"alice"}, nil)
	assert.ErrorContains(t, err, "db down")
}

func TestHexAddressEncoder(t *testing.T) {
	enc := NewHexAddressEncoder()

	key, err := enc.ChainKey("0x" + "ab" + "00000000000000000000000000000000000000000000000000000000000000")
	require.NoError(t, err)
	assert.Len(t, key, AccountIDLength)
	assert.Equal(t, byte(0xab), key[0])

	_, err = enc.ChainKey("0x1234")
	assert.Error(t, err)
	_, err = enc.ChainKey("5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY")
	assert.Error(t, err)
}
