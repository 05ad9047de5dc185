package core

import (
	"context"
	"errors"
	"io"
	"math/big"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gmseer/helper"
	"gmseer/mocks"
	"gmseer/model"
)

type sliceSource struct {
	batches []*model.Batch
	done    []*model.Batch
}

func (s *sliceSource) Next(ctx context.Context) (*model.Batch, error) {
	if len(s.batches) == 0 {
		return nil, io.EOF
	}
	b := s.batches[0]
	s.batches = s.batches[1:]
	return b, nil
}

func (s *sliceSource) Done(batch *model.Batch) error {
	s.done = append(s.done, batch)
	return nil
}

func gmTransferAndGNBurn() *model.Batch {
	return &model.Batch{
		From:         1,
		To:           500,
		SnapshotHash: "0xabc",
		Events: model.EventSet{
			TransferEvents: []model.TransferEvent{{
				ID: "10-1", BlockNumber: 10, From: "A", To: "B",
				Currency: model.GM, Amount: big.NewInt(100), Fee: big.NewInt(1),
			}},
			BurnEvents: []model.FrenBurnedEvent{{
				ID: "20-1", BlockNumber: 20, Who: "A", Amount: big.NewInt(40), BurnedFor: "GN",
			}},
		},
	}
}

func expectNothingStored(store *mocks.MockStore) {
	store.EXPECT().LoadAccounts(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	store.EXPECT().LoadEventIDs(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
}

func healthyReader(r *mocks.MockStateReader, keys [][]byte) {
	r.EXPECT().SystemAccounts(gomock.Any(), snapshot, keys).
		Return([]*model.NativeAccountData{native(5, 0, 0, 0), native(7, 0, 0, 0)}, nil)
	r.EXPECT().TokenAccounts(gomock.Any(), snapshot, model.GM, keys).
		Return([]*model.TokenAccountData{token(60, 0, 0), token(100, 0, 0)}, nil)
	r.EXPECT().TokenAccounts(gomock.Any(), snapshot, model.GN, keys).
		Return([]*model.TokenAccountData{nil, nil}, nil)
	r.EXPECT().Identities(gomock.Any(), snapshot, keys).
		Return([]*model.IdentityRecord{nil, nil}, nil)
}

func TestCore_ProcessBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	reader := mocks.NewMockStateReader(ctrl)
	sink := mocks.NewMockSink(ctrl)

	store.EXPECT().LoadAccounts(gomock.Any(), []string{"A", "B"}).Return(nil, nil)
	store.EXPECT().LoadEventIDs(gomock.Any(), model.KindTransfer, []string{"10-1"}).Return(nil, nil)
	store.EXPECT().LoadEventIDs(gomock.Any(), model.KindFrenBurned, []string{"20-1"}).Return(nil, nil)
	healthyReader(reader, keysOf("A", "B"))

	var persisted *model.ChangeSet
	store.EXPECT().Persist(gomock.Any(), gomock.Any(), uint64(500)).
		DoAndReturn(func(_ context.Context, changes *model.ChangeSet, _ uint64) error {
			persisted = changes
			return nil
		})
	sink.EXPECT().WriteChangeSet(gomock.Any(), gomock.Any())
	sink.EXPECT().Flush()

	c := New(store, NewEnricher(reader, rawEncoder{}), helper.NewEntityCache(0), sink)
	require.NoError(t, c.ProcessBatch(context.Background(), gmTransferAndGNBurn()))
	require.NotNil(t, persisted)

	require.Len(t, persisted.Accounts, 2)
	a, b := persisted.Accounts[0], persisted.Accounts[1]
	assert.Equal(t, "A", a.ID)
	assert.Equal(t, "B", b.ID)
	assert.Equal(t, "100", a.SentGM.String())
	assert.Equal(t, "100", a.SentGMGN.String())
	assert.Equal(t, "100", b.ReceivedGM.String())
	assert.Equal(t, "100", b.ReceivedGMGN.String())
	assert.Equal(t, "40", a.BurnedForGN.String())
	assert.Equal(t, "40", a.BurnedForGMGN.String())
	assert.Equal(t, "40", a.BurnedTotal.String())
	assert.Equal(t, "0", a.BurnedForGM.String())
	assert.Equal(t, "0", b.SentGM.String())

	require.Len(t, persisted.Transfers, 1)
	assert.Equal(t, "A", persisted.Transfers[0].FromID)
	require.Len(t, persisted.FrenBurns, 1)
	require.NotNil(t, persisted.FrenBurns[0].BurnedFor)
	assert.Equal(t, model.GN, *persisted.FrenBurns[0].BurnedFor)

	balances := make(map[string]*model.AccountBalance)
	for _, bal := range persisted.Balances {
		balances[bal.ID] = bal
	}
	assert.Len(t, balances, 6)
	require.Contains(t, balances, model.BalanceID("A", model.GM))
	assert.Equal(t, "60", balances[model.BalanceID("A", model.GM)].Free.String())
	assert.Equal(t, "60", balances[model.BalanceID("A", model.GM)].Total.String())
	assert.Equal(t, "5", balances[model.BalanceID("A", model.FREN)].Total.String())
	assert.Equal(t, "0", balances[model.BalanceID("A", model.GN)].Total.String())
}

func TestCore_ProcessBatch_PartialEnrichment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	reader := mocks.NewMockStateReader(ctrl)
	expectNothingStored(store)

	keys := keysOf("A", "B")
	reader.EXPECT().SystemAccounts(gomock.Any(), snapshot, keys).Return(nil, errors.New("timeout"))
	reader.EXPECT().TokenAccounts(gomock.Any(), snapshot, gomock.Any(), keys).
		Return([]*model.TokenAccountData{nil, nil}, nil).Times(2)
	reader.EXPECT().Identities(gomock.Any(), snapshot, keys).Return([]*model.IdentityRecord{nil, nil}, nil)

	var persisted *model.ChangeSet
	store.EXPECT().Persist(gomock.Any(), gomock.Any(), uint64(500)).
		DoAndReturn(func(_ context.Context, changes *model.ChangeSet, _ uint64) error {
			persisted = changes
			return nil
		})

	c := New(store, NewEnricher(reader, rawEncoder{}), helper.NewEntityCache(0))
	require.NoError(t, c.ProcessBatch(context.Background(), gmTransferAndGNBurn()))

	// counters still reach the store through the mutators' own upserts
	require.Len(t, persisted.Accounts, 2)
	assert.Equal(t, "100", persisted.Accounts[0].SentGM.String())
	assert.Empty(t, persisted.Balances)
	assert.Len(t, persisted.Transfers, 1)
	assert.Len(t, persisted.FrenBurns, 1)
}

func TestCore_ProcessBatch_SkipsIndexedEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	reader := mocks.NewMockStateReader(ctrl)

	stored := model.NewAccount("A")
	stored.SentGM.SetInt64(100)
	stored.SentGMGN.SetInt64(100)
	store.EXPECT().LoadAccounts(gomock.Any(), []string{"A", "B"}).Return([]*model.Account{stored}, nil)
	store.EXPECT().LoadEventIDs(gomock.Any(), model.KindTransfer, []string{"10-1"}).Return([]string{"10-1"}, nil)
	store.EXPECT().LoadEventIDs(gomock.Any(), model.KindFrenBurned, []string{"20-1"}).Return(nil, nil)
	healthyReader(reader, keysOf("A", "B"))

	var persisted *model.ChangeSet
	store.EXPECT().Persist(gomock.Any(), gomock.Any(), uint64(500)).
		DoAndReturn(func(_ context.Context, changes *model.ChangeSet, _ uint64) error {
			persisted = changes
			return nil
		})

	c := New(store, NewEnricher(reader, rawEncoder{}), helper.NewEntityCache(0))
	require.NoError(t, c.ProcessBatch(context.Background(), gmTransferAndGNBurn()))

	assert.Empty(t, persisted.Transfers)
	require.Len(t, persisted.FrenBurns, 1)
	require.NotEmpty(t, persisted.Accounts)
	assert.Same(t, stored, persisted.Accounts[0])
	assert.Equal(t, "100", stored.SentGM.String(), "replayed transfer must not count twice")
	assert.Equal(t, "40", stored.BurnedTotal.String())
}

func TestCore_ProcessBatch_PersistFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	reader := mocks.NewMockStateReader(ctrl)
	expectNothingStored(store)
	healthyReader(reader, keysOf("A", "B"))
	store.EXPECT().Persist(gomock.Any(), gomock.Any(), uint64(500)).Return(errors.New("disk full"))

	cache := helper.NewEntityCache(16)
	c := New(store, NewEnricher(reader, rawEncoder{}), cache)
	err := c.ProcessBatch(context.Background(), gmTransferAndGNBurn())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist batch 1-500")
	assert.Zero(t, cache.Len())
	_, ok := cache.Account("A")
	assert.False(t, ok, "retained state must not survive a failed persist")
}

func TestCore_ProcessBatch_PreloadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	reader := mocks.NewMockStateReader(ctrl)
	store.EXPECT().LoadAccounts(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	c := New(store, NewEnricher(reader, rawEncoder{}), helper.NewEntityCache(0))
	err := c.ProcessBatch(context.Background(), gmTransferAndGNBurn())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preload accounts")
}

func TestCore_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	reader := mocks.NewMockStateReader(ctrl)
	expectNothingStored(store)

	store.EXPECT().LastProcessed(gomock.Any()).Return(uint64(200), nil)
	processed := make([]uint64, 0)
	store.EXPECT().Persist(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *model.ChangeSet, upTo uint64) error {
			processed = append(processed, upTo)
			return nil
		}).Times(2)

	source := &sliceSource{batches: []*model.Batch{
		{From: 101, To: 200},
		{From: 201, To: 300},
		{From: 250, To: 300},
		{From: 301, To: 400},
	}}
	c := New(store, NewEnricher(reader, rawEncoder{}), helper.NewEntityCache(0))
	require.NoError(t, c.Run(context.Background(), source))

	assert.Equal(t, []uint64{300, 400}, processed)
	assert.Len(t, source.done, 4)
}

func TestCore_RunStopsOnPersistError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	reader := mocks.NewMockStateReader(ctrl)
	expectNothingStored(store)
	store.EXPECT().LastProcessed(gomock.Any()).Return(uint64(0), nil)
	store.EXPECT().Persist(gomock.Any(), gomock.Any(), uint64(10)).Return(errors.New("locked"))

	source := &sliceSource{batches: []*model.Batch{{From: 1, To: 10}, {From: 11, To: 20}}}
	c := New(store, NewEnricher(reader, rawEncoder{}), helper.NewEntityCache(0))
	require.Error(t, c.Run(context.Background(), source))
	assert.Empty(t, source.done)
	assert.Len(t, source.batches, 1)
}

func TestSyncTracker(t *testing.T) {
	s := &syncTracker{}
	assert.True(t, s.shouldProcess(&model.Batch{From: 0, To: 0}))

	updated, last := s.updateProcessed(10)
	assert.True(t, updated)
	assert.Equal(t, uint64(10), last)
	assert.False(t, s.shouldProcess(&model.Batch{From: 5, To: 10}))
	assert.True(t, s.shouldProcess(&model.Batch{From: 5, To: 11}))
	assert.True(t, s.shouldProcess(&model.Batch{From: 50, To: 60}))

	updated, last = s.updateProcessed(9)
	assert.False(t, updated)
	assert.Equal(t, uint64(10), last)
}

func TestCore_RetentionKeepsGatedIdentityOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	reader := mocks.NewMockStateReader(ctrl)
	expectNothingStored(store)

	keys := keysOf("A")
	down := errors.New("unavailable")
	gomock.InOrder(
		reader.EXPECT().SystemAccounts(gomock.Any(), gomock.Any(), keys).Return(nil, down),
		reader.EXPECT().SystemAccounts(gomock.Any(), gomock.Any(), keys).Return(nil, down),
	)
	reader.EXPECT().TokenAccounts(gomock.Any(), gomock.Any(), gomock.Any(), keys).
		Return([]*model.TokenAccountData{nil}, nil).Times(2)
	reader.EXPECT().TokenAccounts(gomock.Any(), gomock.Any(), gomock.Any(), keys).Return(nil, down).Times(2)
	gomock.InOrder(
		reader.EXPECT().Identities(gomock.Any(), gomock.Any(), keys).
			Return([]*model.IdentityRecord{{Display: str("gated")}}, nil),
		reader.EXPECT().Identities(gomock.Any(), gomock.Any(), keys).Return(nil, down),
	)

	var persisted []*model.ChangeSet
	store.EXPECT().Persist(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, changes *model.ChangeSet, _ uint64) error {
			persisted = append(persisted, changes)
			return nil
		}).Times(2)

	c := New(store, NewEnricher(reader, rawEncoder{}), helper.NewEntityCache(100))

	identityOnly := &model.Batch{From: 1, To: 10, Events: model.EventSet{
		IdentityEvents: []model.IdentityEvent{{ID: "5-1", BlockNumber: 5, Name: "IdentitySet", Who: "A"}},
	}}
	require.NoError(t, c.ProcessBatch(context.Background(), identityOnly))
	assert.Empty(t, persisted[0].Accounts)

	selfTransfer := &model.Batch{From: 11, To: 20, Events: model.EventSet{
		TransferEvents: []model.TransferEvent{{
			ID: "15-1", BlockNumber: 15, From: "A", To: "A", Currency: model.GM, Amount: big.NewInt(1),
		}},
	}}
	require.NoError(t, c.ProcessBatch(context.Background(), selfTransfer))
	require.Len(t, persisted[1].Accounts, 1)
	assert.Nil(t, persisted[1].Accounts[0].Display, "identity from a gated batch must not reach the store")
}
