package model

import (
	"math/big"
	"time"
)

// EntityKind identifies the table an entity belongs to. Together with the id it forms
// the entity cache key.
type EntityKind uint8

const (
	KindAccount EntityKind = iota + 1
	KindAccountBalance
	KindTransfer
	KindFrenBurned
)

func (k EntityKind) String() string {
	switch k {
	case KindAccount:
		return "account"
	case KindAccountBalance:
		return "account_balance"
	case KindTransfer:
		return "transfer"
	case KindFrenBurned:
		return "fren_burned"
	}
	return "unknown"
}

// Entity is implemented by every persisted domain object.
type Entity interface {
	Kind() EntityKind
	EntityID() string
}

// Account is keyed by address. Counters only ever grow.
type Account struct {
	ID string

	ReceivedGM   *big.Int
	ReceivedGN   *big.Int
	ReceivedGMGN *big.Int
	SentGM       *big.Int
	SentGN       *big.Int
	SentGMGN     *big.Int

	BurnedForGM      *big.Int
	BurnedForGN      *big.Int
	BurnedForGMGN    *big.Int
	BurnedForNothing *big.Int
	BurnedTotal      *big.Int

	Display  *string
	Discord  *string
	Twitter  *string
	Verified bool
}

func NewAccount(id string) *Account {
	return &Account{
		ID:               id,
		ReceivedGM:       new(big.Int),
		ReceivedGN:       new(big.Int),
		ReceivedGMGN:     new(big.Int),
		SentGM:           new(big.Int),
		SentGN:           new(big.Int),
		SentGMGN:         new(big.Int),
		BurnedForGM:      new(big.Int),
		BurnedForGN:      new(big.Int),
		BurnedForGMGN:    new(big.Int),
		BurnedForNothing: new(big.Int),
		BurnedTotal:      new(big.Int),
	}
}

func (a *Account) Kind() EntityKind { return KindAccount }
func (a *Account) EntityID() string { return a.ID }

// AccountBalance is a full snapshot of one currency balance of an account, overwritten
// on every successful enrichment. MiscFrozen and FeeFrozen are only set for FREN,
// Frozen only for GM and GN.
type AccountBalance struct {
	ID        string
	AccountID string
	Account   *Account
	Currency  Currency

	Free     *big.Int
	Reserved *big.Int
	Total    *big.Int

	MiscFrozen *big.Int
	FeeFrozen  *big.Int
	Frozen     *big.Int

	UpdatedAt uint64
}

func BalanceID(accountID string, currency Currency) string {
	return accountID + "-" + string(currency)
}

func NewAccountBalance(account *Account, currency Currency) *AccountBalance {
	return &AccountBalance{
		ID:        BalanceID(account.ID, currency),
		AccountID: account.ID,
		Account:   account,
		Currency:  currency,
		Free:      new(big.Int),
		Reserved:  new(big.Int),
		Total:     new(big.Int),
	}
}

func (b *AccountBalance) Kind() EntityKind { return KindAccountBalance }
func (b *AccountBalance) EntityID() string { return b.ID }

// Transfer is written once per transfer event.
type Transfer struct {
	ID            string
	BlockNumber   uint64
	Timestamp     time.Time
	ExtrinsicHash *string
	From          *Account
	To            *Account
	FromID        string
	ToID          string
	Currency      Currency
	Amount        *big.Int
	Fee           *big.Int
}

func (t *Transfer) Kind() EntityKind { return KindTransfer }
func (t *Transfer) EntityID() string { return t.ID }

// FrenBurned is written once per burn event. BurnedFor holds the reward currency when
// the tag names a known one (FREN included) and nil otherwise. Only GM and GN burns
// count toward the per-currency account counters; everything else is burned for nothing.
type FrenBurned struct {
	ID            string
	BlockNumber   uint64
	Timestamp     time.Time
	ExtrinsicHash *string
	AccountID     string
	BurnedAmount  *big.Int
	BurnedFor     *Currency
}

func (f *FrenBurned) Kind() EntityKind { return KindFrenBurned }
func (f *FrenBurned) EntityID() string { return f.ID }

// ChangeSet holds the dirty entities of one batch, grouped by kind.
type ChangeSet struct {
	Accounts  []*Account
	Balances  []*AccountBalance
	Transfers []*Transfer
	FrenBurns []*FrenBurned
}

func (cs *ChangeSet) Len() int {
	return len(cs.Accounts) + len(cs.Balances) + len(cs.Transfers) + len(cs.FrenBurns)
}

func (cs *ChangeSet) Add(entity Entity) {
	switch e := entity.(type) {
	case *Account:
		cs.Accounts = append(cs.Accounts, e)
	case *AccountBalance:
		cs.Balances = append(cs.Balances, e)
	case *Transfer:
		cs.Transfers = append(cs.Transfers, e)
	case *FrenBurned:
		cs.FrenBurns = append(cs.FrenBurns, e)
	}
}
