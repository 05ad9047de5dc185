package model

import (
	"math/big"
	"time"
)

// BlockRef addresses the chain state all reads of one enrichment pass are made against.
type BlockRef struct {
	Number uint64
	Hash   string
}

type TransferEvent struct {
	ID            string
	BlockNumber   uint64
	Timestamp     time.Time
	ExtrinsicHash *string
	From          string
	To            string
	Currency      Currency
	Amount        *big.Int
	Fee           *big.Int
}

// FrenBurnedEvent carries the raw reward tag. Anything other than GM or GN counts as
// burned for nothing.
type FrenBurnedEvent struct {
	ID            string
	BlockNumber   uint64
	Timestamp     time.Time
	ExtrinsicHash *string
	Who           string
	Amount        *big.Int
	BurnedFor     string
}

type IdentityEvent struct {
	ID          string
	BlockNumber uint64
	Timestamp   time.Time
	Name        string
	Who         string
}

// EventSet is the parsed event scope of one batch.
type EventSet struct {
	TransferEvents []TransferEvent
	BurnEvents     []FrenBurnedEvent
	IdentityEvents []IdentityEvent
}

func (s *EventSet) Transfers() []TransferEvent        { return s.TransferEvents }
func (s *EventSet) FrenBurns() []FrenBurnedEvent      { return s.BurnEvents }
func (s *EventSet) IdentityChanges() []IdentityEvent { return s.IdentityEvents }

func (s *EventSet) Len() int {
	return len(s.TransferEvents) + len(s.BurnEvents) + len(s.IdentityEvents)
}

// Batch covers the block range [From, To] and ends in a single flush.
type Batch struct {
	From         uint64
	To           uint64
	SnapshotHash string
	Events       EventSet
	Source       string
}

// Snapshot is the batch's terminal block.
func (b *Batch) Snapshot() BlockRef {
	return BlockRef{Number: b.To, Hash: b.SnapshotHash}
}
