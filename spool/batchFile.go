package spool

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gmseer/model"
)

var ErrInvalidBatch = errors.New("invalid batch file")

type batchFile struct {
	From            uint64           `json:"from"`
	To              uint64           `json:"to"`
	SnapshotHash    string           `json:"snapshotHash"`
	Transfers       []transferRecord `json:"transfers"`
	FrenBurns       []burnRecord     `json:"frenBurns"`
	IdentityChanges []identityRecord `json:"identityChanges"`
}

type eventHeader struct {
	ID            string  `json:"id"`
	BlockNumber   uint64  `json:"blockNumber"`
	Timestamp     int64   `json:"timestamp"`
	ExtrinsicHash *string `json:"extrinsicHash"`
}

type transferRecord struct {
	eventHeader
	From     string        `json:"from"`
	To       string        `json:"to"`
	Currency string        `json:"currency"`
	Amount   *model.Amount `json:"amount"`
	Fee      *model.Amount `json:"fee"`
}

type burnRecord struct {
	eventHeader
	Who       string        `json:"who"`
	Amount    *model.Amount `json:"amount"`
	BurnedFor string        `json:"burnedFor"`
}

type identityRecord struct {
	eventHeader
	Name string `json:"name"`
	Who  string `json:"who"`
}

func (h eventHeader) time() time.Time {
	if h.Timestamp == 0 {
		return time.Time{}
	}
	return time.UnixMilli(h.Timestamp).UTC()
}

func (b *batchFile) checkEvent(kind string, h eventHeader, accounts ...string) error {
	if h.ID == "" {
		return fmt.Errorf("%w: %s without id", ErrInvalidBatch, kind)
	}
	if h.BlockNumber < b.From || h.BlockNumber > b.To {
		return fmt.Errorf("%w: %s %s at block %d outside %d-%d", ErrInvalidBatch, kind, h.ID, h.BlockNumber, b.From, b.To)
	}
	for _, acc := range accounts {
		if acc == "" {
			return fmt.Errorf("%w: %s %s without account", ErrInvalidBatch, kind, h.ID)
		}
	}
	return nil
}

// ParseBatch decodes one batch document. Transfer currencies are normalised when
// known and passed through otherwise.
func ParseBatch(data []byte) (*model.Batch, error) {
	var f batchFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBatch, err)
	}
	if f.To < f.From {
		return nil, fmt.Errorf("%w: range %d-%d", ErrInvalidBatch, f.From, f.To)
	}

	batch := &model.Batch{From: f.From, To: f.To, SnapshotHash: f.SnapshotHash}
	events := &batch.Events
	for _, r := range f.Transfers {
		if err := f.checkEvent("transfer", r.eventHeader, r.From, r.To); err != nil {
			return nil, err
		}
		if r.Amount.Big() == nil {
			return nil, fmt.Errorf("%w: transfer %s without amount", ErrInvalidBatch, r.ID)
		}
		currency, ok := model.ParseCurrency(r.Currency)
		if !ok {
			currency = model.Currency(strings.TrimSpace(r.Currency))
		}
		events.TransferEvents = append(events.TransferEvents, model.TransferEvent{
			ID:            r.ID,
			BlockNumber:   r.BlockNumber,
			Timestamp:     r.time(),
			ExtrinsicHash: r.ExtrinsicHash,
			From:          r.From,
			To:            r.To,
			Currency:      currency,
			Amount:        r.Amount.Big(),
			Fee:           r.Fee.Big(),
		})
	}
	for _, r := range f.FrenBurns {
		if err := f.checkEvent("burn", r.eventHeader, r.Who); err != nil {
			return nil, err
		}
		if r.Amount.Big() == nil {
			return nil, fmt.Errorf("%w: burn %s without amount", ErrInvalidBatch, r.ID)
		}
		events.BurnEvents = append(events.BurnEvents, model.FrenBurnedEvent{
			ID:            r.ID,
			BlockNumber:   r.BlockNumber,
			Timestamp:     r.time(),
			ExtrinsicHash: r.ExtrinsicHash,
			Who:           r.Who,
			Amount:        r.Amount.Big(),
			BurnedFor:     r.BurnedFor,
		})
	}
	for _, r := range f.IdentityChanges {
		if err := f.checkEvent("identity change", r.eventHeader, r.Who); err != nil {
			return nil, err
		}
		events.IdentityEvents = append(events.IdentityEvents, model.IdentityEvent{
			ID:          r.ID,
			BlockNumber: r.BlockNumber,
			Timestamp:   r.time(),
			Name:        r.Name,
			Who:         r.Who,
		})
	}
	return batch, nil
}

func ReadBatchFile(path string) (*model.Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	batch, err := ParseBatch(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	batch.Source = path
	return batch, nil
}
