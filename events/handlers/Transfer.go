package handlers

import (
	"log/slog"

	"gmseer/helper"
	"gmseer/interfaces"
	"gmseer/model"
)

type TransferHandler struct {
}

func (h *TransferHandler) Handle(scope interfaces.EventScope, cache *helper.EntityCache) {
	for _, ev := range scope.Transfers() {
		if _, ok := cache.Transfer(ev.ID); ok {
			slog.Debug("transfer already indexed, skipping", "id", ev.ID, "block", ev.BlockNumber)
			continue
		}
		from := helper.GetOrCreateAccount(cache, ev.From)
		to := helper.GetOrCreateAccount(cache, ev.To)
		amount := amountOf(ev.Amount)

		transfer := &model.Transfer{
			ID:            ev.ID,
			BlockNumber:   ev.BlockNumber,
			Timestamp:     ev.Timestamp,
			ExtrinsicHash: ev.ExtrinsicHash,
			From:          from,
			To:            to,
			FromID:        from.ID,
			ToID:          to.ID,
			Currency:      ev.Currency,
			Amount:        amount,
			Fee:           ev.Fee,
		}

		// FREN transfers are recorded but move no counters
		switch ev.Currency {
		case model.GM:
			add(amount, from.SentGM, from.SentGMGN)
			add(amount, to.ReceivedGM, to.ReceivedGMGN)
		case model.GN:
			add(amount, from.SentGN, from.SentGMGN)
			add(amount, to.ReceivedGN, to.ReceivedGMGN)
		case model.FREN:
		default:
			slog.Warn("transfer with unknown currency", "id", ev.ID, "currency", ev.Currency)
		}

		cache.Upsert(from)
		cache.Upsert(to)
		cache.Upsert(transfer)
	}
}
