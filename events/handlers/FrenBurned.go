package handlers

import (
	"log/slog"

	"gmseer/helper"
	"gmseer/interfaces"
	"gmseer/model"
)

type FrenBurnedHandler struct {
}

func (h *FrenBurnedHandler) Handle(scope interfaces.EventScope, cache *helper.EntityCache) {
	for _, ev := range scope.FrenBurns() {
		if _, ok := cache.FrenBurned(ev.ID); ok {
			slog.Debug("burn already indexed, skipping", "id", ev.ID, "block", ev.BlockNumber)
			continue
		}
		account := helper.GetOrCreateAccount(cache, ev.Who)
		amount := amountOf(ev.Amount)

		burn := &model.FrenBurned{
			ID:            ev.ID,
			BlockNumber:   ev.BlockNumber,
			Timestamp:     ev.Timestamp,
			ExtrinsicHash: ev.ExtrinsicHash,
			AccountID:     account.ID,
			BurnedAmount:  amount,
		}

		currency, known := model.ParseCurrency(ev.BurnedFor)
		if known {
			burn.BurnedFor = &currency
		}
		switch {
		case known && currency == model.GM:
			add(amount, account.BurnedForGM, account.BurnedForGMGN)
		case known && currency == model.GN:
			add(amount, account.BurnedForGN, account.BurnedForGMGN)
		default:
			add(amount, account.BurnedForNothing)
		}
		add(amount, account.BurnedTotal)

		cache.Upsert(account)
		cache.Upsert(burn)
	}
}
