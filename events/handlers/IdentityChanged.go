package handlers

import (
	"gmseer/helper"
	"gmseer/interfaces"
)

// IdentityChangedHandler moves no counters. It makes sure accounts whose identity
// changed exist in the batch, so the enricher refreshes them.
type IdentityChangedHandler struct {
}

func (h *IdentityChangedHandler) Handle(scope interfaces.EventScope, cache *helper.EntityCache) {
	for _, ev := range scope.IdentityChanges() {
		helper.GetOrCreateAccount(cache, ev.Who)
	}
}
