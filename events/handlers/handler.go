package handlers

import (
	"math/big"

	"gmseer/helper"
	"gmseer/interfaces"
)

// Note: stick to this naming convention for handlers
// EventName + Handler

// EventHandler applies one kind of event from the batch scope to the cached entities.
// Handlers only talk to the cache; they never do I/O.
type EventHandler interface {
	Handle(scope interfaces.EventScope, cache *helper.EntityCache)
}

func amountOf(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}

func add(amount *big.Int, counters ...*big.Int) {
	for _, c := range counters {
		c.Add(c, amount)
	}
}
