package registry

import (
	"sync"

	"gmseer/events/handlers"
)

var (
	handlerRegistry = make(map[string]handlers.EventHandler)
	handlerOrder    []string
	mu              sync.RWMutex
)

const (
	Transfer        = "Transfer"
	FrenBurned      = "FrenBurned"
	IdentityChanged = "IdentityChanged"
)

type NamedHandler struct {
	Name    string
	Handler handlers.EventHandler
}

// RegisterEventHandlers installs the default handlers. Handlers run in registration
// order, which also fixes the order accounts are first touched in.
func RegisterEventHandlers() {
	mu.Lock()
	defer mu.Unlock()

	handlerRegistry = make(map[string]handlers.EventHandler)
	handlerOrder = nil
	register(Transfer, &handlers.TransferHandler{})
	register(FrenBurned, &handlers.FrenBurnedHandler{})
	register(IdentityChanged, &handlers.IdentityChangedHandler{})
}

func register(name string, handler handlers.EventHandler) {
	if _, ok := handlerRegistry[name]; !ok {
		handlerOrder = append(handlerOrder, name)
	}
	handlerRegistry[name] = handler
}

func GetEventHandler(eventName string) handlers.EventHandler {
	mu.RLock()
	defer mu.RUnlock()
	return handlerRegistry[eventName]
}

func EventHandlers() []NamedHandler {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]NamedHandler, 0, len(handlerOrder))
	for _, name := range handlerOrder {
		out = append(out, NamedHandler{Name: name, Handler: handlerRegistry[name]})
	}
	return out
}
