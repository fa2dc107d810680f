package types

import (
	"fmt"

	"github.com/multiversx/mx-ibc-go/modules/core/exported"
)

// The router is a map from client type to the LightClientModule
// which implements the verification callbacks required by the core.
type Router struct {
	routes map[string]exported.LightClientModule
}

// NewRouter returns an empty light client router.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]exported.LightClientModule),
	}
}

// AddRoute adds LightClientModule for a given client type. It returns the Router
// so AddRoute calls can be linked. It will panic if the client type is already registered.
func (rtr *Router) AddRoute(clientType string, module exported.LightClientModule) *Router {
	if rtr.HasRoute(clientType) {
		panic(fmt.Errorf("route %s has already been registered", clientType))
	}

	rtr.routes[clientType] = module
	return rtr
}

// HasRoute returns true if the Router has a module registered or false otherwise.
func (rtr *Router) HasRoute(clientType string) bool {
	_, ok := rtr.routes[clientType]
	return ok
}

// GetRoute returns a LightClientModule for a given client type or client identifier.
func (rtr *Router) GetRoute(clientID string) (exported.LightClientModule, bool) {
	// client types are matched first so that "09-localhost" style identifiers resolve
	if module, ok := rtr.routes[clientID]; ok {
		return module, true
	}

	clientType, _, err := ParseClientIdentifier(clientID)
	if err != nil {
		return nil, false
	}

	module, ok := rtr.routes[clientType]
	return module, ok
}
