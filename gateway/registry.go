// Package gateway provides the in-memory model of storage-grid gateways.
// This file contains the Registry, the ordered directory of known
// gateways and the current selection.
package gateway

import "github.com/yllada/grid-manager/common"

// Registry is the ordered collection of known gateways plus the single
// currently selected one. It is a pure in-memory directory with no side
// effects beyond its own state.
type Registry struct {
	gateways []*Gateway
	current  *Gateway
}

// NewRegistry creates an empty gateway registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a gateway to the registry and makes it the current
// selection. Registering a gateway that is already present (identity
// compare) is a no-op.
func (r *Registry) Register(gw *Gateway) {
	if gw == nil {
		return
	}
	for _, g := range r.gateways {
		if g == gw {
			return
		}
	}
	r.gateways = append(r.gateways, gw)
	r.current = gw
}

// Current returns the selected gateway, or false if the registry is empty.
func (r *Registry) Current() (*Gateway, bool) {
	if r.current == nil {
		return nil, false
	}
	return r.current, true
}

// Select makes the given gateway the current selection. Selecting a
// gateway that was never registered leaves the selection unchanged and
// returns common.ErrUnknownGateway.
func (r *Registry) Select(gw *Gateway) error {
	for _, g := range r.gateways {
		if g == gw {
			r.current = gw
			return nil
		}
	}
	return common.ErrUnknownGateway
}

// Contains reports whether the gateway has been registered.
func (r *Registry) Contains(gw *Gateway) bool {
	for _, g := range r.gateways {
		if g == gw {
			return true
		}
	}
	return false
}

// List returns the registered gateways in registration order.
func (r *Registry) List() []*Gateway {
	return r.gateways
}

// Len returns the number of registered gateways.
func (r *Registry) Len() int {
	return len(r.gateways)
}
