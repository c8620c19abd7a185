package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexthissen/pact-net/internal/ir"
	"github.com/alexthissen/pact-net/internal/pacterr"
)

// Registry stores provider-state handlers keyed by (description, action).
//
// Registration order is preserved; lookups return the first match.
type Registry struct {
	mu       sync.RWMutex
	handlers []StateHandler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// Add registers a single handler.
//
// Returns InvalidArgument if the callback is nil and DuplicateStateHandler
// if a handler with the same description and action already exists.
// The registry is unchanged on error.
func (r *Registry) Add(h StateHandler) error {
	if h.Handler == nil {
		return pacterr.New(pacterr.InvalidArgument, "state handler callback cannot be nil").
			WithDetail("description", h.Description)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.existsLocked(h.key()) {
		return duplicateError(h)
	}
	r.handlers = append(r.handlers, h)
	return nil
}

// AddMany registers a batch of handlers atomically.
//
// Returns InvalidArgument for an empty batch or a nil callback, and
// DuplicateStateHandler for the first handler that collides with an
// existing entry or with an earlier entry of the same batch. Either the
// whole batch is added or none of it.
func (r *Registry) AddMany(handlers []StateHandler) error {
	if len(handlers) == 0 {
		return pacterr.New(pacterr.InvalidArgument, "state handlers list cannot be nil or empty")
	}
	for _, h := range handlers {
		if h.Handler == nil {
			return pacterr.New(pacterr.InvalidArgument, "state handler callback cannot be nil").
				WithDetail("description", h.Description)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[key]struct{}, len(handlers))
	for _, h := range handlers {
		k := h.key()
		if _, dup := seen[k]; dup || r.existsLocked(k) {
			return duplicateError(h)
		}
		seen[k] = struct{}{}
	}

	r.handlers = append(r.handlers, handlers...)
	return nil
}

// Get returns the first handler matching description and action.
// A miss returns false; it is never an error.
func (r *Registry) Get(description string, action StateAction) (StateHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.handlers {
		if h.Description == description && h.Action == action {
			return h, true
		}
	}
	return StateHandler{}, false
}

// Clear removes all handlers.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = nil
}

// Run invokes the handler registered for state and action.
// Returns false if no handler is registered; the callback's error is wrapped.
func (r *Registry) Run(ctx context.Context, state ir.ProviderState, action StateAction) (bool, error) {
	h, ok := r.Get(state.Name, action)
	if !ok {
		return false, nil
	}

	// Run outside the lock so handlers may consult the registry.
	if err := h.Handler(ctx, state.Params); err != nil {
		return true, fmt.Errorf("provider state %q %s: %w", state.Name, action, err)
	}
	return true, nil
}

func (r *Registry) existsLocked(k key) bool {
	for _, h := range r.handlers {
		if h.key() == k {
			return true
		}
	}
	return false
}

func duplicateError(h StateHandler) *pacterr.Error {
	return pacterr.New(pacterr.DuplicateStateHandler, "state handler already registered").
		WithDetail("description", h.Description).
		WithDetail("action", h.Action.String())
}
