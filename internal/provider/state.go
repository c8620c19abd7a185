package provider

import (
	"context"
	"fmt"
)

// StateAction selects when a handler runs relative to an interaction.
type StateAction int

const (
	// Setup runs before the interaction is replayed.
	Setup StateAction = iota
	// Teardown runs after the interaction is replayed.
	Teardown
)

// String returns the lower-case action name.
func (a StateAction) String() string {
	switch a {
	case Setup:
		return "setup"
	case Teardown:
		return "teardown"
	default:
		return fmt.Sprintf("StateAction(%d)", int(a))
	}
}

// ParseStateAction parses "setup" or "teardown".
func ParseStateAction(s string) (StateAction, error) {
	switch s {
	case "setup":
		return Setup, nil
	case "teardown":
		return Teardown, nil
	}
	return 0, fmt.Errorf("unknown state action %q", s)
}

// StateFunc establishes or removes a provider state.
// Params are the state parameters declared by the interaction (may be nil).
type StateFunc func(ctx context.Context, params map[string]any) error

// NoParams adapts a zero-argument callback to a StateFunc.
func NoParams(fn func() error) StateFunc {
	return func(context.Context, map[string]any) error {
		return fn()
	}
}

// StateHandler binds a callback to a (description, action) pair.
type StateHandler struct {
	Description string
	Action      StateAction
	Handler     StateFunc
}

// NewStateHandler creates a handler for the given state description.
func NewStateHandler(description string, action StateAction, fn StateFunc) StateHandler {
	return StateHandler{Description: description, Action: action, Handler: fn}
}

// key identifies a handler for uniqueness checks.
type key struct {
	description string
	action      StateAction
}

func (h StateHandler) key() key {
	return key{description: h.Description, action: h.Action}
}
