package verifier

import (
	"fmt"
	"strconv"

	"github.com/alexthissen/pact-net/internal/pacterr"
)

// InteractionResult is the outcome of replaying one message.
type InteractionResult struct {
	Description string   `json:"description"`
	Pass        bool     `json:"pass"`
	Errors      []string `json:"errors,omitempty"`
}

func (r *InteractionResult) fail(format string, args ...any) {
	r.Pass = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Result is the outcome of verifying one pact.
type Result struct {
	RunID        string              `json:"run_id"`
	Consumer     string              `json:"consumer"`
	Provider     string              `json:"provider"`
	Pass         bool                `json:"pass"`
	Interactions []InteractionResult `json:"interactions"`
}

// Failed returns the interactions that did not pass.
func (r *Result) Failed() []InteractionResult {
	var out []InteractionResult
	for _, it := range r.Interactions {
		if !it.Pass {
			out = append(out, it)
		}
	}
	return out
}

// Err returns a VerificationFailed error if any interaction failed.
func (r *Result) Err() error {
	if r.Pass {
		return nil
	}
	failed := r.Failed()
	err := pacterr.New(pacterr.VerificationFailed, "%d of %d interactions failed verification", len(failed), len(r.Interactions)).
		WithDetail("consumer", r.Consumer).
		WithDetail("provider", r.Provider).
		WithDetail("run_id", r.RunID)
	for i, f := range failed {
		err = err.WithDetail("failed_"+strconv.Itoa(i+1), f.Description)
	}
	return err
}
