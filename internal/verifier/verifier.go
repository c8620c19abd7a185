package verifier

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/alexthissen/pact-net/internal/ir"
	"github.com/alexthissen/pact-net/internal/messaging"
	"github.com/alexthissen/pact-net/internal/pactfile"
	"github.com/alexthissen/pact-net/internal/provider"
)

// Verifier replays message pacts using registered provider state handlers
// and message scenarios.
//
// The registries are shared by reference; the verifier never mutates them.
type Verifier struct {
	states    *provider.Registry
	scenarios *messaging.Scenarios
	logger    *slog.Logger
	ids       IDGenerator
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(v *Verifier) {
		v.logger = l
	}
}

// WithIDGenerator sets the run ID generator. Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(v *Verifier) {
		v.ids = g
	}
}

// New creates a verifier. Nil registries are treated as empty.
func New(states *provider.Registry, scenarios *messaging.Scenarios, opts ...Option) *Verifier {
	if states == nil {
		states = provider.NewRegistry()
	}
	if scenarios == nil {
		scenarios = messaging.NewScenarios()
	}
	v := &Verifier{
		states:    states,
		scenarios: scenarios,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		ids:       UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// VerifyFile reads the pact file at path and verifies it.
func (v *Verifier) VerifyFile(ctx context.Context, path string) (*Result, error) {
	pact, err := pactfile.Read(path)
	if err != nil {
		return nil, err
	}
	return v.Verify(ctx, pact)
}

// Verify replays every message of pact.
//
// Per-interaction failures are recorded in the Result; use Result.Err to
// turn a failing result into an error. The returned error is non-nil only
// if ctx is done, in which case the partial result is discarded.
func (v *Verifier) Verify(ctx context.Context, pact ir.Pact) (*Result, error) {
	result := &Result{
		RunID:        v.ids.Generate(),
		Consumer:     pact.Consumer,
		Provider:     pact.Provider,
		Pass:         true,
		Interactions: make([]InteractionResult, 0, len(pact.Messages)),
	}

	logger := v.logger.With(
		"run_id", result.RunID,
		"consumer", pact.Consumer,
		"provider", pact.Provider,
	)

	for _, m := range pact.Messages {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("verify pact: %w", err)
		}

		res := v.verifyMessage(ctx, logger, m)
		if !res.Pass {
			result.Pass = false
			logger.Warn("interaction failed",
				"interaction", m.Description,
				"errors", res.Errors,
			)
		}
		result.Interactions = append(result.Interactions, res)
	}

	logger.Info("verification finished",
		"interactions", len(result.Interactions),
		"pass", result.Pass,
	)
	return result, nil
}

func (v *Verifier) verifyMessage(ctx context.Context, logger *slog.Logger, m ir.MessageInteraction) (res InteractionResult) {
	res = InteractionResult{Description: m.Description, Pass: true}

	// Teardown covers only the states whose setup was attempted.
	ran := 0
	defer func() {
		v.teardown(ctx, logger, m.ProviderStates[:ran], &res)
	}()

	for _, state := range m.ProviderStates {
		ran++
		found, err := v.states.Run(ctx, state, provider.Setup)
		if err != nil {
			res.fail("%v", err)
			return res
		}
		if !found {
			logger.Warn("no setup handler for provider state",
				"interaction", m.Description,
				"state", state.Name,
			)
		}
	}

	actual, err := v.scenarios.Generate(ctx, m.Description)
	if err != nil {
		res.fail("generate message: %v", err)
		return res
	}

	compareContents(&res, m.Contents, actual.Contents)
	compareMetadata(&res, m.Metadata, actual.Metadata)
	return res
}

func (v *Verifier) teardown(ctx context.Context, logger *slog.Logger, states []ir.ProviderState, res *InteractionResult) {
	for i := len(states) - 1; i >= 0; i-- {
		found, err := v.states.Run(ctx, states[i], provider.Teardown)
		if err != nil {
			res.fail("%v", err)
			continue
		}
		if !found {
			logger.Debug("no teardown handler for provider state",
				"interaction", res.Description,
				"state", states[i].Name,
			)
		}
	}
}
