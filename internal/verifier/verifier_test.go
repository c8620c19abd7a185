package verifier

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexthissen/pact-net/internal/ir"
	"github.com/alexthissen/pact-net/internal/messaging"
	"github.com/alexthissen/pact-net/internal/pacterr"
	"github.com/alexthissen/pact-net/internal/pactfile"
	"github.com/alexthissen/pact-net/internal/provider"
	"github.com/alexthissen/pact-net/internal/testutil"
)

func orderPact(messages ...ir.MessageInteraction) ir.Pact {
	return ir.Pact{
		Participants: ir.Participants{Consumer: "Order Web", Provider: "Order API"},
		Messages:     messages,
		SpecVersion:  ir.PactSpecVersion,
	}
}

func constant(v any) messaging.ContentFactory {
	return func() (any, error) { return v, nil }
}

func newTestVerifier(states *provider.Registry, scenarios *messaging.Scenarios) *Verifier {
	return New(states, scenarios, WithIDGenerator(testutil.NewFixedIDGenerator("run-golden")))
}

func TestVerify_Passes(t *testing.T) {
	scenarios := messaging.NewScenarios().
		AddWithMetadata("an order created event",
			map[string]any{"contentType": "application/json", "extra": "ignored"},
			constant(map[string]any{"id": 1, "items": []string{"book"}}))

	pact := orderPact(ir.MessageInteraction{
		Description: "an order created event",
		Metadata:    map[string]any{"contentType": "application/json"},
		Contents:    map[string]any{"items": []any{"book"}, "id": json.Number("1")},
	})

	res, err := newTestVerifier(nil, scenarios).Verify(context.Background(), pact)
	require.NoError(t, err)
	assert.True(t, res.Pass)
	assert.NoError(t, res.Err())
	assert.Equal(t, "run-golden", res.RunID)
	require.Len(t, res.Interactions, 1)
	assert.Empty(t, res.Interactions[0].Errors)
}

func TestVerify_GoldenMixedResult(t *testing.T) {
	scenarios := messaging.NewScenarios().
		AddContent("an order created event", constant(map[string]any{"id": 1})).
		AddContent("an order shipped event", constant(map[string]any{"id": 1, "status": "pending"}))

	pact := orderPact(
		ir.MessageInteraction{
			Description:    "an order created event",
			ProviderStates: []ir.ProviderState{{Name: "an order exists"}},
			Contents:       map[string]any{"id": json.Number("1")},
		},
		ir.MessageInteraction{
			Description: "an order shipped event",
			Contents:    map[string]any{"id": json.Number("1"), "status": "shipped"},
		},
		ir.MessageInteraction{
			Description: "an unknown event",
			Contents:    "x",
		},
	)

	res, err := newTestVerifier(nil, scenarios).Verify(context.Background(), pact)
	require.NoError(t, err)
	assert.False(t, res.Pass)

	data, err := ir.MarshalCanonical(res)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "mixed-result", data)
}

func TestVerify_MetadataMismatch(t *testing.T) {
	scenarios := messaging.NewScenarios().
		AddWithMetadata("e", map[string]any{"contentType": "text/plain"}, constant("x"))

	pact := orderPact(ir.MessageInteraction{
		Description: "e",
		Metadata:    map[string]any{"contentType": "application/json", "queue": "orders"},
		Contents:    "x",
	})

	res, err := newTestVerifier(nil, scenarios).Verify(context.Background(), pact)
	require.NoError(t, err)
	require.False(t, res.Pass)
	assert.Equal(t, []string{
		`metadata "contentType" mismatch: expected "application/json", got "text/plain"`,
		`metadata "queue" missing`,
	}, res.Interactions[0].Errors)
}

func TestVerify_StateHandlersRunInOrder(t *testing.T) {
	var calls []string
	record := func(label string) provider.StateFunc {
		return func(_ context.Context, params map[string]any) error {
			calls = append(calls, label)
			return nil
		}
	}

	states := provider.NewRegistry()
	require.NoError(t, states.AddMany([]provider.StateHandler{
		provider.NewStateHandler("first", provider.Setup, record("setup first")),
		provider.NewStateHandler("second", provider.Setup, record("setup second")),
		provider.NewStateHandler("first", provider.Teardown, record("teardown first")),
		provider.NewStateHandler("second", provider.Teardown, record("teardown second")),
	}))
	scenarios := messaging.NewScenarios().AddContent("e", func() (any, error) {
		calls = append(calls, "generate")
		return "x", nil
	})

	pact := orderPact(ir.MessageInteraction{
		Description:    "e",
		ProviderStates: []ir.ProviderState{{Name: "first"}, {Name: "second"}},
		Contents:       "x",
	})

	res, err := newTestVerifier(states, scenarios).Verify(context.Background(), pact)
	require.NoError(t, err)
	assert.True(t, res.Pass)
	assert.Equal(t, []string{
		"setup first", "setup second", "generate", "teardown second", "teardown first",
	}, calls)
}

func TestVerify_StateParamsPassed(t *testing.T) {
	var got map[string]any
	states := provider.NewRegistry()
	require.NoError(t, states.Add(provider.NewStateHandler("an order exists", provider.Setup,
		func(_ context.Context, params map[string]any) error {
			got = params
			return nil
		})))

	pact := orderPact(ir.MessageInteraction{
		Description:    "e",
		ProviderStates: []ir.ProviderState{{Name: "an order exists", Params: map[string]any{"id": "42"}}},
		Contents:       "x",
	})

	_, err := newTestVerifier(states, messaging.NewScenarios().AddContent("e", constant("x"))).
		Verify(context.Background(), pact)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "42"}, got)
}

func TestVerify_SetupFailureStillTearsDown(t *testing.T) {
	var teardowns []string
	states := provider.NewRegistry()
	require.NoError(t, states.AddMany([]provider.StateHandler{
		provider.NewStateHandler("ok", provider.Setup, provider.NoParams(func() error { return nil })),
		provider.NewStateHandler("broken", provider.Setup, provider.NoParams(func() error {
			return errors.New("database down")
		})),
		provider.NewStateHandler("never", provider.Setup, provider.NoParams(func() error {
			t.Fatal("setup after failure")
			return nil
		})),
		provider.NewStateHandler("ok", provider.Teardown, provider.NoParams(func() error {
			teardowns = append(teardowns, "ok")
			return nil
		})),
		provider.NewStateHandler("broken", provider.Teardown, provider.NoParams(func() error {
			teardowns = append(teardowns, "broken")
			return nil
		})),
		provider.NewStateHandler("never", provider.Teardown, provider.NoParams(func() error {
			teardowns = append(teardowns, "never")
			return nil
		})),
	}))
	generated := false
	scenarios := messaging.NewScenarios().AddContent("e", func() (any, error) {
		generated = true
		return "x", nil
	})

	pact := orderPact(ir.MessageInteraction{
		Description:    "e",
		ProviderStates: []ir.ProviderState{{Name: "ok"}, {Name: "broken"}, {Name: "never"}},
		Contents:       "x",
	})

	res, err := newTestVerifier(states, scenarios).Verify(context.Background(), pact)
	require.NoError(t, err)
	require.False(t, res.Pass)
	assert.False(t, generated)
	assert.Equal(t, []string{"broken", "ok"}, teardowns)
	require.Len(t, res.Interactions[0].Errors, 1)
	assert.Contains(t, res.Interactions[0].Errors[0], "database down")
}

func TestVerify_TeardownFailureRecorded(t *testing.T) {
	states := provider.NewRegistry()
	require.NoError(t, states.Add(provider.NewStateHandler("s", provider.Teardown,
		provider.NoParams(func() error { return errors.New("cleanup failed") }))))

	pact := orderPact(ir.MessageInteraction{
		Description:    "e",
		ProviderStates: []ir.ProviderState{{Name: "s"}},
		Contents:       "x",
	})

	res, err := newTestVerifier(states, messaging.NewScenarios().AddContent("e", constant("x"))).
		Verify(context.Background(), pact)
	require.NoError(t, err)
	assert.False(t, res.Pass)
	require.Len(t, res.Interactions[0].Errors, 1)
	assert.Contains(t, res.Interactions[0].Errors[0], "cleanup failed")
}

func TestVerify_AmbiguousScenarioFails(t *testing.T) {
	scenarios := messaging.NewScenarios().
		AddContent("e", constant("x")).
		AddContent("e", constant("x"))

	res, err := newTestVerifier(nil, scenarios).Verify(context.Background(), orderPact(ir.MessageInteraction{Description: "e", Contents: "x"}))
	require.NoError(t, err)
	assert.False(t, res.Pass)
	assert.Contains(t, res.Interactions[0].Errors[0], string(pacterr.AmbiguousScenario))
}

func TestVerify_FactoryError(t *testing.T) {
	scenarios := messaging.NewScenarios().AddContent("e", func() (any, error) {
		return nil, errors.New("serializer broke")
	})

	res, err := newTestVerifier(nil, scenarios).Verify(context.Background(), orderPact(ir.MessageInteraction{Description: "e", Contents: "x"}))
	require.NoError(t, err)
	assert.False(t, res.Pass)
	assert.Contains(t, res.Interactions[0].Errors[0], "serializer broke")
}

func TestVerify_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := newTestVerifier(nil, nil).Verify(ctx, orderPact(ir.MessageInteraction{Description: "e", Contents: "x"}))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}

func TestVerify_EmptyPactPasses(t *testing.T) {
	res, err := newTestVerifier(nil, nil).Verify(context.Background(), orderPact())
	require.NoError(t, err)
	assert.True(t, res.Pass)
	assert.Empty(t, res.Interactions)
}

func TestResultErr(t *testing.T) {
	res := &Result{
		RunID:    "r",
		Consumer: "c",
		Provider: "p",
		Interactions: []InteractionResult{
			{Description: "good", Pass: true},
			{Description: "bad", Pass: false, Errors: []string{"boom"}},
		},
	}

	err := res.Err()
	require.Error(t, err)
	assert.True(t, pacterr.IsVerificationFailed(err))
	assert.Contains(t, err.Error(), "1 of 2 interactions failed")
	assert.Contains(t, err.Error(), `failed_1="bad"`)
	assert.Len(t, res.Failed(), 1)
}

func TestVerifyFile(t *testing.T) {
	dir := t.TempDir()
	path, err := pactfile.Write(dir, orderPact(ir.MessageInteraction{
		Description: "e",
		Contents:    map[string]any{"n": json.Number("9007199254740993")},
	}))
	require.NoError(t, err)

	big := json.Number("9007199254740993")
	v := newTestVerifier(nil, messaging.NewScenarios().AddContent("e", constant(map[string]any{"n": big})))

	res, err := v.VerifyFile(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, res.Pass, "large integers compare exactly: %v", res.Interactions)

	_, err = v.VerifyFile(context.Background(), filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestUUIDv7Generator(t *testing.T) {
	id := UUIDv7Generator{}.Generate()

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.NotEqual(t, id, UUIDv7Generator{}.Generate())
}

func TestVerify_EachRunGetsNewID(t *testing.T) {
	ids := testutil.NewSequenceIDGenerator("run")
	v := New(nil, messaging.NewScenarios().AddContent("e", constant("x")), WithIDGenerator(ids))
	pact := orderPact(ir.MessageInteraction{Description: "e", Contents: "x"})

	first, err := v.Verify(context.Background(), pact)
	require.NoError(t, err)
	second, err := v.Verify(context.Background(), pact)
	require.NoError(t, err)

	assert.Equal(t, "run-1", first.RunID)
	assert.Equal(t, "run-2", second.RunID)
}
