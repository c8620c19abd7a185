package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexthissen/pact-net/internal/pacterr"
)

func orderCreated() (any, error) {
	return map[string]any{"id": 1, "status": "created"}, nil
}

func TestAddVariants(t *testing.T) {
	s := NewScenarios().
		Add(Scenario{Description: "prebuilt", Factory: orderCreated}).
		AddContent("content only", orderCreated).
		AddWithMetadata("with metadata", map[string]any{"queue": "orders"}, orderCreated)

	assert.Equal(t, 3, s.Len())

	sc, err := s.Lookup("with metadata")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"queue": "orders"}, sc.Metadata)

	sc, err = s.Lookup("content only")
	require.NoError(t, err)
	assert.Nil(t, sc.Metadata)
}

func TestLookupNotFound(t *testing.T) {
	s := NewScenarios().AddContent("a", orderCreated)

	_, err := s.Lookup("b")
	assert.True(t, pacterr.IsScenarioNotFound(err))
}

func TestLookupAmbiguous(t *testing.T) {
	s := NewScenarios().
		AddContent("dup", orderCreated).
		AddContent("dup", orderCreated)

	assert.Equal(t, 2, s.Len(), "duplicates are accepted on add")

	_, err := s.Lookup("dup")
	require.Error(t, err)
	assert.True(t, pacterr.IsAmbiguousScenario(err))
	assert.Contains(t, err.Error(), "2 message scenarios")
}

func TestGenerate(t *testing.T) {
	s := NewScenarios().AddWithMetadata("order created", map[string]any{"queue": "orders"}, orderCreated)

	msg, err := s.Generate(context.Background(), "order created")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": 1, "status": "created"}, msg.Contents)
	assert.Equal(t, map[string]any{"queue": "orders"}, msg.Metadata)
}

func TestGenerateFactoryError(t *testing.T) {
	boom := errors.New("serializer failed")
	s := NewScenarios().AddContent("broken", func() (any, error) { return nil, boom })

	_, err := s.Generate(context.Background(), "broken")
	assert.ErrorIs(t, err, boom)
}

func TestGenerateNilFactory(t *testing.T) {
	s := NewScenarios().Add(Scenario{Description: "empty"})

	_, err := s.Generate(context.Background(), "empty")
	assert.True(t, pacterr.IsInvalidArgument(err))
}

func TestGenerateCancelled(t *testing.T) {
	s := NewScenarios().AddContent("a", orderCreated)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Generate(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClear(t *testing.T) {
	s := NewScenarios().AddContent("a", orderCreated)
	s.Clear()

	assert.Equal(t, 0, s.Len())
	_, err := s.Lookup("a")
	assert.True(t, pacterr.IsScenarioNotFound(err))
}
