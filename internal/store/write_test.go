package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexthissen/pact-net/internal/ir"
)

func TestUpsertPact_StableID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	p := ir.Participants{Consumer: "Test consumer", Provider: "Test provider"}

	id1, err := s.UpsertPact(ctx, p, "3.0.0")
	require.NoError(t, err)
	id2, err := s.UpsertPact(ctx, p, "3.0.1")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	pact, err := s.ReadPact(ctx, p.Consumer, p.Provider)
	require.NoError(t, err)
	assert.Equal(t, "3.0.1", pact.SpecVersion)
}

func TestUpsertPact_RequiresNames(t *testing.T) {
	s := createTestStore(t)

	_, err := s.UpsertPact(context.Background(), ir.Participants{Consumer: "c"}, "3.0.0")
	assert.Error(t, err)
}

func TestWriteInteraction_InsertAndUpdate(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	id := createTestPact(t, s, "c", "p")

	changed, err := s.WriteInteraction(ctx, id, createTestInteraction("an order", 1))
	require.NoError(t, err)
	assert.True(t, changed, "new interaction")

	changed, err = s.WriteInteraction(ctx, id, createTestInteraction("an order", 1))
	require.NoError(t, err)
	assert.False(t, changed, "identical rewrite")

	changed, err = s.WriteInteraction(ctx, id, createTestInteraction("an order", 2))
	require.NoError(t, err)
	assert.True(t, changed, "contents changed")

	got, err := s.ReadInteractions(ctx, "c", "p")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, map[string]any{"id": json.Number("2")}, got[0].Contents)
}

func TestWriteInteraction_RoundTripsAllFields(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	id := createTestPact(t, s, "c", "p")

	m := ir.MessageInteraction{
		Description: "an order created event",
		ProviderStates: []ir.ProviderState{
			{Name: "an order exists", Params: map[string]any{"id": json.Number("9007199254740993")}},
			{Name: "stock is low"},
		},
		Metadata: map[string]any{"queue": "orders"},
		Contents: []any{"a", json.Number("1.5"), true, nil},
	}
	_, err := s.WriteInteraction(ctx, id, m)
	require.NoError(t, err)

	got, err := s.ReadInteractions(ctx, "c", "p")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, m, got[0])
}

func TestWriteInteraction_EmptyOptionalFieldsReadBackNil(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	id := createTestPact(t, s, "c", "p")

	_, err := s.WriteInteraction(ctx, id, ir.MessageInteraction{Description: "bare", Contents: "x"})
	require.NoError(t, err)

	got, err := s.ReadInteractions(ctx, "c", "p")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].ProviderStates)
	assert.Nil(t, got[0].Metadata)
	assert.Equal(t, "x", got[0].Contents)
}

func TestWriteInteraction_UnknownPact(t *testing.T) {
	s := createTestStore(t)

	_, err := s.WriteInteraction(context.Background(), 999, createTestInteraction("x", 1))
	assert.Error(t, err, "foreign key violation")
}

func TestWriteInteraction_Unserializable(t *testing.T) {
	s := createTestStore(t)
	id := createTestPact(t, s, "c", "p")

	_, err := s.WriteInteraction(context.Background(), id, ir.MessageInteraction{
		Description: "bad",
		Contents:    func() {},
	})
	assert.Error(t, err)
}

func TestDeleteInteractions(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	id := createTestPact(t, s, "c", "p")
	for i, d := range []string{"a", "b", "c"} {
		_, err := s.WriteInteraction(ctx, id, createTestInteraction(d, i))
		require.NoError(t, err)
	}

	n, err := s.DeleteInteractions(ctx, "c", "p", []string{"a", "c", "missing"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := s.ReadInteractions(ctx, "c", "p")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Description)
}

func TestDeleteInteractions_UnknownPact(t *testing.T) {
	s := createTestStore(t)

	n, err := s.DeleteInteractions(context.Background(), "nobody", "nothing", []string{"a"})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteInteractions_Empty(t *testing.T) {
	s := createTestStore(t)

	n, err := s.DeleteInteractions(context.Background(), "c", "p", nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeletePact_CascadesInteractions(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	id := createTestPact(t, s, "c", "p")
	_, err := s.WriteInteraction(ctx, id, createTestInteraction("a", 1))
	require.NoError(t, err)

	require.NoError(t, s.DeletePact(ctx, "c", "p"))

	var count int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM interactions").Scan(&count))
	assert.Zero(t, count)

	assert.ErrorIs(t, s.DeletePact(ctx, "c", "p"), ErrPactNotFound)
}
