package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexthissen/pact-net/internal/ir"
)

func TestReadInteractions_OrderedByDescription(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	id := createTestPact(t, s, "c", "p")
	for i, d := range []string{"zebra", "Apple", "apple", "mango"} {
		_, err := s.WriteInteraction(ctx, id, createTestInteraction(d, i))
		require.NoError(t, err)
	}

	got, err := s.ReadInteractions(ctx, "c", "p")
	require.NoError(t, err)

	descriptions := make([]string, len(got))
	for i, m := range got {
		descriptions[i] = m.Description
	}
	assert.Equal(t, []string{"Apple", "apple", "mango", "zebra"}, descriptions)
}

func TestReadInteractions_UnknownPactIsEmpty(t *testing.T) {
	s := createTestStore(t)

	got, err := s.ReadInteractions(context.Background(), "nobody", "nothing")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReadInteractions_IsolatedPerPact(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	id1 := createTestPact(t, s, "c", "p1")
	id2 := createTestPact(t, s, "c", "p2")
	_, err := s.WriteInteraction(ctx, id1, createTestInteraction("shared", 1))
	require.NoError(t, err)
	_, err = s.WriteInteraction(ctx, id2, createTestInteraction("shared", 2))
	require.NoError(t, err)

	got, err := s.ReadInteractions(ctx, "c", "p1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, createTestInteraction("shared", 1), got[0])
}

func TestReadPact(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	id := createTestPact(t, s, "Test consumer", "Test provider")
	_, err := s.WriteInteraction(ctx, id, createTestInteraction("an order", 1))
	require.NoError(t, err)

	pact, err := s.ReadPact(ctx, "Test consumer", "Test provider")
	require.NoError(t, err)
	assert.Equal(t, "Test consumer", pact.Consumer)
	assert.Equal(t, "Test provider", pact.Provider)
	assert.Equal(t, ir.PactSpecVersion, pact.SpecVersion)
	assert.Equal(t, []string{"an order"}, pact.Descriptions())
}

func TestReadPact_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadPact(context.Background(), "nobody", "nothing")
	assert.ErrorIs(t, err, ErrPactNotFound)
}

func TestListPacts(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	idB := createTestPact(t, s, "b", "p")
	createTestPact(t, s, "a", "p")
	for i, d := range []string{"x", "y"} {
		_, err := s.WriteInteraction(ctx, idB, createTestInteraction(d, i))
		require.NoError(t, err)
	}

	pacts, err := s.ListPacts(ctx)
	require.NoError(t, err)
	require.Len(t, pacts, 2)
	assert.Equal(t, "a", pacts[0].Consumer)
	assert.Equal(t, 0, pacts[0].Interactions)
	assert.Equal(t, "b", pacts[1].Consumer)
	assert.Equal(t, 2, pacts[1].Interactions)
}

func TestListPacts_Empty(t *testing.T) {
	s := createTestStore(t)

	pacts, err := s.ListPacts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pacts)
}

func TestFindByContentHash(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	m := createTestInteraction("shared", 1)
	for _, provider := range []string{"p2", "p1"} {
		id := createTestPact(t, s, "c", provider)
		_, err := s.WriteInteraction(ctx, id, m)
		require.NoError(t, err)
	}

	hash, err := ir.InteractionHash(m)
	require.NoError(t, err)

	refs, err := s.FindByContentHash(ctx, hash)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "p1", refs[0].Provider)
	assert.Equal(t, "p2", refs[1].Provider)
	assert.Equal(t, "shared", refs[0].Description)

	refs, err = s.FindByContentHash(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, refs)
}
