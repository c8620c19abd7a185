package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexthissen/pact-net/internal/ir"
)

// createTestStore creates a new store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestPact upserts a pact and returns its ID.
func createTestPact(t *testing.T, s *Store, consumer, provider string) int64 {
	t.Helper()
	id, err := s.UpsertPact(context.Background(), ir.Participants{Consumer: consumer, Provider: provider}, ir.PactSpecVersion)
	require.NoError(t, err)
	return id
}

// createTestInteraction creates a normalized interaction with an id field.
func createTestInteraction(description string, id int) ir.MessageInteraction {
	return ir.MessageInteraction{
		Description: description,
		Contents:    map[string]any{"id": json.Number(strconv.Itoa(id))},
	}
}
