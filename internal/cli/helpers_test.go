package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexthissen/pact-net/internal/ir"
	"github.com/alexthissen/pact-net/internal/pactfile"
	"github.com/alexthissen/pact-net/internal/store"
)

// runCLI executes the root command with args and returns stdout.
// An empty --env-file keeps any .env in the working directory out of tests.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func testPact() ir.Pact {
	return ir.Pact{
		Participants: ir.Participants{Consumer: "Order Web", Provider: "Order API"},
		SpecVersion:  ir.PactSpecVersion,
		Messages: []ir.MessageInteraction{
			{
				Description:    "an order created event",
				ProviderStates: []ir.ProviderState{{Name: "an order exists"}},
				Metadata:       map[string]any{"contentType": "application/json"},
				Contents:       map[string]any{"id": json.Number("1")},
			},
			{
				Description: "an order shipped event",
				Contents:    map[string]any{"id": json.Number("2"), "status": "shipped"},
			},
		},
	}
}

// writeTestPactFile writes testPact to a temp dir and returns its path.
func writeTestPactFile(t *testing.T) string {
	t.Helper()
	path, err := pactfile.Write(t.TempDir(), testPact())
	require.NoError(t, err)
	return path
}

// seedTestStore records testPact in a new database and returns its path.
func seedTestStore(t *testing.T) string {
	t.Helper()
	db := filepath.Join(t.TempDir(), "pacts.db")
	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	p := testPact()
	id, err := st.UpsertPact(ctx, p.Participants, p.SpecVersion)
	require.NoError(t, err)
	for _, m := range p.Messages {
		_, err := st.WriteInteraction(ctx, id, m)
		require.NoError(t, err)
	}
	return db
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
