package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexthissen/pact-net/internal/store"
)

// fail reports err through f and returns it as an ExitError.
func fail(f *OutputFormatter, code int, message string, err error) error {
	exitErr := WrapExitError(code, message, err)
	_ = f.Error(exitErr)
	return exitErr
}

// openStore opens the database named by --db, falling back to the
// configured database. Its directory is created if missing.
func openStore(opts *RootOptions, db string) (*store.Store, string, error) {
	if db == "" {
		db = opts.Config.Database
	}
	if err := os.MkdirAll(filepath.Dir(db), 0o755); err != nil {
		return nil, db, fmt.Errorf("create database directory: %w", err)
	}
	st, err := store.Open(db)
	return st, db, err
}

// addParticipantFlags registers the required --consumer/--provider flags.
func addParticipantFlags(cmd *cobra.Command, consumer, provider *string) {
	cmd.Flags().StringVar(consumer, "consumer", "", "consumer name (required)")
	cmd.Flags().StringVar(provider, "provider", "", "provider name (required)")
	_ = cmd.MarkFlagRequired("consumer")
	_ = cmd.MarkFlagRequired("provider")
}
