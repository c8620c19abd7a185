package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexthissen/pact-net/internal/store"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Database string
}

// ListResult holds the stored pacts.
type ListResult struct {
	Database string              `json:"database"`
	Pacts    []store.PactSummary `json:"pacts"`
}

// RenderText prints one line per pact.
func (r ListResult) RenderText(w io.Writer) {
	if len(r.Pacts) == 0 {
		fmt.Fprintf(w, "no pacts in %s\n", r.Database)
		return
	}
	for _, p := range r.Pacts {
		fmt.Fprintf(w, "%s -> %s: %d interaction(s)\n", p.Consumer, p.Provider, p.Interactions)
	}
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pacts in the store",
		Long: `List every consumer/provider pact recorded in the store.

Examples:
  pact list
  pact list --db ./pacts/pacts.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, db, err := openStore(opts.RootOptions, opts.Database)
	if err != nil {
		return fail(formatter, ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	pacts, err := st.ListPacts(context.Background())
	if err != nil {
		return fail(formatter, ExitCommandError, "failed to list pacts", err)
	}

	return formatter.Success(ListResult{Database: db, Pacts: pacts})
}
