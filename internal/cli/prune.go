package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexthissen/pact-net/internal/engine"
)

// PruneOptions holds flags for the prune command.
type PruneOptions struct {
	*RootOptions
	Database string
	Consumer string
	Provider string
	Keep     []string
}

// PruneResult lists the interactions removed.
type PruneResult struct {
	Consumer string   `json:"consumer"`
	Provider string   `json:"provider"`
	Pruned   []string `json:"pruned"`
}

// RenderText prints the pruned descriptions.
func (r PruneResult) RenderText(w io.Writer) {
	if len(r.Pruned) == 0 {
		fmt.Fprintf(w, "%s -> %s: nothing to prune\n", r.Consumer, r.Provider)
		return
	}
	fmt.Fprintf(w, "%s -> %s: pruned %d interaction(s)\n", r.Consumer, r.Provider, len(r.Pruned))
	for _, d := range r.Pruned {
		fmt.Fprintf(w, "  - %s\n", d)
	}
}

// NewPruneCommand creates the prune command.
func NewPruneCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PruneOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete stored interactions that are no longer declared",
		Long: `Keep only the listed interactions of a stored pact, deleting the rest.

This is the same reconciliation a consumer test build performs before
publishing. When a pact directory is configured the pact file is
re-exported.

Examples:
  pact prune --consumer web --provider api --keep "an order created event"
  pact prune --consumer web --provider api   # deletes every interaction`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrune(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().StringArrayVar(&opts.Keep, "keep", nil, "description of an interaction to keep (repeatable)")
	addParticipantFlags(cmd, &opts.Consumer, &opts.Provider)
	return cmd
}

func runPrune(opts *PruneOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, _, err := openStore(opts.RootOptions, opts.Database)
	if err != nil {
		return fail(formatter, ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	eng := engine.New(st, opts.Config, engine.WithLogger(opts.Logger))
	pruned, err := eng.Prune(context.Background(), opts.Consumer, opts.Provider, opts.Keep)
	if err != nil {
		return fail(formatter, ExitCommandError, "failed to prune pact", err)
	}
	if pruned == nil {
		pruned = []string{}
	}

	return formatter.Success(PruneResult{
		Consumer: opts.Consumer,
		Provider: opts.Provider,
		Pruned:   pruned,
	})
}
