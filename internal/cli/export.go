package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/alexthissen/pact-net/internal/engine"
	"github.com/alexthissen/pact-net/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Database string
	Consumer string
	Provider string
	OutDir   string
}

// ExportResult reports the written pact file.
type ExportResult struct {
	Path string `json:"path"`
}

func (r ExportResult) String() string {
	return "wrote " + r.Path
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a stored pact to a pact file",
		Long: `Export a consumer/provider pact from the store as a Pact Specification
v3 message pact file.

Exit codes:
  0 - Pact file written
  2 - Command error (database or pact not found, write failure)

Examples:
  pact export --consumer "Order Web" --provider "Order API"
  pact export --db ./pacts.db --consumer web --provider api --out ./contracts`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().StringVarP(&opts.OutDir, "out", "o", "", "output directory (default from config)")
	addParticipantFlags(cmd, &opts.Consumer, &opts.Provider)
	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, _, err := openStore(opts.RootOptions, opts.Database)
	if err != nil {
		return fail(formatter, ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	eng := engine.New(st, opts.Config, engine.WithLogger(opts.Logger))
	path, err := eng.Export(context.Background(), opts.OutDir, opts.Consumer, opts.Provider)
	if errors.Is(err, store.ErrPactNotFound) {
		return fail(formatter, ExitCommandError, "no such pact", err)
	}
	if err != nil {
		return fail(formatter, ExitCommandError, "failed to export pact", err)
	}

	formatter.VerboseLog("Exported %s -> %s", opts.Consumer, opts.Provider)
	return formatter.Success(ExportResult{Path: path})
}
