package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/alexthissen/pact-net/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	EnvFile    string

	// Set by PersistentPreRunE.
	Config config.Config
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the pact CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "pact",
		Short: "Consumer-driven contract testing for message pacts",
		Long: `Inspect, validate, export and verify message pacts.

Pacts are recorded by consumer tests into a SQLite store and exported as
Pact Specification v3 files. Configuration comes from --config (YAML or
CUE), then PACT_* environment variables and an optional .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return opts.load(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (.yaml, .yml or .cue)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file with PACT_* overrides")

	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewPruneCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))

	return cmd
}

// load resolves configuration and builds the logger.
func (o *RootOptions) load(logOut io.Writer) error {
	cfg := config.Default()
	if o.ConfigPath != "" {
		loaded, err := config.Load(o.ConfigPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load config", err)
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(o.EnvFile); err != nil {
		return WrapExitError(ExitCommandError, "failed to apply environment", err)
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	level := cfg.SlogLevel()
	if o.Verbose && level > slog.LevelDebug {
		level = slog.LevelDebug
	}

	o.Config = cfg
	o.Logger = newLogger(logOut, level)
	return nil
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}
