package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexthissen/pact-net/internal/verifier"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	Fixtures string
}

// VerifyOutput wraps a verification result for display.
type VerifyOutput struct {
	*verifier.Result
}

// RenderText prints one line per interaction and the failures.
func (o VerifyOutput) RenderText(w io.Writer) {
	fmt.Fprintf(w, "Verifying %s -> %s (run %s)\n", o.Consumer, o.Provider, o.RunID)
	for _, in := range o.Interactions {
		mark := "✓"
		if !in.Pass {
			mark = "✗"
		}
		fmt.Fprintf(w, "  %s %s\n", mark, in.Description)
		for _, e := range in.Errors {
			fmt.Fprintf(w, "      %s\n", e)
		}
	}
	if o.Pass {
		fmt.Fprintln(w, "PASS")
	} else {
		fmt.Fprintf(w, "FAIL: %d of %d interaction(s) failed\n", len(o.Failed()), len(o.Interactions))
	}
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify <pact-file>",
		Short: "Verify a message pact against static provider fixtures",
		Long: `Replay a message pact against messages described in a fixtures file.

The fixtures file is YAML listing the provider's messages by description
and the provider states it accepts.

Exit codes:
  0 - All interactions verified
  1 - Verification failed or the pact file is invalid
  2 - Command error`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Fixtures, "fixtures", "", "provider fixtures file (required)")
	_ = cmd.MarkFlagRequired("fixtures")
	return cmd
}

func runVerify(opts *VerifyOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	fixtures, err := verifier.LoadFixtures(opts.Fixtures)
	if err != nil {
		return fail(formatter, ExitCommandError, "failed to load fixtures", err)
	}
	states, scenarios, err := fixtures.Registries()
	if err != nil {
		return fail(formatter, ExitCommandError, "invalid fixtures", err)
	}

	v := verifier.New(states, scenarios, verifier.WithLogger(opts.Logger))
	result, err := v.VerifyFile(context.Background(), path)
	if err != nil {
		return fail(formatter, GetExitCode(err), "failed to verify pact", err)
	}

	if err := result.Err(); err != nil {
		if ferr := formatter.Failure(VerifyOutput{result}); ferr != nil {
			return ferr
		}
		return WrapExitError(ExitFailure, "verification failed", err)
	}
	return formatter.Success(VerifyOutput{result})
}
