package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexthissen/pact-net/internal/pactfile"
)

// FileValidation is the validation outcome for one pact file.
type FileValidation struct {
	Path  string `json:"path"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ValidationResult holds validation results for all files.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// RenderText prints one line per file.
func (r ValidationResult) RenderText(w io.Writer) {
	for _, f := range r.Files {
		if f.Valid {
			fmt.Fprintf(w, "✓ %s\n", f.Path)
		} else {
			fmt.Fprintf(w, "✗ %s: %s\n", f.Path, f.Error)
		}
	}
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <pact-file>...",
		Short: "Validate pact files against the message pact schema",
		Long: `Validate one or more pact files against the Pact Specification v3
message schema.

Exit codes:
  0 - All files are valid
  1 - At least one file is invalid
  2 - Command error`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	result := ValidationResult{Valid: true, Files: make([]FileValidation, 0, len(paths))}
	for _, path := range paths {
		formatter.VerboseLog("Validating %s", path)
		fv := FileValidation{Path: path, Valid: true}

		data, err := os.ReadFile(path)
		if err == nil {
			err = pactfile.Validate(data)
		}
		if err != nil {
			fv.Valid = false
			fv.Error = err.Error()
			result.Valid = false
		}
		result.Files = append(result.Files, fv)
	}

	if !result.Valid {
		if err := formatter.Failure(result); err != nil {
			return err
		}
		return NewExitError(ExitFailure, "one or more pact files are invalid")
	}
	return formatter.Success(result)
}
