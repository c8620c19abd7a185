package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/alexthissen/pact-net/internal/pacterr"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Validation or verification failure
	ExitCommandError = 2 // Command error (bad flags, missing files, database errors)
)

// ExitError carries the exit code a command should terminate with.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps err with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
//
// ExitErrors carry their own code. Otherwise pacterr codes decide:
// invalid pact content and failed verification are failures (1),
// everything else is a command error (2).
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	switch pacterr.CodeOf(err) {
	case pacterr.VerificationFailed, pacterr.InvalidArgument:
		return ExitFailure
	default:
		return ExitCommandError
	}
}

// errorCode returns the machine-readable code reported for err.
func errorCode(err error) string {
	if code := pacterr.CodeOf(err); code != "" {
		return string(code)
	}
	return "COMMAND_ERROR"
}

// textRenderer is implemented by results with a custom text form.
type textRenderer interface {
	RenderText(w io.Writer)
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Diagnostic output; defaults to Writer
	Verbose   bool
}

// CLIResponse is the JSON envelope for all command output.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Success outputs data in the configured format.
// Text output uses RenderText when data implements it.
func (f *OutputFormatter) Success(data any) error {
	return f.emit("ok", data)
}

// Failure outputs a result that represents a failed check (for example a
// failed verification). The data is printed like Success but the JSON
// status is "error".
func (f *OutputFormatter) Failure(data any) error {
	return f.emit("error", data)
}

func (f *OutputFormatter) emit(status string, data any) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetEscapeHTML(false)
		return enc.Encode(CLIResponse{Status: status, Data: data})
	}

	if r, ok := data.(textRenderer); ok {
		r.RenderText(f.Writer)
		return nil
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs err in the configured format.
func (f *OutputFormatter) Error(err error) error {
	var details any
	var pe *pacterr.Error
	if errors.As(err, &pe) && len(pe.Details) > 0 {
		details = pe.Details
	}

	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetEscapeHTML(false)
		return enc.Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    errorCode(err),
				Message: err.Error(),
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", errorCode(err), err.Error())
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// It writes to ErrWriter so JSON output stays parseable.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
