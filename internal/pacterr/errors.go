// Package pacterr defines the error taxonomy shared by the pact builder,
// the provider-state registry, the message scenarios and the verifier.
//
// All errors surface synchronously to the caller. Use the IsXxx helpers
// (which see through wrapping) rather than comparing codes by hand.
package pacterr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code categorizes pact client errors.
type Code string

const (
	// InvalidArgument indicates a blank name, nil callback or empty batch.
	InvalidArgument Code = "INVALID_ARGUMENT"

	// InvalidState indicates an operation invoked out of sequence.
	InvalidState Code = "INVALID_STATE"

	// DuplicateStateHandler indicates a (description, action) pair is already registered.
	DuplicateStateHandler Code = "DUPLICATE_STATE_HANDLER"

	// PublishFailure indicates an update command failed to publish an interaction.
	PublishFailure Code = "PUBLISH_FAILURE"

	// ScenarioNotFound indicates no message scenario matches a description.
	ScenarioNotFound Code = "SCENARIO_NOT_FOUND"

	// AmbiguousScenario indicates several message scenarios share a description.
	AmbiguousScenario Code = "AMBIGUOUS_SCENARIO"

	// VerificationFailed indicates at least one interaction did not verify.
	VerificationFailed Code = "VERIFICATION_FAILED"
)

// Error is a categorized pact client error.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Message is a human-readable description.
	Message string

	// Details carries structured context, e.g. the offending
	// description and action of a duplicate state handler.
	Details map[string]string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Code, e.Message)

	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%q", k, e.Details[k])
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
	}

	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error with the given code and message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error with the given code wrapping cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: cause}
}

// WithDetail returns e with an additional detail entry.
func (e *Error) WithDetail(key, value string) *Error {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// CodeOf returns the code of the first *Error in err's chain,
// or the empty string if there is none.
func CodeOf(err error) Code {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// IsInvalidArgument reports whether err is an InvalidArgument error.
func IsInvalidArgument(err error) bool { return CodeOf(err) == InvalidArgument }

// IsInvalidState reports whether err is an InvalidState error.
func IsInvalidState(err error) bool { return CodeOf(err) == InvalidState }

// IsDuplicateStateHandler reports whether err is a DuplicateStateHandler error.
func IsDuplicateStateHandler(err error) bool { return CodeOf(err) == DuplicateStateHandler }

// IsPublishFailure reports whether err is a PublishFailure error.
func IsPublishFailure(err error) bool { return CodeOf(err) == PublishFailure }

// IsScenarioNotFound reports whether err is a ScenarioNotFound error.
func IsScenarioNotFound(err error) bool { return CodeOf(err) == ScenarioNotFound }

// IsAmbiguousScenario reports whether err is an AmbiguousScenario error.
func IsAmbiguousScenario(err error) bool { return CodeOf(err) == AmbiguousScenario }

// IsVerificationFailed reports whether err is a VerificationFailed error.
func IsVerificationFailed(err error) bool { return CodeOf(err) == VerificationFailed }
