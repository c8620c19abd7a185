package pacterr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := New(DuplicateStateHandler, "state handler already registered").
		WithDetail("description", "an order exists").
		WithDetail("action", "setup")

	assert.Equal(t,
		`DUPLICATE_STATE_HANDLER: state handler already registered (action="setup", description="an order exists")`,
		err.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("broker unreachable")
	err := Wrap(PublishFailure, cause, "publish %q", "first message")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "broker unreachable")
	assert.True(t, IsPublishFailure(err))
}

func TestHelpersSeeThroughWrapping(t *testing.T) {
	base := New(InvalidState, "build before initialize")
	wrapped := fmt.Errorf("consumer test: %w", base)

	assert.True(t, IsInvalidState(wrapped))
	assert.False(t, IsInvalidArgument(wrapped))
	assert.Equal(t, InvalidState, CodeOf(wrapped))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, Code(""), CodeOf(errors.New("plain")))
	assert.Equal(t, Code(""), CodeOf(nil))
}

func TestHelpers(t *testing.T) {
	tests := []struct {
		code  Code
		check func(error) bool
	}{
		{InvalidArgument, IsInvalidArgument},
		{InvalidState, IsInvalidState},
		{DuplicateStateHandler, IsDuplicateStateHandler},
		{PublishFailure, IsPublishFailure},
		{ScenarioNotFound, IsScenarioNotFound},
		{AmbiguousScenario, IsAmbiguousScenario},
		{VerificationFailed, IsVerificationFailed},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.True(t, tt.check(New(tt.code, "x")))
		})
	}
}
