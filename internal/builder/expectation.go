package builder

import "github.com/alexthissen/pact-net/internal/ir"

// MessageExpectation accumulates one message interaction fluently.
// Nothing is recorded until WithContent is called.
type MessageExpectation struct {
	b           *MessagePactBuilder
	interaction ir.MessageInteraction
}

// ExpectsToReceive starts a message interaction with the given description.
func (b *MessagePactBuilder) ExpectsToReceive(description string) *MessageExpectation {
	return &MessageExpectation{
		b:           b,
		interaction: ir.MessageInteraction{Description: description},
	}
}

// Given adds a provider state without parameters.
func (e *MessageExpectation) Given(state string) *MessageExpectation {
	return e.GivenWithParams(state, nil)
}

// GivenWithParams adds a provider state with parameters.
func (e *MessageExpectation) GivenWithParams(state string, params map[string]any) *MessageExpectation {
	e.interaction.ProviderStates = append(e.interaction.ProviderStates, ir.ProviderState{
		Name:   state,
		Params: params,
	})
	return e
}

// WithMetadata sets the message metadata.
func (e *MessageExpectation) WithMetadata(metadata map[string]any) *MessageExpectation {
	e.interaction.Metadata = metadata
	return e
}

// WithContent sets the message contents and records the interaction.
func (e *MessageExpectation) WithContent(contents any) error {
	e.interaction.Contents = contents
	return e.b.AddMessage(e.interaction)
}
