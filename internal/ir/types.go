package ir

import "strings"

// Participants names the two sides of a pact.
type Participants struct {
	Consumer string `json:"consumer"`
	Provider string `json:"provider"`
}

// Valid reports whether both names are set and non-blank.
func (p Participants) Valid() bool {
	return strings.TrimSpace(p.Consumer) != "" && strings.TrimSpace(p.Provider) != ""
}

// ProviderState is a named precondition the provider must establish
// before an interaction is replayed.
type ProviderState struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

// MessageInteraction is one expected asynchronous message.
//
// Description is the merge key: two interactions with the same description
// in the same pact are the same interaction.
type MessageInteraction struct {
	Description    string          `json:"description"`
	ProviderStates []ProviderState `json:"providerStates,omitempty"`
	Metadata       map[string]any  `json:"metadata,omitempty"`
	Contents       any             `json:"contents"`
}

// Message is a produced message: contents plus metadata.
// Returned by scenario factories during verification.
type Message struct {
	Contents any            `json:"contents"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Pact is the persisted contract between a consumer and a provider.
type Pact struct {
	Participants
	Messages    []MessageInteraction `json:"messages"`
	SpecVersion string               `json:"spec_version"`
}

// Descriptions returns the descriptions of all messages in order.
func (p Pact) Descriptions() []string {
	out := make([]string, len(p.Messages))
	for i, m := range p.Messages {
		out[i] = m.Description
	}
	return out
}

// Find returns the message with the given description.
func (p Pact) Find(description string) (MessageInteraction, bool) {
	for _, m := range p.Messages {
		if m.Description == description {
			return m, true
		}
	}
	return MessageInteraction{}, false
}
