package engine

import (
	"context"
	"sync"

	"github.com/alexthissen/pact-net/internal/builder"
	"github.com/alexthissen/pact-net/internal/ir"
	"github.com/alexthissen/pact-net/internal/pacterr"
)

// MessagePact is an in-memory pact document.
//
// Interactions keep declaration order. Descriptions are unique: they are
// the merge key in the store and the pact file.
//
// Thread-safety: all methods are safe for concurrent use.
type MessagePact struct {
	mu           sync.Mutex
	participants ir.Participants
	interactions []ir.MessageInteraction
	index        map[string]int
}

// NewMessagePact creates an empty document.
func NewMessagePact(consumer, provider string) *MessagePact {
	return &MessagePact{
		participants: ir.Participants{Consumer: consumer, Provider: provider},
		index:        make(map[string]int),
	}
}

// NewDocumentFactory returns a factory producing MessagePact documents.
func NewDocumentFactory() builder.DocumentFactory {
	return builder.DocumentFactoryFunc(func(_ context.Context, consumer, provider string) (builder.Document, error) {
		return NewMessagePact(consumer, provider), nil
	})
}

// Participants returns the consumer/provider pair.
func (p *MessagePact) Participants() ir.Participants {
	return p.participants
}

// MessageInteractions returns a copy of the interactions in declaration order.
func (p *MessagePact) MessageInteractions() []ir.MessageInteraction {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]ir.MessageInteraction, len(p.interactions))
	copy(out, p.interactions)
	return out
}

// AddInteraction appends m. A second interaction with the same
// description is an InvalidArgument error.
func (p *MessagePact) AddInteraction(m ir.MessageInteraction) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.index[m.Description]; exists {
		return pacterr.New(pacterr.InvalidArgument, "message %q is already declared in this pact", m.Description).
			WithDetail("consumer", p.participants.Consumer).
			WithDetail("provider", p.participants.Provider)
	}
	p.index[m.Description] = len(p.interactions)
	p.interactions = append(p.interactions, m)
	return nil
}

// Pact returns the document as an ir.Pact.
func (p *MessagePact) Pact() ir.Pact {
	return ir.Pact{
		Participants: p.participants,
		Messages:     p.MessageInteractions(),
		SpecVersion:  ir.PactSpecVersion,
	}
}
