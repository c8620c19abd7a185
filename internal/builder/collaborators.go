package builder

import (
	"context"

	"github.com/alexthissen/pact-net/internal/config"
	"github.com/alexthissen/pact-net/internal/ir"
)

// Document is the in-progress pact owned by a builder.
type Document interface {
	// MessageInteractions returns every interaction declared so far.
	MessageInteractions() []ir.MessageInteraction

	// AddInteraction records one interaction.
	AddInteraction(ir.MessageInteraction) error
}

// DocumentFactory creates the pact document for a consumer/provider pair.
type DocumentFactory interface {
	NewDocument(ctx context.Context, consumer, provider string) (Document, error)
}

// DocumentFactoryFunc adapts a function to DocumentFactory.
type DocumentFactoryFunc func(ctx context.Context, consumer, provider string) (Document, error)

// NewDocument calls f.
func (f DocumentFactoryFunc) NewDocument(ctx context.Context, consumer, provider string) (Document, error) {
	return f(ctx, consumer, provider)
}

// Host is a running mock/verification host process.
type Host interface {
	Close() error
}

// HostFactory starts hosts on behalf of update commands.
// The builder never calls it; it is passed through to the CommandFactory.
type HostFactory func(ctx context.Context, cfg config.Config) (Host, error)

// Command publishes a single interaction.
type Command interface {
	Execute(ctx context.Context) error
}

// CommandFactory creates the update command for one interaction.
type CommandFactory interface {
	NewUpdateCommand(consumer, provider string, cfg config.Config, interaction ir.MessageInteraction, hosts HostFactory) Command
}

// CommandFactoryFunc adapts a function to CommandFactory.
type CommandFactoryFunc func(consumer, provider string, cfg config.Config, interaction ir.MessageInteraction, hosts HostFactory) Command

// NewUpdateCommand calls f.
func (f CommandFactoryFunc) NewUpdateCommand(consumer, provider string, cfg config.Config, interaction ir.MessageInteraction, hosts HostFactory) Command {
	return f(consumer, provider, cfg, interaction, hosts)
}

// Merger reconciles declared interactions with previously persisted ones.
type Merger interface {
	// DeleteUnexpectedInteractions removes persisted interactions of the
	// consumer/provider pact whose descriptions are not in interactions.
	DeleteUnexpectedInteractions(ctx context.Context, interactions []ir.MessageInteraction, consumer, provider string) error
}
