package builder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/alexthissen/pact-net/internal/config"
	"github.com/alexthissen/pact-net/internal/ir"
	"github.com/alexthissen/pact-net/internal/pacterr"
)

// MessagePactBuilder records message interactions for one consumer/provider
// pair and publishes them on Build.
//
// Thread-safety: all methods are safe for concurrent use. Build holds the
// builder lock while commands execute, so commands must not call back into
// the builder.
type MessagePactBuilder struct {
	mu sync.Mutex

	cfg      config.Config
	docs     DocumentFactory
	commands CommandFactory
	merger   Merger
	hosts    HostFactory
	logger   *slog.Logger

	consumer string
	provider string
	doc      Document
	built    bool
}

// Option configures a MessagePactBuilder.
type Option func(*MessagePactBuilder)

// WithLogger sets the builder's logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(b *MessagePactBuilder) {
		b.logger = l
	}
}

// WithHostFactory sets the host factory passed to update commands.
func WithHostFactory(h HostFactory) Option {
	return func(b *MessagePactBuilder) {
		b.hosts = h
	}
}

// New creates a builder with its collaborators.
// cfg is passed through unchanged to every update command.
func New(cfg config.Config, docs DocumentFactory, commands CommandFactory, merger Merger, opts ...Option) *MessagePactBuilder {
	b := &MessagePactBuilder{
		cfg:      cfg,
		docs:     docs,
		commands: commands,
		merger:   merger,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ServiceConsumer names the consumer side of the pact.
//
// Returns InvalidArgument for a blank name and InvalidState once the
// builder is initialized. The builder is unchanged on error.
func (b *MessagePactBuilder) ServiceConsumer(name string) (*MessagePactBuilder, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkRenameLocked("consumer", name); err != nil {
		return b, err
	}
	b.consumer = name
	return b, nil
}

// HasPactWith names the provider side of the pact.
// Same validation as ServiceConsumer.
func (b *MessagePactBuilder) HasPactWith(name string) (*MessagePactBuilder, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkRenameLocked("provider", name); err != nil {
		return b, err
	}
	b.provider = name
	return b, nil
}

func (b *MessagePactBuilder) checkRenameLocked(role, name string) error {
	if strings.TrimSpace(name) == "" {
		return pacterr.New(pacterr.InvalidArgument, "%s name cannot be null or empty", role)
	}
	if b.doc != nil {
		return pacterr.New(pacterr.InvalidState, "cannot change %s name after the pact is initialized", role).
			WithDetail("state", b.stateLocked().String())
	}
	return nil
}

// Initialize creates the pact document for the named participants.
//
// Returns InvalidState if either participant is unnamed or the builder is
// already initialized. A document factory error is returned wrapped and
// leaves the builder unchanged.
func (b *MessagePactBuilder) Initialize(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.consumer == "" {
		return pacterr.New(pacterr.InvalidState, "consumer name has not been set, please supply a consumer name using ServiceConsumer")
	}
	if b.provider == "" {
		return pacterr.New(pacterr.InvalidState, "provider name has not been set, please supply a provider name using HasPactWith")
	}
	if b.doc != nil {
		return pacterr.New(pacterr.InvalidState, "pact is already initialized").
			WithDetail("state", b.stateLocked().String())
	}

	doc, err := b.docs.NewDocument(ctx, b.consumer, b.provider)
	if err != nil {
		return fmt.Errorf("initialize pact: %w", err)
	}
	b.doc = doc

	b.logger.Debug("pact initialized",
		"consumer", b.consumer,
		"provider", b.provider,
	)
	return nil
}

// AddMessage records one message interaction.
//
// Contents, metadata and provider state params are normalized to their
// JSON form, so any JSON-serializable value is accepted and later changes
// to the caller's values do not reach the recorded interaction. Returns
// InvalidState before Initialize and InvalidArgument for a blank
// description or an unserializable value.
func (b *MessagePactBuilder) AddMessage(m ir.MessageInteraction) error {
	if strings.TrimSpace(m.Description) == "" {
		return pacterr.New(pacterr.InvalidArgument, "message description cannot be null or empty")
	}

	contents, err := ir.Normalize(m.Contents)
	if err != nil {
		return pacterr.Wrap(pacterr.InvalidArgument, err, "message contents are not JSON serializable").
			WithDetail("description", m.Description)
	}
	metadata, err := ir.NormalizeMap(m.Metadata)
	if err != nil {
		return pacterr.Wrap(pacterr.InvalidArgument, err, "message metadata is not JSON serializable").
			WithDetail("description", m.Description)
	}
	var states []ir.ProviderState
	if len(m.ProviderStates) > 0 {
		states = make([]ir.ProviderState, len(m.ProviderStates))
	}
	for i, st := range m.ProviderStates {
		params, err := ir.NormalizeMap(st.Params)
		if err != nil {
			return pacterr.Wrap(pacterr.InvalidArgument, err, "provider state params are not JSON serializable").
				WithDetail("description", m.Description).
				WithDetail("state", st.Name)
		}
		states[i] = ir.ProviderState{Name: st.Name, Params: params}
	}
	m.Contents = contents
	m.Metadata = metadata
	m.ProviderStates = states

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.doc == nil {
		return pacterr.New(pacterr.InvalidState, "pact has not been initialized, please call Initialize before adding messages")
	}
	if err := b.doc.AddInteraction(m); err != nil {
		return fmt.Errorf("add message %q: %w", m.Description, err)
	}
	return nil
}

// Build publishes every declared interaction.
//
// Returns InvalidState before Initialize. A merger error aborts the build
// before any interaction is published. The first failing update command
// stops the build with a PublishFailure; interactions published before it
// are not rolled back.
func (b *MessagePactBuilder) Build(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.doc == nil {
		return pacterr.New(pacterr.InvalidState, "pact has not been initialized, please call Initialize before Build")
	}

	interactions := b.doc.MessageInteractions()

	if err := b.merger.DeleteUnexpectedInteractions(ctx, interactions, b.consumer, b.provider); err != nil {
		return fmt.Errorf("build pact: delete unexpected interactions: %w", err)
	}

	for i, interaction := range interactions {
		cmd := b.commands.NewUpdateCommand(b.consumer, b.provider, b.cfg, interaction, b.hosts)
		if err := cmd.Execute(ctx); err != nil {
			b.logger.Error("publish failed",
				"consumer", b.consumer,
				"provider", b.provider,
				"interaction", interaction.Description,
				"published", i,
				"total", len(interactions),
				"error", err,
			)
			return pacterr.Wrap(pacterr.PublishFailure, err, "publish interaction %q", interaction.Description).
				WithDetail("consumer", b.consumer).
				WithDetail("provider", b.provider)
		}
	}

	b.built = true
	b.logger.Info("pact built",
		"consumer", b.consumer,
		"provider", b.provider,
		"interactions", len(interactions),
	)
	return nil
}

// ConsumerName returns the consumer name, or "" if unset.
func (b *MessagePactBuilder) ConsumerName() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.consumer
}

// ProviderName returns the provider name, or "" if unset.
func (b *MessagePactBuilder) ProviderName() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.provider
}

// Config returns the configuration passed to update commands.
func (b *MessagePactBuilder) Config() config.Config {
	return b.cfg
}

// State returns the current lifecycle state.
func (b *MessagePactBuilder) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

func (b *MessagePactBuilder) stateLocked() State {
	switch {
	case b.built:
		return Built
	case b.doc != nil:
		return Initialized
	case b.consumer != "" && b.provider != "":
		return ParticipantsSet
	case b.consumer != "":
		return ConsumerSet
	case b.provider != "":
		return ProviderSet
	default:
		return Unconfigured
	}
}
