package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/alexthissen/pact-net/internal/builder"
	"github.com/alexthissen/pact-net/internal/config"
	"github.com/alexthissen/pact-net/internal/ir"
)

// ErrInjected is the default error returned by failing doubles.
var ErrInjected = errors.New("injected failure")

// StubDocument is an in-memory builder.Document that accepts everything.
type StubDocument struct {
	mu           sync.Mutex
	Consumer     string
	Provider     string
	Interactions []ir.MessageInteraction
	AddErr       error
}

// NewStubDocument returns a document preloaded with interactions.
func NewStubDocument(interactions ...ir.MessageInteraction) *StubDocument {
	return &StubDocument{Interactions: interactions}
}

// MessageInteractions returns a copy of the recorded interactions.
func (d *StubDocument) MessageInteractions() []ir.MessageInteraction {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]ir.MessageInteraction, len(d.Interactions))
	copy(out, d.Interactions)
	return out
}

// AddInteraction appends m unless AddErr is set.
func (d *StubDocument) AddInteraction(m ir.MessageInteraction) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.AddErr != nil {
		return d.AddErr
	}
	d.Interactions = append(d.Interactions, m)
	return nil
}

// StubDocumentFactory hands out Doc and records the participants it was
// asked for.
type StubDocumentFactory struct {
	mu    sync.Mutex
	Doc   *StubDocument
	Err   error
	Calls int
}

// NewDocument implements builder.DocumentFactory.
func (f *StubDocumentFactory) NewDocument(_ context.Context, consumer, provider string) (builder.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Doc == nil {
		f.Doc = NewStubDocument()
	}
	f.Doc.Consumer = consumer
	f.Doc.Provider = provider
	return f.Doc, nil
}

// CommandCall captures the arguments of one NewUpdateCommand call.
type CommandCall struct {
	Consumer    string
	Provider    string
	Config      config.Config
	Interaction ir.MessageInteraction
	Hosts       builder.HostFactory
}

// RecordingCommands is a builder.CommandFactory that counts executions.
//
// FailOn makes the command for the interaction with that description
// return Err (ErrInjected if nil).
type RecordingCommands struct {
	mu       sync.Mutex
	Calls    []CommandCall
	Executed []string
	FailOn   string
	Err      error
}

// NewUpdateCommand implements builder.CommandFactory.
func (r *RecordingCommands) NewUpdateCommand(consumer, provider string, cfg config.Config, interaction ir.MessageInteraction, hosts builder.HostFactory) builder.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, CommandCall{
		Consumer:    consumer,
		Provider:    provider,
		Config:      cfg,
		Interaction: interaction,
		Hosts:       hosts,
	})
	return &recordedCommand{owner: r, description: interaction.Description}
}

// ExecuteCount returns the number of successful executions.
func (r *RecordingCommands) ExecuteCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Executed)
}

type recordedCommand struct {
	owner       *RecordingCommands
	description string
}

func (c *recordedCommand) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r := c.owner
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailOn != "" && r.FailOn == c.description {
		if r.Err != nil {
			return r.Err
		}
		return ErrInjected
	}
	r.Executed = append(r.Executed, c.description)
	return nil
}

// MergeCall captures the arguments of one DeleteUnexpectedInteractions call.
type MergeCall struct {
	Interactions []ir.MessageInteraction
	Consumer     string
	Provider     string
}

// RecordingMerger is a builder.Merger that records its calls.
type RecordingMerger struct {
	mu    sync.Mutex
	Calls []MergeCall
	Err   error
}

// DeleteUnexpectedInteractions implements builder.Merger.
func (m *RecordingMerger) DeleteUnexpectedInteractions(_ context.Context, interactions []ir.MessageInteraction, consumer, provider string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MergeCall{
		Interactions: interactions,
		Consumer:     consumer,
		Provider:     provider,
	})
	return m.Err
}

// CallCount returns the number of merger calls.
func (m *RecordingMerger) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
