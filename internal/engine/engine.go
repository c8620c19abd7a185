package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alexthissen/pact-net/internal/builder"
	"github.com/alexthissen/pact-net/internal/config"
	"github.com/alexthissen/pact-net/internal/ir"
	"github.com/alexthissen/pact-net/internal/store"
)

// Engine bundles the local collaborators for one store and configuration.
type Engine struct {
	store    *store.Store
	cfg      config.Config
	logger   *slog.Logger
	docs     builder.DocumentFactory
	commands *Commands
	merger   *StoreMerger
}

// New creates an engine. cfg.PactDir, if set, receives exported pact files.
func New(s *store.Store, cfg config.Config, opts ...Option) *Engine {
	opts = append([]Option{WithPactDir(cfg.PactDir)}, opts...)
	o := applyOptions(opts)
	return &Engine{
		store:    s,
		cfg:      cfg,
		logger:   o.logger,
		docs:     NewDocumentFactory(),
		commands: NewCommands(s, opts...),
		merger:   NewStoreMerger(s, opts...),
	}
}

// Commands returns the engine's command factory.
func (e *Engine) Commands() *Commands { return e.commands }

// Merger returns the engine's merger.
func (e *Engine) Merger() *StoreMerger { return e.merger }

// NewBuilder returns a builder wired to this engine.
func (e *Engine) NewBuilder(opts ...builder.Option) *builder.MessagePactBuilder {
	opts = append([]builder.Option{builder.WithLogger(e.logger)}, opts...)
	return builder.New(e.cfg, e.docs, e.commands, e.merger, opts...)
}

// Prune keeps only the listed descriptions in a stored pact, exactly as a
// Build declaring those interactions would. Returns the pruned descriptions.
func (e *Engine) Prune(ctx context.Context, consumer, provider string, keep []string) ([]string, error) {
	declared := make([]ir.MessageInteraction, len(keep))
	for i, d := range keep {
		declared[i] = ir.MessageInteraction{Description: d}
	}

	stale, err := e.merger.Unexpected(ctx, declared, consumer, provider)
	if err != nil {
		return nil, err
	}
	if err := e.merger.DeleteUnexpectedInteractions(ctx, declared, consumer, provider); err != nil {
		return nil, err
	}
	return stale, nil
}

// Export writes the stored pact for consumer/provider to dir.
func (e *Engine) Export(ctx context.Context, dir, consumer, provider string) (string, error) {
	if dir == "" {
		dir = e.cfg.PactDir
	}
	if dir == "" {
		return "", fmt.Errorf("export pact: no output directory")
	}
	return exportPact(ctx, e.store, dir, ir.Participants{Consumer: consumer, Provider: provider})
}
