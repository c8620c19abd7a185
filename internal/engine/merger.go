package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexthissen/pact-net/internal/ir"
	"github.com/alexthissen/pact-net/internal/store"
)

// StoreMerger reconciles declared interactions with the store.
// It implements builder.Merger.
type StoreMerger struct {
	store   *store.Store
	logger  *slog.Logger
	metrics *Metrics
	pactDir string
}

// NewStoreMerger creates a merger for s.
func NewStoreMerger(s *store.Store, opts ...Option) *StoreMerger {
	o := applyOptions(opts)
	return &StoreMerger{
		store:   s,
		logger:  o.logger,
		metrics: o.metrics,
		pactDir: o.pactDir,
	}
}

// DeleteUnexpectedInteractions removes persisted interactions of the
// consumer/provider pact whose descriptions are not declared.
//
// A pact that was never stored, or whose persisted descriptions are all
// declared, is left untouched. When a pact directory is configured and
// something was deleted, the pact file is re-exported.
func (m *StoreMerger) DeleteUnexpectedInteractions(ctx context.Context, interactions []ir.MessageInteraction, consumer, provider string) error {
	stale, err := m.Unexpected(ctx, interactions, consumer, provider)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	deleted, err := m.store.DeleteInteractions(ctx, consumer, provider, stale)
	if err != nil {
		return fmt.Errorf("delete unexpected interactions: %w", err)
	}
	m.metrics.notePruned(consumer, provider, deleted)

	m.logger.Info("pruned interactions",
		"consumer", consumer,
		"provider", provider,
		"deleted", deleted,
		"descriptions", stale,
	)

	if m.pactDir == "" {
		return nil
	}
	_, err = exportPact(ctx, m.store, m.pactDir, ir.Participants{Consumer: consumer, Provider: provider})
	if errors.Is(err, store.ErrPactNotFound) {
		return nil
	}
	return err
}

// Unexpected returns the persisted descriptions, in store order, that are
// absent from interactions. Nothing is deleted.
func (m *StoreMerger) Unexpected(ctx context.Context, interactions []ir.MessageInteraction, consumer, provider string) ([]string, error) {
	persisted, err := m.store.ReadInteractions(ctx, consumer, provider)
	if err != nil {
		return nil, fmt.Errorf("delete unexpected interactions: %w", err)
	}

	declared := make(map[string]struct{}, len(interactions))
	for _, in := range interactions {
		declared[in.Description] = struct{}{}
	}

	var stale []string
	for _, p := range persisted {
		if _, ok := declared[p.Description]; !ok {
			stale = append(stale, p.Description)
		}
	}
	return stale, nil
}
