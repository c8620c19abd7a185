package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexthissen/pact-net/internal/ir"
)

// PactSummary describes one stored pact.
type PactSummary struct {
	ir.Participants
	SpecVersion  string `json:"spec_version"`
	Interactions int    `json:"interactions"`
}

// InteractionRef locates one interaction by pact and description.
type InteractionRef struct {
	ir.Participants
	Description string `json:"description"`
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) pactID(ctx context.Context, q queryRower, consumer, provider string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `
		SELECT id FROM pacts WHERE consumer = ? AND provider = ?
	`, consumer, provider).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrPactNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query pact id: %w", err)
	}
	return id, nil
}

// ReadInteractions returns a pact's interactions ordered by description.
//
// Returns an empty slice (not nil) if the pact does not exist or has no
// interactions.
func (s *Store) ReadInteractions(ctx context.Context, consumer, provider string) ([]ir.MessageInteraction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.description, i.provider_states, i.metadata, i.contents, i.content_hash
		FROM interactions i
		JOIN pacts p ON i.pact_id = p.id
		WHERE p.consumer = ? AND p.provider = ?
		ORDER BY i.description COLLATE BINARY ASC
	`, consumer, provider)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	interactions := []ir.MessageInteraction{}
	for rows.Next() {
		var description string
		var row interactionRow
		if err := rows.Scan(&description, &row.providerStates, &row.metadata, &row.contents, &row.hash); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		m, err := unmarshalInteraction(description, row)
		if err != nil {
			return nil, fmt.Errorf("interaction %q: %w", description, err)
		}
		interactions = append(interactions, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}

	return interactions, nil
}

// ReadPact returns the full pact for a consumer/provider pair.
// Returns ErrPactNotFound if no such pact was ever written.
func (s *Store) ReadPact(ctx context.Context, consumer, provider string) (ir.Pact, error) {
	var specVersion string
	err := s.db.QueryRowContext(ctx, `
		SELECT spec_version FROM pacts WHERE consumer = ? AND provider = ?
	`, consumer, provider).Scan(&specVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Pact{}, fmt.Errorf("read pact %s/%s: %w", consumer, provider, ErrPactNotFound)
	}
	if err != nil {
		return ir.Pact{}, fmt.Errorf("read pact: %w", err)
	}

	messages, err := s.ReadInteractions(ctx, consumer, provider)
	if err != nil {
		return ir.Pact{}, fmt.Errorf("read pact: %w", err)
	}

	return ir.Pact{
		Participants: ir.Participants{Consumer: consumer, Provider: provider},
		Messages:     messages,
		SpecVersion:  specVersion,
	}, nil
}

// ListPacts returns every stored pact ordered by consumer then provider.
func (s *Store) ListPacts(ctx context.Context) ([]PactSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.consumer, p.provider, p.spec_version, COUNT(i.id)
		FROM pacts p
		LEFT JOIN interactions i ON i.pact_id = p.id
		GROUP BY p.id
		ORDER BY p.consumer COLLATE BINARY ASC, p.provider COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query pacts: %w", err)
	}
	defer rows.Close()

	pacts := []PactSummary{}
	for rows.Next() {
		var ps PactSummary
		if err := rows.Scan(&ps.Consumer, &ps.Provider, &ps.SpecVersion, &ps.Interactions); err != nil {
			return nil, fmt.Errorf("scan pact: %w", err)
		}
		pacts = append(pacts, ps)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pacts: %w", err)
	}
	return pacts, nil
}

// FindByContentHash returns every interaction, across all pacts, whose
// content hash equals hash.
func (s *Store) FindByContentHash(ctx context.Context, hash string) ([]InteractionRef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.consumer, p.provider, i.description
		FROM interactions i
		JOIN pacts p ON i.pact_id = p.id
		WHERE i.content_hash = ?
		ORDER BY p.consumer COLLATE BINARY, p.provider COLLATE BINARY, i.description COLLATE BINARY
	`, hash)
	if err != nil {
		return nil, fmt.Errorf("query content hash: %w", err)
	}
	defer rows.Close()

	refs := []InteractionRef{}
	for rows.Next() {
		var ref InteractionRef
		if err := rows.Scan(&ref.Consumer, &ref.Provider, &ref.Description); err != nil {
			return nil, fmt.Errorf("scan interaction ref: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interaction refs: %w", err)
	}
	return refs, nil
}
