package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexthissen/pact-net/internal/ir"
)

// UpsertPact creates the pact row for p if needed and returns its ID.
// An existing pact keeps its ID; its spec version is updated.
func (s *Store) UpsertPact(ctx context.Context, p ir.Participants, specVersion string) (int64, error) {
	if !p.Valid() {
		return 0, fmt.Errorf("upsert pact: consumer and provider names are required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pacts (consumer, provider, spec_version)
		VALUES (?, ?, ?)
		ON CONFLICT(consumer, provider) DO UPDATE SET spec_version = excluded.spec_version
	`, p.Consumer, p.Provider, specVersion)
	if err != nil {
		return 0, fmt.Errorf("upsert pact: %w", err)
	}

	id, err := s.pactID(ctx, s.db, p.Consumer, p.Provider)
	if err != nil {
		return 0, fmt.Errorf("upsert pact: %w", err)
	}
	return id, nil
}

// WriteInteraction inserts or replaces the interaction with m's description
// in the given pact. Reports whether the stored content changed (a new
// interaction counts as changed).
func (s *Store) WriteInteraction(ctx context.Context, pactID int64, m ir.MessageInteraction) (changed bool, err error) {
	row, err := marshalInteraction(m)
	if err != nil {
		return false, fmt.Errorf("write interaction %q: %w", m.Description, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("write interaction: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var existing string
	err = tx.QueryRowContext(ctx, `
		SELECT content_hash FROM interactions
		WHERE pact_id = ? AND description = ?
	`, pactID, m.Description).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		changed = true
	case err != nil:
		return false, fmt.Errorf("write interaction: read existing: %w", err)
	default:
		changed = existing != row.hash
	}

	if !changed {
		return false, nil
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO interactions
		(pact_id, description, provider_states, metadata, contents, content_hash)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(pact_id, description) DO UPDATE SET
			provider_states = excluded.provider_states,
			metadata = excluded.metadata,
			contents = excluded.contents,
			content_hash = excluded.content_hash
	`,
		pactID,
		m.Description,
		row.providerStates,
		row.metadata,
		row.contents,
		row.hash,
	)
	if err != nil {
		return false, fmt.Errorf("write interaction %q: %w", m.Description, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("write interaction: commit: %w", err)
	}
	return true, nil
}

// DeleteInteractions removes the named interactions from a pact in one
// transaction and returns how many rows were deleted. Unknown pacts and
// unknown descriptions delete nothing.
func (s *Store) DeleteInteractions(ctx context.Context, consumer, provider string, descriptions []string) (int64, error) {
	if len(descriptions) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("delete interactions: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	id, err := s.pactID(ctx, tx, consumer, provider)
	if errors.Is(err, ErrPactNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("delete interactions: %w", err)
	}

	var deleted int64
	for _, d := range descriptions {
		res, err := tx.ExecContext(ctx, `
			DELETE FROM interactions WHERE pact_id = ? AND description = ?
		`, id, d)
		if err != nil {
			return 0, fmt.Errorf("delete interaction %q: %w", d, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("delete interaction %q: %w", d, err)
		}
		deleted += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("delete interactions: commit: %w", err)
	}
	return deleted, nil
}

// DeletePact removes a pact and all its interactions.
func (s *Store) DeletePact(ctx context.Context, consumer, provider string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM pacts WHERE consumer = ? AND provider = ?
	`, consumer, provider)
	if err != nil {
		return fmt.Errorf("delete pact: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete pact: %w", err)
	}
	if n == 0 {
		return ErrPactNotFound
	}
	return nil
}
