package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"net/url"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// ErrPactNotFound is returned when no pact exists for a consumer/provider pair.
var ErrPactNotFound = errors.New("pact not found")

// migration upgrades a database to version.
type migration struct {
	version int
	stmt    string
}

// migrations run in order against databases whose user_version is below
// their version. A fresh database starts at 0 and runs all of them.
var migrations = []migration{
	{1, `CREATE INDEX IF NOT EXISTS idx_interactions_content_hash ON interactions(content_hash)`},
}

// currentSchemaVersion is the user_version of a fully migrated database.
var currentSchemaVersion = migrations[len(migrations)-1].version

// Store is the SQLite pact store.
type Store struct {
	db *sql.DB
}

// Open creates or opens the pact database at path.
//
// Connections use WAL journaling, NORMAL sync, a 5s busy timeout and
// enforced foreign keys, so deleting a pact deletes its interactions.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// One writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// dsn builds a go-sqlite3 data source name carrying the connection pragmas.
func dsn(path string) string {
	q := url.Values{}
	q.Set("_journal_mode", "WAL")
	q.Set("_synchronous", "NORMAL")
	q.Set("_busy_timeout", "5000")
	q.Set("_foreign_keys", "on")
	return "file:" + path + "?" + q.Encode()
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// migrate creates missing tables, then applies pending migrations, each in
// its own transaction together with its user_version bump.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= version {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return err
		}
	}
	return nil
}

func applyMigration(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("migrate to v%d: %w", m.version, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.stmt); err != nil {
		return fmt.Errorf("migrate to v%d: %w", m.version, err)
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
		return fmt.Errorf("migrate to v%d: set user_version: %w", m.version, err)
	}
	return tx.Commit()
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	if err := s.db.QueryRow("PRAGMA " + name).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
