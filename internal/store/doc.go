// Package store persists pacts in SQLite.
//
// A pact is one row per (consumer, provider) pair; each declared message
// interaction is one row keyed by (pact, description). Contents, metadata
// and provider states are stored as canonical JSON together with a content
// hash, so rewriting an unchanged interaction is detectable and cheap.
//
// The database is opened in WAL mode with a single connection. Schema
// changes are applied with PRAGMA user_version migrations on Open.
//
// Reads are ordered by description (binary collation), so two stores
// holding the same interactions produce identical pacts.
package store
