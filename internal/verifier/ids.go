package verifier

import "github.com/google/uuid"

// IDGenerator produces verification run IDs.
// Implemented by UUIDv7Generator (production) and testutil generators.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run IDs.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
