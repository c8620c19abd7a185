package testutil

import (
	"fmt"
	"sync"
)

// FixedIDGenerator returns the same run ID every time.
//
// Verification results carrying a fixed ID are byte-identical across runs,
// which keeps golden files stable.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a fixed run ID generator.
// If id is empty, Generate returns "test-run-default".
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed ID.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}

// SequenceIDGenerator returns "<prefix>-1", "<prefix>-2", ...
//
// Thread-safety: all methods are safe for concurrent use.
type SequenceIDGenerator struct {
	mu     sync.Mutex
	prefix string
	seq    int64
}

// NewSequenceIDGenerator creates a generator whose first ID is "<prefix>-1".
func NewSequenceIDGenerator(prefix string) *SequenceIDGenerator {
	return &SequenceIDGenerator{prefix: prefix}
}

// Generate returns the next ID.
func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("%s-%d", g.prefix, g.seq)
}

// Reset restarts the sequence at 1.
func (g *SequenceIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
