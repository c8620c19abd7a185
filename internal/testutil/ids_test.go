package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedIDGenerator_ReturnsSameID(t *testing.T) {
	gen := NewFixedIDGenerator("run-123")

	assert.Equal(t, "run-123", gen.Generate())
	assert.Equal(t, "run-123", gen.Generate())
}

func TestFixedIDGenerator_EmptyDefault(t *testing.T) {
	assert.Equal(t, "test-run-default", NewFixedIDGenerator("").Generate())
}

func TestSequenceIDGenerator(t *testing.T) {
	gen := NewSequenceIDGenerator("run")

	assert.Equal(t, "run-1", gen.Generate())
	assert.Equal(t, "run-2", gen.Generate())

	gen.Reset()
	assert.Equal(t, "run-1", gen.Generate())
}

func TestSequenceIDGenerator_Concurrent(t *testing.T) {
	gen := NewSequenceIDGenerator("run")

	var wg sync.WaitGroup
	seen := sync.Map{}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, dup := seen.LoadOrStore(gen.Generate(), true)
				assert.False(t, dup)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, "run-1001", gen.Generate())
}
