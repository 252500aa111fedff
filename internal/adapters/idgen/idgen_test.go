package idgen

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGeneratorIssuesDistinctV7(t *testing.T) {
	g := NewUUIDGenerator()

	a, b := g.NewID(), g.NewID()
	assert.NotEqual(t, a, b)

	id, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestSequenceGeneratorCountsFromOne(t *testing.T) {
	g := NewSequenceGenerator("sol")
	assert.Equal(t, "sol-1", g.NewID())
	assert.Equal(t, "sol-2", g.NewID())
}

func TestSequenceGeneratorConcurrentUse(t *testing.T) {
	g := NewSequenceGenerator("run")

	var (
		mu   sync.Mutex
		seen = make(map[string]bool)
		wg   sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := g.NewID()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 800)
}
