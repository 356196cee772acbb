package vertexstore

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videograph/walker/internal/vertex"
)

func TestTryClaim_Linearizable(t *testing.T) {
	s := New()
	const n = 50
	var wg sync.WaitGroup
	wins := make([]bool, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			wins[i] = s.TryClaim("v1", 0)
		}(i)
	}
	wg.Wait()

	winCount := 0
	for _, w := range wins {
		if w {
			winCount++
		}
	}
	assert.Equal(t, 1, winCount, "exactly one caller should win the claim")
}

func TestRecord_TwiceReturnsErrAlreadyRecorded(t *testing.T) {
	s := New()
	v := &vertex.Vertex{ID: "v1"}
	require.NoError(t, s.Record(v, 0))
	err := s.Record(v, 0)
	assert.ErrorIs(t, err, ErrAlreadyRecorded)
}

func TestRecord_RejectsOnceCapReached(t *testing.T) {
	s := New()
	require.NoError(t, s.Record(&vertex.Vertex{ID: "v1"}, 1))
	err := s.Record(&vertex.Vertex{ID: "v2"}, 1)
	assert.ErrorIs(t, err, ErrDiscoveryCapReached)
	assert.Equal(t, 1, s.DiscoveredCount())
}

func TestRecord_ConcurrentCallersNeverExceedCap(t *testing.T) {
	s := New()
	const n = 50
	const max = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			s.Record(&vertex.Vertex{ID: id}, max)
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, s.DiscoveredCount(), max)
}

func TestSnapshotRestore_RoundTrips(t *testing.T) {
	s := New()
	s.TryClaim("v1", 0)
	s.TryClaim("v2", 1)
	require.NoError(t, s.Record(&vertex.Vertex{ID: "v1"}, 0))

	visited, discovered := s.Snapshot()

	s2 := New()
	s2.Restore(visited, discovered)

	assert.Equal(t, 2, s2.VisitedCount())
	assert.Equal(t, 1, s2.DiscoveredCount())
	_, ok := s2.Visited("v2")
	assert.True(t, ok)
}
