package scheduler

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectEdges_BreadthAlwaysReturnsAll(t *testing.T) {
	p := New(0) // RandomWalkProb 0 -> always breadth
	rng := rand.New(rand.NewSource(1))
	ids := []string{"a", "b", "c", "d", "e"}
	items := p.SelectEdges("parent", ids, 2, rng)
	assert.Len(t, items, len(ids))
	for _, it := range items {
		assert.Equal(t, 3, it.Depth)
		assert.Equal(t, "parent", it.ParentID)
	}
}

func TestSelectEdges_WalkCapsAtThree(t *testing.T) {
	p := New(1) // always walk
	rng := rand.New(rand.NewSource(1))
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	for i := 0; i < 20; i++ {
		items := p.SelectEdges("parent", ids, 0, rng)
		assert.LessOrEqual(t, len(items), 3)
		assert.GreaterOrEqual(t, len(items), 1)
	}
}

func TestSelectEdges_EmptyRelated(t *testing.T) {
	p := New(1)
	rng := rand.New(rand.NewSource(1))
	items := p.SelectEdges("parent", nil, 0, rng)
	assert.Nil(t, items)
}

func TestSelectEdges_DeterministicWithSeededRNG(t *testing.T) {
	p := New(1)
	ids := []string{"a", "b", "c", "d"}

	rng1 := rand.New(rand.NewSource(42))
	rng2 := rand.New(rand.NewSource(42))

	items1 := p.SelectEdges("parent", ids, 0, rng1)
	items2 := p.SelectEdges("parent", ids, 0, rng2)

	assert.Equal(t, items1, items2)
}

func TestSampleWithoutReplacement_NoDuplicates(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ids := []string{"a", "b", "c", "d", "e"}
	out := sampleWithoutReplacement(ids, 3, rng)
	assert.Len(t, out, 3)

	seen := map[string]bool{}
	for _, id := range out {
		assert.False(t, seen[id], "duplicate sampled id %s", id)
		seen[id] = true
	}
}
