// Package scheduler decides which of a vertex's related edges get pushed
// onto the frontier after an expansion, mirroring the random-walk/breadth
// split the walk is built around.
package scheduler

import (
	"math/rand"

	"github.com/videograph/walker/internal/vertex"
)

// Policy selects which outbound edges of a just-expanded vertex to push.
// It is pure given its *rand.Rand, which is what makes crawl runs
// reproducible when seeded identically.
type Policy struct {
	// RandomWalkProb is the probability [0,1] of following a random subset
	// of related ids (a walk step) rather than pushing all of them (a
	// breadth step).
	RandomWalkProb float64
}

// New returns a Policy with the given random-walk probability.
func New(randomWalkProb float64) *Policy {
	return &Policy{RandomWalkProb: randomWalkProb}
}

// SelectEdges returns the work items to push for a vertex expanded at
// currentDepth. With probability RandomWalkProb it samples k in {1,2,3}
// (capped at the number of related ids) without replacement; otherwise it
// returns every related id. k does not scale with out-degree beyond the
// {1,2,3} cap — an out-degree of 40 still contributes at most 3 edges on
// a walk step, matching the source this policy is modeled on.
func (p *Policy) SelectEdges(parentID string, relatedIDs []string, currentDepth int, rng *rand.Rand) []vertex.WorkItem {
	if len(relatedIDs) == 0 {
		return nil
	}

	var chosen []string
	if rng.Float64() < p.RandomWalkProb {
		max := len(relatedIDs)
		if max > 3 {
			max = 3
		}
		k := 1
		if max > 1 {
			k = 1 + rng.Intn(max)
		}
		chosen = sampleWithoutReplacement(relatedIDs, k, rng)
	} else {
		chosen = relatedIDs
	}

	items := make([]vertex.WorkItem, 0, len(chosen))
	for _, id := range chosen {
		items = append(items, vertex.WorkItem{
			ID:       id,
			Depth:    currentDepth + 1,
			ParentID: parentID,
		})
	}
	return items
}

// sampleWithoutReplacement returns k distinct elements of ids in random
// order, using a partial Fisher-Yates shuffle over a copy of ids, so only
// k swaps are made and ids itself is never reordered.
func sampleWithoutReplacement(ids []string, k int, rng *rand.Rand) []string {
	if k >= len(ids) {
		out := make([]string, len(ids))
		copy(out, ids)
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}

	pool := make([]string, len(ids))
	copy(pool, ids)
	out := make([]string, 0, k)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		out = append(out, pool[i])
	}
	return out
}
