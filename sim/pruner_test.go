package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPruner_WithinBudgetUntouched(t *testing.T) {
	catalog := fixedCatalog(10, 10)
	now := time.Now()
	r1 := sentRequest(1, now, catalog.Item(0))
	r2 := sentRequest(2, now, catalog.Item(1))
	q := CandidateSet{candidateOf(r1, 1), candidateOf(r2, 1)}

	pruned := NewPruner(4).Prune(q)
	assert.Len(t, pruned, 2)
}

func TestPruner_DropsLeastShared(t *testing.T) {
	// Item 0 is wanted by both candidates, item 1 by one. Over budget,
	// the heuristic drops item 1 first: it strands fewer requests.
	catalog := fixedCatalog(10, 10)
	now := time.Now()
	r1 := sentRequest(1, now, catalog.Item(0), catalog.Item(1))
	r2 := sentRequest(2, now, catalog.Item(0))
	q := CandidateSet{candidateOf(r1, 1), candidateOf(r2, 1)}

	pruned := NewPruner(1).Prune(q)
	require.Len(t, pruned, 1)
	assert.Equal(t, 2, pruned[0].Request.ClientID)
	assert.Equal(t, 0, pruned[0].Items[0].Index)
}

func TestPruner_BudgetOrFloorAlwaysHolds(t *testing.T) {
	// Property: after pruning, the set fits the budget OR the floor was
	// reached; never both violated.
	catalog := fixedCatalog(10, 10, 10, 10, 10, 10)
	now := time.Now()
	reqs := []*Request{
		sentRequest(1, now, catalog.Item(0), catalog.Item(1)),
		sentRequest(2, now, catalog.Item(2), catalog.Item(3)),
		sentRequest(3, now, catalog.Item(4), catalog.Item(5)),
		sentRequest(4, now, catalog.Item(0), catalog.Item(2)),
	}
	for delta := int64(1); delta <= 8; delta++ {
		q := make(CandidateSet, 0, len(reqs))
		for _, r := range reqs {
			q = append(q, candidateOf(r, 1))
		}
		pruned := NewPruner(delta).Prune(q)
		if pruned.TimeToSend() > delta && len(pruned) >= 2 {
			t.Fatalf("delta=%d: %d slots over budget with %d candidates remaining",
				delta, pruned.TimeToSend()-delta, len(pruned))
		}
	}
}

func TestPruner_FloorStopsStarvation(t *testing.T) {
	// A single oversized candidate is never pruned away: the round runs
	// over budget instead.
	catalog := fixedCatalog(10, 10, 10)
	now := time.Now()
	r1 := sentRequest(1, now, catalog.Items()...)
	q := CandidateSet{candidateOf(r1, 1)}

	pruned := NewPruner(1).Prune(q)
	require.Len(t, pruned, 1)
	assert.Equal(t, int64(3), pruned.TimeToSend())
}
