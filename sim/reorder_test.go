package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReorderer_BranchSelectionIsDeterministic(t *testing.T) {
	catalog := fixedCatalog(10, 10, 10)
	base := time.Now()
	now := base.Add(5 * time.Second)
	ro := NewReorderer()

	// n = 2 distinct items ≤ |Q| = 2 → data-optimal: the set keeps its
	// candidates, only item order inside each changes.
	r1 := sentRequest(1, base, catalog.Item(0), catalog.Item(1))
	r2 := sentRequest(2, base, catalog.Item(1))
	q := CandidateSet{candidateOf(r1, 1), candidateOf(r2, 1)}
	got := ro.Reorder(q, []*Request{r1, r2}, now)
	require.Len(t, got, 2)
	assert.Same(t, r1, got[0].Request)
	assert.Same(t, r2, got[1].Request)

	// n = 3 distinct items > |Q| = 1 → request-optimal: an ordered
	// sequence is emitted.
	r3 := sentRequest(3, base, catalog.Items()...)
	q = CandidateSet{candidateOf(r3, 1)}
	got = ro.Reorder(q, []*Request{r3}, now)
	require.Len(t, got, 1)
	assert.Same(t, r3, got[0].Request)
}

func TestReorderer_DataOptimalWeightsFollowAALOrder(t *testing.T) {
	// Item 1 is wanted by both pending requests, so it accumulates twice
	// the wait of item 0 and heads the greedy order (position 0). Weights
	// are order positions, and items sort by descending weight.
	catalog := fixedCatalog(10, 10)
	base := time.Now()
	now := base.Add(10 * time.Second)
	r1 := sentRequest(1, base, catalog.Item(0), catalog.Item(1))
	r2 := sentRequest(2, base, catalog.Item(1))
	q := CandidateSet{candidateOf(r1, 1), candidateOf(r2, 1)}

	got := NewReorderer().Reorder(q, []*Request{r1, r2}, now)

	require.Len(t, got[0].Items, 2)
	assert.Equal(t, 0, got[0].Items[0].Index, "weight-1 item first")
	assert.Equal(t, 1, got[0].Items[0].Weight)
	assert.Equal(t, 1, got[0].Items[1].Index)
	assert.Equal(t, 0, got[0].Items[1].Weight)
}

func TestReorderer_RequestOptimalOrdersByDescendingWait(t *testing.T) {
	// Distinct item sets, no pooling: the longest-waiting request leads.
	catalog := fixedCatalog(10, 10, 10, 10, 10, 10)
	base := time.Now()
	old := sentRequest(1, base, catalog.Item(0), catalog.Item(1), catalog.Item(2))
	young := sentRequest(2, base.Add(3*time.Second), catalog.Item(3), catalog.Item(4), catalog.Item(5))
	now := base.Add(10 * time.Second)

	q := CandidateSet{candidateOf(young, 1), candidateOf(old, 1)}
	got := NewReorderer().Reorder(q, []*Request{old, young}, now)

	require.Len(t, got, 2)
	assert.Same(t, old, got[0].Request)
	assert.Same(t, young, got[1].Request)
}

func TestReorderer_IdenticalItemSetsPoolTheirWait(t *testing.T) {
	// Two twins share an item set; each pools the other's wait, beating a
	// slightly older request with a unique set.
	catalog := fixedCatalog(10, 10, 10, 10, 10, 10)
	base := time.Now()
	twinA := sentRequest(1, base.Add(2*time.Second), catalog.Item(0), catalog.Item(1), catalog.Item(2))
	twinB := sentRequest(2, base.Add(2*time.Second), catalog.Item(0), catalog.Item(1), catalog.Item(2))
	loner := sentRequest(3, base, catalog.Item(3), catalog.Item(4), catalog.Item(5))
	now := base.Add(10 * time.Second)
	pending := []*Request{twinA, twinB, loner}

	// 6 distinct items > 3 candidates → request-optimal.
	q := CandidateSet{candidateOf(loner, 1), candidateOf(twinA, 1), candidateOf(twinB, 1)}
	got := NewReorderer().Reorder(q, pending, now)

	require.Len(t, got, 3)
	// Twins: 8s own + 8s pooled = 16s each; loner: 10s.
	assert.Same(t, twinA, got[0].Request)
	assert.Same(t, twinB, got[1].Request)
	assert.Same(t, loner, got[2].Request)
}

func TestReorderer_IdempotentForFixedNow(t *testing.T) {
	catalog := fixedCatalog(10, 10, 10, 10)
	base := time.Now()
	now := base.Add(7 * time.Second)
	r1 := sentRequest(1, base, catalog.Item(0), catalog.Item(1))
	r2 := sentRequest(2, base.Add(time.Second), catalog.Item(2), catalog.Item(3))
	pending := []*Request{r1, r2}
	ro := NewReorderer()

	q := CandidateSet{candidateOf(r1, 1), candidateOf(r2, 1)}
	once := ro.Reorder(q, pending, now)
	twice := ro.Reorder(once, pending, now)

	require.Equal(t, len(once), len(twice))
	for i := range once {
		assert.Same(t, once[i].Request, twice[i].Request)
		require.Equal(t, len(once[i].Items), len(twice[i].Items))
		for j := range once[i].Items {
			assert.Equal(t, once[i].Items[j].Index, twice[i].Items[j].Index)
		}
	}
}

func TestReorderer_ZeroWaitSchedulesNothingRequestOptimal(t *testing.T) {
	// With no accumulated wait the request-optimal greedy emits nothing;
	// the round is skipped rather than broadcast unordered.
	catalog := fixedCatalog(10, 10, 10)
	now := time.Now()
	r1 := sentRequest(1, now, catalog.Items()...)

	q := CandidateSet{candidateOf(r1, 1)}
	got := NewReorderer().Reorder(q, []*Request{r1}, now)
	assert.Empty(t, got)
}
