// Implements MLRO, the latency-aware reordering of the surviving candidate
// set. Two greedy orderings: data-optimal when items are the scarcer
// dimension, request-optimal otherwise. Both rank by aggregate access
// latency (AAL), the wait accumulated by pending requests.

package sim

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// Reorderer arranges a pruned candidate set to minimize aggregate wait.
type Reorderer struct{}

// NewReorderer creates a Reorderer.
func NewReorderer() *Reorderer {
	return &Reorderer{}
}

// Reorder picks the ordering branch from the controlling dimension: with n
// distinct retained items, n ≤ |Q| routes to the data-optimal ordering,
// otherwise to the request-optimal one. Deterministic given n and |Q|, and
// stable under re-invocation when timestamps have not advanced.
func (ro *Reorderer) Reorder(q CandidateSet, pending []*Request, now time.Time) CandidateSet {
	logrus.Debug("running latency reordering")

	distinct := q.DistinctItems()
	if len(distinct) <= len(q) {
		return ro.dataOptimal(q, distinct, pending, now)
	}
	return ro.requestOptimal(q, pending, now)
}

// dataOptimal greedily orders distinct items by descending AAL, assigns
// each retained item its order position as weight, and rearranges every
// candidate's item list by descending weight.
func (ro *Reorderer) dataOptimal(q CandidateSet, distinct []int, pending []*Request, now time.Time) CandidateSet {
	var order []int
	remaining := append([]int(nil), distinct...)
	for {
		var bestAAL time.Duration
		bestPos := -1
		for pos, index := range remaining {
			if aal := itemAccessLatency(pending, index, now); aal > bestAAL {
				bestAAL = aal
				bestPos = pos
			}
		}
		// No remaining item has positive accumulated wait.
		if bestPos < 0 {
			break
		}
		order = append(order, remaining[bestPos])
		remaining = append(remaining[:bestPos], remaining[bestPos+1:]...)
	}

	weightOf := make(map[int]int, len(order))
	for pos, index := range order {
		weightOf[index] = pos
	}
	for _, c := range q {
		for i := range c.Items {
			c.Items[i].Weight = weightOf[c.Items[i].Index] // absent items keep weight 0
		}
		sort.SliceStable(c.Items, func(i, j int) bool {
			return c.Items[i].Weight > c.Items[j].Weight
		})
	}
	return q
}

// requestOptimal greedily emits candidates by descending AAL, where requests
// with identical item needs pool their accumulated wait.
func (ro *Reorderer) requestOptimal(q CandidateSet, pending []*Request, now time.Time) CandidateSet {
	out := make(CandidateSet, 0, len(q))
	work := append(CandidateSet(nil), q...)
	for {
		var bestAAL time.Duration
		bestPos := -1
		for pos, c := range work {
			if aal := requestAccessLatency(c.Request, pending, now); aal > bestAAL {
				bestAAL = aal
				bestPos = pos
			}
		}
		if bestPos < 0 {
			break
		}
		out = append(out, work[bestPos])
		work = append(work[:bestPos], work[bestPos+1:]...)
	}
	return out
}

// itemAccessLatency sums, over every pending request still waiting on the
// item, the wait since that request's copy was stamped.
func itemAccessLatency(pending []*Request, index int, now time.Time) time.Duration {
	var aal time.Duration
	for _, req := range pending {
		for _, it := range req.RemainingItems() {
			if it.Index != index {
				continue
			}
			aal += now.Sub(it.RequestedAt)
		}
	}
	return aal
}

// requestAccessLatency is the request's own wait plus the wait of every
// other pending request needing an identical item set.
func requestAccessLatency(req *Request, pending []*Request, now time.Time) time.Duration {
	aal := now.Sub(req.SubmittedAt())
	needs := itemIndexSet(req)
	for _, other := range pending {
		if other == req {
			continue
		}
		if equalIndexSets(needs, itemIndexSet(other)) {
			aal += now.Sub(other.SubmittedAt())
		}
	}
	return aal
}

// itemIndexSet returns the request's remaining item indices. Items are kept
// sorted by index from admission on, so the slice is comparable directly.
func itemIndexSet(req *Request) []int {
	items := req.RemainingItems()
	indices := make([]int, len(items))
	for i, it := range items {
		indices[i] = it.Index
	}
	return indices
}

func equalIndexSets(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
