// The CandidateSet is the per-round working set flowing through the
// optimizer → pruner → reorderer pipeline. Rebuilt every round, never
// persisted.

package sim

// CandidateItem is one selected item of a candidate: its catalog index, its
// transmission cost in slots, and the weight assigned by latency reordering.
type CandidateItem struct {
	Index  int
	Slots  int64
	Weight int
}

// Candidate associates a pending request with the items retained for this
// round.
type Candidate struct {
	Request *Request
	Items   []CandidateItem
}

// CandidateSet is the round's candidate requests (Q).
type CandidateSet []*Candidate

// TimeToSend returns the slots needed to broadcast every distinct item the
// set retains. An item wanted by several candidates is transmitted once,
// so it is counted once.
func (q CandidateSet) TimeToSend() int64 {
	seen := make(map[int]bool)
	var total int64
	for _, c := range q {
		for _, it := range c.Items {
			if seen[it.Index] {
				continue
			}
			seen[it.Index] = true
			total += it.Slots
		}
	}
	return total
}

// DistinctItems returns the distinct retained item indices in first-seen
// order.
func (q CandidateSet) DistinctItems() []int {
	seen := make(map[int]bool)
	var out []int
	for _, c := range q {
		for _, it := range c.Items {
			if seen[it.Index] {
				continue
			}
			seen[it.Index] = true
			out = append(out, it.Index)
		}
	}
	return out
}

// countContaining returns how many candidates still retain the given item.
func (q CandidateSet) countContaining(index int) int {
	count := 0
	for _, c := range q {
		for _, it := range c.Items {
			if it.Index == index {
				count++
				break
			}
		}
	}
	return count
}

// dropItem removes every candidate that retains the given item and returns
// the remaining set.
func (q CandidateSet) dropItem(index int) CandidateSet {
	kept := q[:0]
outer:
	for _, c := range q {
		for _, it := range c.Items {
			if it.Index == index {
				continue outer
			}
		}
		kept = append(kept, c)
	}
	return kept
}
