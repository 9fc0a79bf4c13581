// Implements the PendingSet and CompletedSet, the server-owned containers
// that track admitted requests through their lifecycle.

package sim

// PendingSet holds admitted requests that are not yet fully served.
// Only the server goroutine mutates it.
type PendingSet struct {
	requests []*Request
}

// Add appends a newly-admitted request.
func (ps *PendingSet) Add(r *Request) {
	ps.requests = append(ps.requests, r)
}

// Len returns the number of pending requests.
func (ps *PendingSet) Len() int {
	return len(ps.requests)
}

// Requests returns the pending requests for iteration. Callers must not
// mutate the returned slice.
func (ps *PendingSet) Requests() []*Request {
	return ps.requests
}

// Settle removes every request whose item list has emptied and returns them.
// Pending requests shrink to empty exactly when their client finished.
func (ps *PendingSet) Settle() []*Request {
	var settled []*Request
	kept := ps.requests[:0]
	for _, r := range ps.requests {
		if r.ItemCount() == 0 {
			settled = append(settled, r)
			continue
		}
		kept = append(kept, r)
	}
	ps.requests = kept
	return settled
}

// CompletedSet holds fully-served requests. It grows monotonically; the run
// terminates when it covers every client.
type CompletedSet struct {
	requests []*Request
}

// Add appends finished requests.
func (cs *CompletedSet) Add(rs ...*Request) {
	cs.requests = append(cs.requests, rs...)
}

// Len returns the number of completed requests.
func (cs *CompletedSet) Len() int {
	return len(cs.requests)
}

// Requests returns the completed requests for iteration.
func (cs *CompletedSet) Requests() []*Request {
	return cs.requests
}
