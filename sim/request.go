// Defines the Request struct that models a single client's outstanding
// demand. Tracks submission time, remaining items, and the final latency.
//
// Mutation boundary: the owning client goroutine transitions status and
// strips items as broadcasts arrive; the server reads status and items
// between delivery barriers and owns the admission bookkeeping. All cross-
// goroutine fields are guarded by one mutex.

package sim

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// RequestStatus represents the lifecycle state of a request.
type RequestStatus string

const (
	StatusWaiting  RequestStatus = "waiting"
	StatusSent     RequestStatus = "sent"
	StatusFinished RequestStatus = "finished"
)

// Request models one client's ordered set of wanted items. Items are unique
// by catalog index and shrink monotonically as matching broadcasts arrive;
// the list is empty exactly when the request is finished.
type Request struct {
	ClientID int

	mu          sync.Mutex
	items       []DataItem
	status      RequestStatus
	received    bool // admitted into the server's pending set
	submittedAt time.Time
	latency     time.Duration
}

// NewRequest creates a waiting request over value copies of the given items.
func NewRequest(clientID int, items []DataItem) *Request {
	owned := make([]DataItem, len(items))
	copy(owned, items)
	return &Request{
		ClientID: clientID,
		items:    owned,
		status:   StatusWaiting,
	}
}

// String returns a human-readable representation of a Request.
func (r *Request) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf("Request(client %d, %s, %d items)", r.ClientID, r.status, len(r.items))
}

// Status returns the current lifecycle state.
func (r *Request) Status() RequestStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// MarkSent stamps the submission instant onto the request and every item
// copy it carries, then transitions waiting → sent. Called once, by the
// owning client.
func (r *Request) MarkSent(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submittedAt = now
	for i := range r.items {
		r.items[i].RequestedAt = now
	}
	r.status = StatusSent
}

// MarkReceived records server-side admission, so the request is not admitted
// twice.
func (r *Request) MarkReceived() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.received = true
}

// IsReceived reports whether the server has admitted this request.
func (r *Request) IsReceived() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.received
}

// SortItems stable-sorts the item list by catalog index. The server does
// this once at admission; downstream latency bookkeeping relies on it.
func (r *Request) SortItems() {
	r.mu.Lock()
	defer r.mu.Unlock()
	sort.SliceStable(r.items, func(i, j int) bool {
		return r.items[i].Index < r.items[j].Index
	})
}

// RemainingItems returns a copy of the items still wanted.
func (r *Request) RemainingItems() []DataItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]DataItem, len(r.items))
	copy(out, r.items)
	return out
}

// ItemCount returns how many items are still wanted.
func (r *Request) ItemCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// PayloadFor returns this request's copy of the item with the given catalog
// index, if still wanted.
func (r *Request) PayloadFor(index int) (DataItem, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.Index == index {
			return it, true
		}
	}
	return DataItem{}, false
}

// Consume strips every delivered item from the remaining list. If the list
// empties, the request transitions to finished and its latency is stamped
// exactly once as now − submittedAt. Returns whether the request finished.
func (r *Request) Consume(delivered []DataItem, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, got := range delivered {
		for i := range r.items {
			if r.items[i].Index == got.Index {
				r.items = append(r.items[:i], r.items[i+1:]...)
				break
			}
		}
	}
	if len(r.items) == 0 && r.status != StatusFinished {
		r.latency = now.Sub(r.submittedAt)
		r.status = StatusFinished
		return true
	}
	return false
}

// SubmittedAt returns the submission instant (zero before MarkSent).
func (r *Request) SubmittedAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.submittedAt
}

// Latency returns the finished request's total wait (zero before finishing).
func (r *Request) Latency() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latency
}
