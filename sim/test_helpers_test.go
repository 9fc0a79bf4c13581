package sim

import (
	"time"
)

// fixedCatalog builds a catalog with the given item sizes (KiB) and uniform
// popularity weights summing to 1.
func fixedCatalog(sizesKiB ...int64) *Catalog {
	items := make([]DataItem, len(sizesKiB))
	for i, kib := range sizesKiB {
		items[i] = DataItem{
			Index:      i,
			Size:       kib * 1024,
			Popularity: 1.0 / float64(len(sizesKiB)),
		}
	}
	return &Catalog{items: items}
}

// sentRequest builds an admitted-ready request over the given catalog items,
// submitted at the given instant.
func sentRequest(clientID int, submittedAt time.Time, items ...DataItem) *Request {
	req := NewRequest(clientID, items)
	req.MarkSent(submittedAt)
	req.SortItems()
	return req
}

// candidateOf wraps a request's full remaining item set into a Candidate,
// with the given per-item slot cost.
func candidateOf(req *Request, slotsPerItem int64) *Candidate {
	cand := &Candidate{Request: req}
	for _, it := range req.RemainingItems() {
		cand.Items = append(cand.Items, CandidateItem{Index: it.Index, Slots: slotsPerItem})
	}
	return cand
}
