// The Broadcast is the round's transmitted payload set (V). It is built by
// the server during publish and read-only afterwards; clients receive their
// own snapshot copies, so a slow consumer can never observe the server
// clearing round state.

package sim

// Broadcast holds the data items transmitted in one round, deduplicated by
// catalog index: a broadcast serves every listener at once, so an item is
// carried at most once per round.
type Broadcast struct {
	items []DataItem
	seen  map[int]bool
}

// NewBroadcast creates an empty broadcast.
func NewBroadcast() *Broadcast {
	return &Broadcast{seen: make(map[int]bool)}
}

// Add appends an item payload unless an item with the same catalog index is
// already carried. Returns whether the item was added.
func (b *Broadcast) Add(item DataItem) bool {
	if b.seen[item.Index] {
		return false
	}
	b.seen[item.Index] = true
	b.items = append(b.items, item)
	return true
}

// Len returns the number of carried items.
func (b *Broadcast) Len() int {
	return len(b.items)
}

// Bytes returns the total payload size of the broadcast.
func (b *Broadcast) Bytes() int64 {
	var total int64
	for _, it := range b.items {
		total += it.Size
	}
	return total
}

// Snapshot returns a fresh copy of the carried items, in transmission
// order. Each notified client gets its own snapshot.
func (b *Broadcast) Snapshot() []DataItem {
	out := make([]DataItem, len(b.items))
	copy(out, b.items)
	return out
}
