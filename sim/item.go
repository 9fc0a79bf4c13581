// Defines the DataItem payload unit and the immutable Catalog it lives in.
// Catalog popularity weights follow a Zipf distribution over item rank.

package sim

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// DataItem is one broadcastable payload. Catalog entries are immutable;
// each Request carries its own value copies so RequestedAt can differ per
// request for the same catalog item.
type DataItem struct {
	Index       int       // position in the catalog, unique
	Size        int64     // payload size in bytes, always > 0
	Popularity  float64   // selection weight in (0, 1]; catalog weights sum to 1
	RequestedAt time.Time // stamped on a request's copy at submission; zero on catalog entries
}

// String returns a human-readable representation of a DataItem.
func (d DataItem) String() string {
	return fmt.Sprintf("DataItem(d%d, %dB, p=%.4f)", d.Index, d.Size, d.Popularity)
}

// Catalog is the ordered, immutable set of data items available for
// broadcast. Items are ranked by popularity: weights are non-increasing
// with index.
type Catalog struct {
	items []DataItem
}

// GenerateCatalog builds a catalog of cfg.Items entries. Sizes are uniform
// in [MinSizeKiB, MaxSizeKiB] (stored in bytes); popularity of the item at
// rank i is zipfWeight(i), so weights sum to 1 and decrease with rank.
func GenerateCatalog(cfg CatalogConfig, rng *rand.Rand) *Catalog {
	items := make([]DataItem, cfg.Items)
	for i := range items {
		sizeKiB := cfg.MinSizeKiB + rng.Int63n(cfg.MaxSizeKiB-cfg.MinSizeKiB+1)
		items[i] = DataItem{
			Index:      i,
			Size:       sizeKiB * 1024,
			Popularity: zipfWeight(cfg.Items, cfg.Theta, i),
		}
	}
	return &Catalog{items: items}
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Item returns the catalog entry at the given index.
func (c *Catalog) Item(index int) DataItem {
	return c.items[index]
}

// Items returns the ordered catalog contents. Callers must not mutate the
// returned slice.
func (c *Catalog) Items() []DataItem {
	return c.items
}

// zipfWeight computes the Zipf selection probability of the item at the
// given rank: (1/(rank+1))^theta normalized over all ranks.
func zipfWeight(count int, theta float64, rank int) float64 {
	numerator := math.Pow(1/float64(rank+1), theta)

	denominator := 0.0
	for i := 0; i < count; i++ {
		denominator += math.Pow(1/float64(i+1), theta)
	}

	return numerator / denominator
}
