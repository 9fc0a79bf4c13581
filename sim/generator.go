// Client workload generation: each client gets a Zipf-weighted draw of
// catalog items and an arrival jitter, all derived from the clients RNG
// subsystem.

package sim

import (
	"math/rand"
	"time"
)

// GenerateClients builds the simulated client population. Per client, the
// item count is uniform in [MinItems, MaxItems] and each item is picked by
// a cumulative-probability walk over the catalog (popularity-ranked), so
// popular items dominate requests. Duplicate picks are skipped: a request's
// items are unique by catalog index. A draw can also land beyond the
// accumulated mass and select nothing, matching the reference generator.
func GenerateClients(catalog *Catalog, cfg WorkloadConfig, slot time.Duration, rng *rand.Rand) []*Client {
	clients := make([]*Client, cfg.Clients)
	for id := range clients {
		var items []DataItem
		wanted := make(map[int]bool)

		count := cfg.MinItems + rng.Intn(cfg.MaxItems-cfg.MinItems+1)
		for n := 0; n < count; n++ {
			draw := rng.Float64()
			accumulated := 0.0
			for _, item := range catalog.Items() {
				accumulated += item.Popularity
				if draw < accumulated {
					if !wanted[item.Index] {
						wanted[item.Index] = true
						items = append(items, item)
					}
					break
				}
			}
		}

		var jitter time.Duration
		if cfg.MaxJitterSlots > 0 {
			jitter = time.Duration(rng.Int63n(cfg.MaxJitterSlots+1)) * slot
		}

		clients[id] = NewClient(id, NewRequest(id, items), jitter)
	}
	return clients
}
