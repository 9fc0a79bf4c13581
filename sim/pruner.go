// Implements the least-loss heuristic: when the candidate set exceeds the
// per-round slot budget, repeatedly drop the item that strands the fewest
// requests until the set fits.

package sim

import (
	"math"

	"github.com/sirupsen/logrus"
)

// Pruner trims over-budget candidate sets.
type Pruner struct {
	Delta int64 // hard per-round slot budget
}

// NewPruner creates a Pruner with the given slot budget.
func NewPruner(delta int64) *Pruner {
	return &Pruner{Delta: delta}
}

// Prune drops items (and the candidates needing them) until the set fits
// within Delta slots. Per iteration it removes the item retained by the
// fewest candidates, ties broken by first encounter in flattened set order.
//
// Anti-starvation floor: pruning stops once fewer than two candidates
// remain, even over budget, so a large multi-item request can still be
// served instead of being pruned to nothing every round.
func (p *Pruner) Prune(q CandidateSet) CandidateSet {
	logrus.Debug("running least-loss pruning")

	for q.TimeToSend() > p.Delta {
		if len(q) < 2 {
			logrus.Debugf("pruning floor reached with %d candidate(s), proceeding %d slot(s) over budget",
				len(q), q.TimeToSend()-p.Delta)
			break
		}

		minCount := math.MaxInt
		minItem := -1
		for _, c := range q {
			for _, it := range c.Items {
				count := q.countContaining(it.Index)
				if count < minCount {
					minCount = count
					minItem = it.Index
				}
			}
		}
		if minItem < 0 {
			break
		}

		logrus.Debugf("pruning item d%d, stranding %d request(s)", minItem, minCount)
		q = q.dropItem(minItem)
	}

	return q
}
