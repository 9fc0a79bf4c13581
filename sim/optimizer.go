// Implements MTRS, the maximum-throughput request set selection. The
// relaxation is a linear program over continuous per-request and
// per-(request,item) variables, solved with gonum's simplex method and
// rounded with the reference threshold rule.

package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// ErrModelInfeasible reports that the relaxation selected nothing
// schedulable this pass. Recoverable: the round is skipped and intake
// accumulates more requests.
var ErrModelInfeasible = errors.New("mtrs: relaxation yielded no positive selection")

// ErrVariableResolution reports a solved decision variable that cannot be
// mapped back to a (request, item) coordinate. This is a model/solver
// mismatch and aborts the run.
var ErrVariableResolution = errors.New("mtrs: cannot resolve decision variable")

// tieEps absorbs solver noise when comparing relaxed values against the
// maximum during threshold rounding.
const tieEps = 1e-9

// Optimizer selects, per round, the maximum-cardinality subset of pending
// requests that can be fully served within one unit of transmission budget.
type Optimizer struct {
	bytesPerSlot float64
}

// NewOptimizer creates an Optimizer for a channel carrying bytesPerSlot
// payload bytes per timeslot.
func NewOptimizer(bytesPerSlot float64) *Optimizer {
	return &Optimizer{bytesPerSlot: bytesPerSlot}
}

// pairCoord ties a y decision variable back to its (request, item)
// coordinates.
type pairCoord struct {
	req   int // position in the pending snapshot
	item  int // catalog index
	slots int64
}

// Select solves the relaxation over the pending snapshot and rounds the
// result into a CandidateSet.
//
// Formulation: maximize Σ x_i subject to, per request i,
// Σ_j t(d_j)·y_{i,j} ≤ 1 (one unit of bandwidth×timeslot budget per round)
// and, per needed item j, x_i − y_{i,j} ≤ 0 (a request counts only if all
// of its items are carried). All variables live in [0,1].
//
// Rounding: with n = max_i x_i, requests at the maximum are accepted with
// their full item set; everything below is rejected. Accepting every tied
// maximum is an approximation inherited from the reference algorithm, kept
// deliberately (see DESIGN.md).
func (o *Optimizer) Select(pending []*Request) (CandidateSet, error) {
	m := len(pending)
	if m == 0 {
		return nil, ErrModelInfeasible
	}

	var pairs []pairCoord
	for i, req := range pending {
		for _, it := range req.RemainingItems() {
			pairs = append(pairs, pairCoord{
				req:   i,
				item:  it.Index,
				slots: transmissionSlots(it.Size, o.bytesPerSlot),
			})
		}
	}
	numPairs := len(pairs)
	if numPairs == 0 {
		return nil, ErrModelInfeasible
	}

	// Standard form for lp.Simplex: min c·v s.t. A·v = b, v ≥ 0.
	// Columns: x (m), y (numPairs), then one slack per row.
	// Rows: per-request budget, per-pair coupling, per-request x ≤ 1 bound.
	// y ≤ 1 needs no row: every t(d) ≥ 1 slot, so the budget row caps y.
	rows := 2*m + numPairs
	cols := m + numPairs + rows
	slackBase := m + numPairs

	c := make([]float64, cols)
	for i := 0; i < m; i++ {
		c[i] = -1 // maximize Σ x_i
	}

	a := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)

	for p, pc := range pairs {
		// Budget row for the pair's request: Σ t·y + slack = 1.
		a.Set(pc.req, m+p, float64(pc.slots))
		// Coupling row: x_i − y_{i,j} + slack = 0.
		row := m + p
		a.Set(row, pc.req, 1)
		a.Set(row, m+p, -1)
	}
	for i := 0; i < m; i++ {
		b[i] = 1
		// Bound row: x_i + slack = 1.
		row := m + numPairs + i
		a.Set(row, i, 1)
		b[row] = 1
	}
	for r := 0; r < rows; r++ {
		a.Set(r, slackBase+r, 1)
	}

	_, optX, err := lp.Simplex(c, a, b, 0, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) || errors.Is(err, lp.ErrUnbounded) {
			return nil, fmt.Errorf("%w: %v", ErrModelInfeasible, err)
		}
		return nil, fmt.Errorf("mtrs: simplex solve: %w", err)
	}
	if len(optX) != cols {
		return nil, fmt.Errorf("%w: solver returned %d values for %d variables",
			ErrVariableResolution, len(optX), cols)
	}

	n := -1.0
	for i := 0; i < m; i++ {
		if optX[i] > n {
			n = optX[i]
		}
	}
	if n <= 0 {
		return nil, ErrModelInfeasible
	}

	var q CandidateSet
	for i := 0; i < m; i++ {
		if optX[i] < n-tieEps {
			continue
		}
		cand := &Candidate{Request: pending[i]}
		for _, pc := range pairs {
			if pc.req != i {
				continue
			}
			cand.Items = append(cand.Items, CandidateItem{Index: pc.item, Slots: pc.slots})
		}
		q = append(q, cand)
	}

	logrus.Debugf("mtrs: accepted %d/%d pending requests (relaxed max %.4f)", len(q), m, n)
	return q, nil
}

// transmissionSlots returns t(d) = ceil(size / (bandwidth × timeslot)).
// Always ≥ 1 for positive sizes.
func transmissionSlots(size int64, bytesPerSlot float64) int64 {
	return int64(math.Ceil(float64(size) / bytesPerSlot))
}
