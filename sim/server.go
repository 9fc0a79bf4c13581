// The broadcast server: drives repeated rounds of intake → optimize →
// prune → reorder → publish → delivery barrier → settle until every client
// has been fully served.

package sim

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Server owns the pending/completed sets and the per-round scheduling
// pipeline. All round state is mutated only by the Run goroutine; clients
// touch nothing but their own requests.
type Server struct {
	catalog *Catalog
	clients []*Client
	cfg     ServerConfig
	clock   Clock

	pending   PendingSet
	completed CompletedSet

	optimizer *Optimizer
	pruner    *Pruner
	reorderer *Reorderer

	Metrics *Metrics
}

// NewServer wires the scheduling pipeline over a catalog and a client
// population.
func NewServer(catalog *Catalog, clients []*Client, cfg ServerConfig, clock Clock) *Server {
	s := &Server{
		catalog:   catalog,
		clients:   clients,
		cfg:       cfg,
		clock:     clock,
		optimizer: NewOptimizer(cfg.BytesPerSlot()),
		pruner:    NewPruner(cfg.DeltaSlots),
		reorderer: NewReorderer(),
		Metrics:   NewMetrics(),
	}
	for _, c := range clients {
		c.clock = clock
	}
	return s
}

// Run starts every client goroutine, then loops broadcast rounds until all
// clients are fully served. Returns only on completion or on a fatal
// model/solver mismatch; a client whose items are never rebroadcast stalls
// the run forever by design.
func (s *Server) Run() error {
	var clientsDone sync.WaitGroup
	for _, c := range s.clients {
		clientsDone.Add(1)
		go func(c *Client) {
			defer clientsDone.Done()
			c.Run()
		}(c)
	}

	for {
		s.intake()
		if done := s.settle(); done {
			break
		}

		if s.pending.Len() == 0 {
			// Nothing admitted yet; give intake a slot to accumulate.
			s.Metrics.SkippedRounds++
			s.clock.Sleep(s.cfg.SlotDuration())
			continue
		}

		q, err := s.schedule()
		if err != nil {
			return err
		}

		bcast, err := s.publish(q)
		if err != nil {
			return err
		}
		if bcast.Len() == 0 {
			// The pass selected nothing; advance the round without
			// signaling anyone, with a one-slot back-off so the loop
			// cannot spin unbounded.
			s.Metrics.SkippedRounds++
			s.clock.Sleep(s.cfg.SlotDuration())
			continue
		}

		s.awaitDelivery(bcast)
	}

	clientsDone.Wait()
	for _, c := range s.clients {
		s.Metrics.RecordLatency(c.ID, c.Request.Latency())
	}
	return nil
}

// intake admits every newly-submitted request into the pending set, and
// accounts for clients that finished before ever being admitted (a request
// generated empty finishes on submission).
func (s *Server) intake() {
	for _, c := range s.clients {
		req := c.Request
		if req.IsReceived() {
			continue
		}
		switch req.Status() {
		case StatusSent:
			req.SortItems() // downstream latency bookkeeping relies on index order
			req.MarkReceived()
			s.pending.Add(req)
			logrus.Debugf("admitted request from client %d (%d items)", c.ID, req.ItemCount())
		case StatusFinished:
			req.MarkReceived()
			s.completed.Add(req)
		}
	}
}

// settle moves fully-served pending requests into the completed set and
// reports whether every client has been served.
func (s *Server) settle() bool {
	if served := s.pending.Settle(); len(served) > 0 {
		s.completed.Add(served...)
	}
	return s.completed.Len() == len(s.clients)
}

// schedule runs the optimizer, the pruner when the selection exceeds the
// slot budget, and the latency reorderer. An infeasible model is not an
// error: it yields an empty set and the round is skipped.
func (s *Server) schedule() (CandidateSet, error) {
	logrus.Debug("running throughput optimizer")
	q, err := s.optimizer.Select(s.pending.Requests())
	if err != nil {
		if errors.Is(err, ErrModelInfeasible) {
			logrus.Debugf("nothing schedulable this pass: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if q.TimeToSend() > s.cfg.DeltaSlots {
		q = s.pruner.Prune(q)
	}

	return s.reorderer.Reorder(q, s.pending.Requests(), s.clock.Now()), nil
}

// publish resolves every retained (request, item) pair to its payload copy
// and builds the round's broadcast, one transmission per distinct item. A
// pair that no longer resolves means the candidate set disagrees with the
// pending state; that is a logic error and aborts the run.
func (s *Server) publish(q CandidateSet) (*Broadcast, error) {
	bcast := NewBroadcast()
	for _, cand := range q {
		for _, it := range cand.Items {
			payload, ok := cand.Request.PayloadFor(it.Index)
			if !ok {
				return nil, fmt.Errorf("%w: client %d does not hold item d%d",
					ErrVariableResolution, cand.Request.ClientID, it.Index)
			}
			bcast.Add(payload)
		}
	}
	return bcast, nil
}

// awaitDelivery models the transmission delay, then hands every admitted,
// still-active client its own snapshot of the broadcast and blocks until
// all of them have consumed it. The barrier guarantees no client is still
// scanning round content once this returns, so clearing the broadcast
// (dropping it here) is safe.
func (s *Server) awaitDelivery(bcast *Broadcast) {
	slots := downloadSlots(bcast, s.cfg.BytesPerSlot())
	logrus.Debugf("publishing %d item(s), %d download slot(s)", bcast.Len(), slots)
	s.clock.Sleep(time.Duration(slots) * s.cfg.SlotDuration())

	var barrier sync.WaitGroup
	for _, c := range s.clients {
		req := c.Request
		// Skip unadmitted and finished clients, and empty requests: a
		// client with nothing left to want finishes on its own and may
		// never drain its inbox.
		if !req.IsReceived() || req.Status() == StatusFinished || req.ItemCount() == 0 {
			continue
		}
		barrier.Add(1)
		c.inbox <- delivery{items: bcast.Snapshot(), done: &barrier}
	}
	barrier.Wait()

	s.Metrics.RoundsRun++
	s.Metrics.ItemsBroadcast += bcast.Len()
	s.Metrics.SlotsSlept += slots
}

// downloadSlots is the round's transmission delay:
// ceil(total broadcast bytes / (bandwidth × timeslot)).
func downloadSlots(bcast *Broadcast, bytesPerSlot float64) int64 {
	return int64(math.Ceil(float64(bcast.Bytes()) / bytesPerSlot))
}
