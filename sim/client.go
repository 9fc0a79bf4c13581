// Models one simulated client: sleep a bounded random jitter, submit the
// request, then block on the per-client delivery channel until the server
// hands over a round snapshot.

package sim

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// delivery is the one-shot message a client receives per round: its own
// copy of the broadcast content plus the round barrier to release after
// consuming.
type delivery struct {
	items []DataItem
	done  *sync.WaitGroup
}

// Client owns one Request and consumes broadcasts on its behalf.
type Client struct {
	ID      int
	Request *Request

	// jitter is the staggered-arrival delay, fixed at generation time so
	// runs are reproducible from the workload seed.
	jitter time.Duration
	inbox  chan delivery
	clock  Clock
}

// NewClient creates a client around its generated request.
func NewClient(id int, req *Request, jitter time.Duration) *Client {
	return &Client{
		ID:      id,
		Request: req,
		jitter:  jitter,
		inbox:   make(chan delivery, 1),
	}
}

// Run is the client goroutine body. It never returns for a client whose
// needed items are never broadcast again; stalling forever is accepted
// simulation behavior, not a fault.
func (c *Client) Run() {
	c.clock.Sleep(c.jitter)

	c.Request.MarkSent(c.clock.Now())
	logrus.Debugf("client %d submitted request with %d item(s)", c.ID, c.Request.ItemCount())

	// A request generated empty has nothing to wait for.
	if c.Request.Consume(nil, c.clock.Now()) {
		logrus.Debugf("client %d submitted an empty request, finishing immediately", c.ID)
		return
	}

	for d := range c.inbox {
		// Finished state must be visible before the barrier releases, so
		// the server never signals a client that already exited this loop.
		finished := c.Request.Consume(d.items, c.clock.Now())
		d.done.Done()
		if finished {
			logrus.Debugf("client %d finished, latency %v", c.ID, c.Request.Latency())
			return
		}
	}
}
