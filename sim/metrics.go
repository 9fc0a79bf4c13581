// Tracks run-wide statistics for final reporting: per-client latencies,
// round counts, and broadcast volume.

package sim

import (
	"fmt"
	"time"
)

// Metrics aggregates statistics about the run for final reporting. Useful
// for evaluating scheduling behavior over time.
type Metrics struct {
	CompletedClients int   // Number of clients fully served
	RoundsRun        int   // Broadcast rounds that published at least one item
	SkippedRounds    int   // Rounds that scheduled nothing (intake back-off)
	ItemsBroadcast   int   // Total item payloads transmitted
	SlotsSlept       int64 // Total transmission slots spent delivering

	ClientLatencies map[int]time.Duration // map of client ID -> total wait
}

// NewMetrics creates an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{ClientLatencies: make(map[int]time.Duration)}
}

// RecordLatency stores one client's final latency.
func (m *Metrics) RecordLatency(clientID int, latency time.Duration) {
	m.ClientLatencies[clientID] = latency
	m.CompletedClients++
}

// AggregateAccessLatency returns the mean of all recorded client latencies.
func (m *Metrics) AggregateAccessLatency() time.Duration {
	if len(m.ClientLatencies) == 0 {
		return 0
	}
	var total time.Duration
	for _, lat := range m.ClientLatencies {
		total += lat
	}
	return total / time.Duration(len(m.ClientLatencies))
}

// Print displays aggregated metrics at the end of the run.
func (m *Metrics) Print(wall time.Duration) {
	fmt.Println("=== Broadcast Metrics ===")
	fmt.Printf("Completed Clients    : %d\n", m.CompletedClients)
	fmt.Printf("Broadcast Rounds     : %d (plus %d skipped)\n", m.RoundsRun, m.SkippedRounds)
	fmt.Printf("Items Broadcast      : %d\n", m.ItemsBroadcast)
	fmt.Printf("Slots Spent          : %d\n", m.SlotsSlept)
	fmt.Printf("AAL                  : %v\n", m.AggregateAccessLatency())
	fmt.Printf("Total Execution Time : %v\n", wall)
}
