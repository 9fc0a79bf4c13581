// Package sim provides the core engine of the push-based broadcast
// dissemination simulator.
//
// # Reading Guide
//
// Start with these three files to understand the scheduling kernel:
//   - request.go: Request lifecycle (waiting → sent → finished) and the
//     shared-mutation boundary between server and clients
//   - optimizer.go: the MTRS relaxation that selects the per-round
//     maximum-throughput request set
//   - server.go: the round loop (intake, optimize, prune, reorder, publish,
//     delivery barrier, settle)
//
// # Architecture
//
// One Server goroutine drives broadcast rounds over a shared catalog; one
// goroutine per Client submits a request and consumes round snapshots. The
// scheduling pipeline per round is:
//
//	Optimizer (MTRS) → Pruner (least-loss heuristic) → Reorderer (MLRO)
//
// The optimizer maximizes the number of fully-served requests per round via
// a relaxed linear program (gonum lp.Simplex). The pruner trims the selected
// set down to the per-round slot budget by repeatedly dropping the item that
// strands the fewest requests. The reorderer minimizes aggregate access
// latency with one of two greedy orderings, chosen by whether items or
// requests are the scarcer dimension.
//
// Delivery is race-free by construction: every client receives its own
// immutable snapshot of the round's broadcast, and the server blocks on a
// barrier over all notified clients before clearing round state.
package sim
