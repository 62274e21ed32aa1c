// Package parallel executes a bounded batch of homogeneous operations
// concurrently on a fixed-size worker pool and collects the outcome.
//
// Two families of entry points are provided:
//   - Map / MapIndexed / MapStream transform every item through a user
//     function and return the results in input order.
//   - ForEach / ForEachIndexed / ForEachStream run a side-effecting function
//     over every item and only report completion or the first failure.
//
// Work distribution
// Items are split into contiguous chunks; idle workers claim the next
// unclaimed chunk through an atomic compare-and-swap counter (work stealing),
// which balances uneven per-item cost without static pre-assignment. The
// chunk size is either supplied via WithChunkSize or derived adaptively from
// the batch size and the pool size. For small batches the engine falls back
// to dispatching one task per item; both modes produce identical results.
//
// Sources
// Collections are consumed through two capability interfaces: IndexedSource
// (random access, exact size) and SequentialSource (single-pass iteration,
// size possibly unknown). FromSlice, FromChan, FromFunc and FromSizedFunc
// adapt common shapes. A sequential source with a known size is snapshotted
// before dispatch; an unknown-size source is pulled in batches under a mutex.
//
// Failure semantics
// A failure of the user function on one item never aborts the batch: the
// remaining items of the chunk are still attempted, every dispatched task
// runs to completion, and all outcome tokens are drained before anything is
// reported. The first error in receive order is returned to the caller with
// its original message intact; later errors are counted and discarded.
// Callers must not rely on which of several concurrent failures is surfaced.
// Panics in the user function are recovered and reported as errors wrapping
// ErrPanicked.
//
// Execution context
// Unless WithExecutor is given, work runs on a process-wide shared pool sized
// to runtime.GOMAXPROCS(0), created on first use (see pool.Default). The
// engine never cancels dispatched work; the context passed to an entry point
// is forwarded to the user function only.
//
// Defaults
//   - chunk size: adaptive, ceil(n / (2 * pool size)), clamped to [1, 1000]
//   - executor: pool.Default()
//   - token buffer: 1024
//   - metrics: discarded (metrics.NoopProvider)
package parallel
