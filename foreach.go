package parallel

import (
	"context"
	"time"
)

// ForEach runs fn over every element of items concurrently and waits for the
// whole batch to finish.
//
// Semantics:
//   - An empty items slice returns nil immediately; fn is never invoked and
//     the execution context is never touched.
//   - Every element is visited exactly once; no ordering of side effects
//     across items is guaranteed.
//   - If any invocation fails, the first error in receive order is returned,
//     after all dispatched tasks have been drained. A failure never aborts
//     sibling tasks.
func ForEach[T any](
	ctx context.Context, items []T, fn func(context.Context, T) error, opts ...Option,
) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}
	if fn == nil {
		return ErrNilFunction
	}
	if len(items) == 0 {
		return nil
	}
	return runForEach(ctx, cfg, FromSlice(items), fn)
}

// ForEachIndexed is ForEach over an arbitrary random-access source.
func ForEachIndexed[T any](
	ctx context.Context, src IndexedSource[T], fn func(context.Context, T) error, opts ...Option,
) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}
	if fn == nil {
		return ErrNilFunction
	}
	if src == nil || src.Size() == 0 {
		return nil
	}
	return runForEach(ctx, cfg, src, fn)
}

// ForEachStream is ForEach over a single-pass source, with the same
// known-size snapshot behavior as MapStream.
func ForEachStream[T any](
	ctx context.Context, src SequentialSource[T], fn func(context.Context, T) error, opts ...Option,
) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}
	if fn == nil {
		return ErrNilFunction
	}
	if src == nil {
		return nil
	}
	if n, ok := src.TrySize(); ok {
		if n == 0 {
			return nil
		}
		snap := snapshot(src, n)
		if snap.Size() == 0 {
			return nil
		}
		return runForEach(ctx, cfg, snap, fn)
	}
	return runForEachStreamed(ctx, cfg, src, fn)
}

// runForEach dispatches a known-size batch and waits for exactly one terminal
// completion token per dispatched task, collecting item failures on a
// separate conduit.
func runForEach[T any](
	ctx context.Context, cfg config, src IndexedSource[T], fn func(context.Context, T) error,
) error {
	n := src.Size()
	exec := cfg.resolveExecutor()
	workers := exec.Size()
	size, err := planChunkSize(n, cfg.chunk, workers)
	if err != nil {
		return err
	}
	ins := newInstruments(cfg.metrics)
	start := time.Now()

	chunked := chunkedMode(n, size)
	expected := n
	if chunked {
		expected = chunkCount(n, size)
	}
	completions := make(chan struct{}, cfg.conduitCap(expected))
	errs := make(chan error, cfg.conduitCap(n))

	d := &distributor[T]{
		exec:      exec,
		workers:   workers,
		chunkSize: size,
		ins:       ins,
		process:   forEachProcess(ctx, fn, errs, ins),
		taskDone:  func() { completions <- struct{}{} },
	}
	if chunked {
		d.dispatchChunks(src, n)
	} else {
		d.dispatchItems(src, n)
	}

	err = aggregate(completions, errs, expected, ins)
	d.wait()
	ins.batchDuration.Record(time.Since(start).Seconds())
	return err
}

// runForEachStreamed dispatches an unknown-size source; the completion
// conduit is closed by the distributor once every worker loop has exited.
func runForEachStreamed[T any](
	ctx context.Context, cfg config, src SequentialSource[T], fn func(context.Context, T) error,
) error {
	exec := cfg.resolveExecutor()
	workers := exec.Size()
	ins := newInstruments(cfg.metrics)
	start := time.Now()

	completions := make(chan struct{}, cfg.conduitCap(-1))
	errs := make(chan error, cfg.conduitCap(-1))

	d := &distributor[T]{
		exec:      exec,
		workers:   workers,
		chunkSize: streamedChunkSize(cfg.chunk),
		ins:       ins,
		process:   forEachProcess(ctx, fn, errs, ins),
		taskDone:  func() { completions <- struct{}{} },
	}
	d.dispatchStreamed(src, func() { close(completions) })

	err := aggregateStreamed(completions, errs, ins)
	d.wait()
	ins.batchDuration.Record(time.Since(start).Seconds())
	return err
}

// forEachProcess builds the per-item callback: invoke fn with panic
// containment and emit an error token immediately on failure, continuing
// with the rest of the chunk.
func forEachProcess[T any](
	ctx context.Context, fn func(context.Context, T) error, errs chan<- error, ins *instruments,
) func(index, chunk int, item T) {
	return func(index, chunk int, item T) {
		ins.itemsProcessed.Add(1)
		_, err := execItem(func() (struct{}, error) { return struct{}{}, fn(ctx, item) })
		if err != nil {
			ins.itemFailures.Add(1)
			errs <- newItemError(err, index, chunk)
		}
	}
}
