package parallel

import (
	"context"
	"time"
)

// Map applies fn to every element of items concurrently and returns the
// results in input order.
//
// Semantics:
//   - An empty items slice returns (nil, nil) immediately; fn is never
//     invoked and the execution context is never touched.
//   - If any invocation fails, Map returns a nil slice and the first error in
//     receive order (which of several concurrent failures that is carries no
//     guarantee). Every dispatched item is still processed first.
//   - Results are always index-ordered regardless of completion order.
func Map[T, R any](
	ctx context.Context, items []T, fn func(context.Context, T) (R, error), opts ...Option,
) ([]R, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, ErrNilFunction
	}
	if len(items) == 0 {
		return nil, nil
	}
	return runMap(ctx, cfg, FromSlice(items), fn)
}

// MapIndexed is Map over an arbitrary random-access source.
func MapIndexed[T, R any](
	ctx context.Context, src IndexedSource[T], fn func(context.Context, T) (R, error), opts ...Option,
) ([]R, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, ErrNilFunction
	}
	if src == nil || src.Size() == 0 {
		return nil, nil
	}
	return runMap(ctx, cfg, src, fn)
}

// MapStream is Map over a single-pass source. When the source reports its
// size upfront it is snapshotted and dispatched exactly like an indexed
// batch; otherwise workers pull items in batches under mutual exclusion and
// the results are reassembled by the position each item was pulled at.
func MapStream[T, R any](
	ctx context.Context, src SequentialSource[T], fn func(context.Context, T) (R, error), opts ...Option,
) ([]R, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, ErrNilFunction
	}
	if src == nil {
		return nil, nil
	}
	if n, ok := src.TrySize(); ok {
		if n == 0 {
			return nil, nil
		}
		snap := snapshot(src, n)
		if snap.Size() == 0 {
			return nil, nil
		}
		return runMap(ctx, cfg, snap, fn)
	}
	return runMapStreamed(ctx, cfg, src, fn)
}

// runMap dispatches a known-size batch and collects exactly one token per
// item into an index-ordered result slice.
func runMap[T, R any](
	ctx context.Context, cfg config, src IndexedSource[T], fn func(context.Context, T) (R, error),
) ([]R, error) {
	n := src.Size()
	exec := cfg.resolveExecutor()
	workers := exec.Size()
	size, err := planChunkSize(n, cfg.chunk, workers)
	if err != nil {
		return nil, err
	}
	ins := newInstruments(cfg.metrics)
	start := time.Now()

	out := make(chan itemToken[R], cfg.conduitCap(n))
	d := &distributor[T]{
		exec:      exec,
		workers:   workers,
		chunkSize: size,
		ins:       ins,
		process:   mapProcess(ctx, fn, out, ins),
		taskDone:  func() {},
	}
	if chunkedMode(n, size) {
		d.dispatchChunks(src, n)
	} else {
		d.dispatchItems(src, n)
	}

	results, err := collectOrdered(out, n, ins)
	d.wait()
	ins.batchDuration.Record(time.Since(start).Seconds())
	return results, err
}

// runMapStreamed dispatches an unknown-size source; the conduit is closed by
// the distributor once every worker loop has exited, and results are sorted
// by pull position.
func runMapStreamed[T, R any](
	ctx context.Context, cfg config, src SequentialSource[T], fn func(context.Context, T) (R, error),
) ([]R, error) {
	exec := cfg.resolveExecutor()
	workers := exec.Size()
	ins := newInstruments(cfg.metrics)
	start := time.Now()

	out := make(chan itemToken[R], cfg.conduitCap(-1))
	d := &distributor[T]{
		exec:      exec,
		workers:   workers,
		chunkSize: streamedChunkSize(cfg.chunk),
		ins:       ins,
		process:   mapProcess(ctx, fn, out, ins),
		taskDone:  func() {},
	}
	d.dispatchStreamed(src, func() { close(out) })

	results, err := collectSorted(out, ins)
	d.wait()
	ins.batchDuration.Record(time.Since(start).Seconds())
	return results, err
}

// mapProcess builds the per-item callback: invoke fn with panic containment
// and emit exactly one token, success or failure, on the conduit.
func mapProcess[T, R any](
	ctx context.Context, fn func(context.Context, T) (R, error), out chan<- itemToken[R], ins *instruments,
) func(index, chunk int, item T) {
	return func(index, chunk int, item T) {
		ins.itemsProcessed.Add(1)
		v, err := execItem(func() (R, error) { return fn(ctx, item) })
		if err != nil {
			ins.itemFailures.Add(1)
			out <- itemToken[R]{index: index, err: newItemError(err, index, chunk)}
			return
		}
		out <- itemToken[R]{index: index, val: v}
	}
}
