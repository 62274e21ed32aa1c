package parallel

import (
	"sync"
	"sync/atomic"

	"github.com/ygrebnov/parallel/pool"
)

// distributor dispatches a batch onto the executor and drives the per-item
// callbacks. It owns nothing past dispatch: once a worker loop claims a chunk,
// that chunk's items are processed exclusively by it.
//
// Contracts, relied on by the collectors:
//   - process is invoked exactly once per item, with the item's original
//     index and the index of the chunk (task) it was dispatched in;
//   - taskDone is invoked exactly once per dispatched task, after all of the
//     task's process calls returned;
//   - dispatch methods return without waiting for completion, so the caller
//     can start draining conduits immediately.
type distributor[T any] struct {
	exec      pool.Executor
	workers   int // pool size, queried once at planning time
	chunkSize int
	ins       *instruments

	process  func(index, chunk int, item T)
	taskDone func()

	// spawnerWG tracks the goroutine feeding worker loops into the executor.
	// The run functions wait on it before returning, so a caller may close
	// its own pool as soon as an entry point hands control back.
	spawnerWG sync.WaitGroup
}

// wait blocks until the spawner goroutine has stopped submitting to the
// executor. Must be called after the batch's conduits have been drained.
func (d *distributor[T]) wait() {
	d.spawnerWG.Wait()
}

// dispatchChunks partitions [0, n) into ceil(n/chunkSize) contiguous chunks
// and starts min(pool size, chunk count) worker loops. Loops claim chunks
// through a shared atomic counter: read, stop when exhausted, otherwise
// compare-and-swap forward and retry on contention. CAS (rather than a blind
// fetch-add) makes the termination test and the claim one consistent
// snapshot, so a chunk is never claimed twice and the counter never
// overshoots. Idle loops steal whatever remains, which absorbs uneven
// per-item cost.
func (d *distributor[T]) dispatchChunks(src IndexedSource[T], n int) {
	total := chunkCount(n, d.chunkSize)
	units := d.workers
	if units > total {
		units = total
	}

	var next atomic.Int64
	loop := func() {
		for {
			c := next.Load()
			if c >= int64(total) {
				return
			}
			if !next.CompareAndSwap(c, c+1) {
				continue
			}
			d.ins.tasksDispatched.Add(1)
			chunk := int(c)
			lo := chunk * d.chunkSize
			hi := lo + d.chunkSize
			if hi > n {
				hi = n
			}
			for i := lo; i < hi; i++ {
				d.process(i, chunk, src.At(i))
			}
			d.taskDone()
		}
	}

	// Spawn may block while the (possibly shared) pool is busy; keep the
	// caller free to drain conduits in the meantime. Once every chunk has
	// been claimed by the loops already running, additional loops would be
	// idle, so the spawner stops submitting.
	d.spawnerWG.Add(1)
	go func() {
		defer d.spawnerWG.Done()
		for u := 0; u < units; u++ {
			if next.Load() >= int64(total) {
				return
			}
			d.exec.Spawn(loop)
		}
	}()
}

// dispatchItems is the element-wise fallback: one task per item, each item
// forming its own chunk.
func (d *distributor[T]) dispatchItems(src IndexedSource[T], n int) {
	d.spawnerWG.Add(1)
	go func() {
		defer d.spawnerWG.Done()
		for i := 0; i < n; i++ {
			i := i
			d.exec.Spawn(func() {
				d.ins.tasksDispatched.Add(1)
				d.process(i, i, src.At(i))
				d.taskDone()
			})
		}
	}()
}

// dispatchStreamed distributes an unknown-size sequential source. Worker
// loops take turns pulling up to chunkSize items (with their running cursor
// positions) inside one mutex-guarded section and process the batch outside
// it, keeping the exclusive section as short as possible. done runs after
// every loop has exited; the caller uses it to close its conduits.
func (d *distributor[T]) dispatchStreamed(src SequentialSource[T], done func()) {
	var (
		mu        sync.Mutex
		cursor    int
		nextChunk int
		exhausted bool
	)

	loop := func() {
		items := make([]T, 0, d.chunkSize)
		indices := make([]int, 0, d.chunkSize)
		for {
			mu.Lock()
			if exhausted {
				mu.Unlock()
				return
			}
			items, indices = items[:0], indices[:0]
			for len(items) < d.chunkSize {
				v, ok := src.Next()
				if !ok {
					exhausted = true
					break
				}
				items = append(items, v)
				indices = append(indices, cursor)
				cursor++
			}
			chunk := nextChunk
			if len(items) > 0 {
				nextChunk++
			}
			mu.Unlock()

			if len(items) == 0 {
				return
			}
			d.ins.tasksDispatched.Add(1)
			for i := range items {
				d.process(indices[i], chunk, items[i])
			}
			d.taskDone()
		}
	}

	units := d.workers
	var wg sync.WaitGroup
	wg.Add(units)
	d.spawnerWG.Add(1)
	go func() {
		defer d.spawnerWG.Done()
		for u := 0; u < units; u++ {
			d.exec.Spawn(func() {
				defer wg.Done()
				loop()
			})
		}
	}()
	go func() {
		wg.Wait()
		done()
	}()
}
