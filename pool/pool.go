// Package pool provides the execution context the parallel engine schedules
// work on: a fixed-size set of long-lived goroutines behind a minimal Spawn
// capability, plus one process-wide default instance.
package pool

// Executor is the single capability the engine requires from an execution
// context. Implementations must be safe for concurrent use.
type Executor interface {
	// Spawn schedules fn to run on the pool. It may block while all workers
	// are busy and the submit queue is full.
	Spawn(fn func())

	// Size returns the number of workers, i.e. the maximum concurrency the
	// executor provides. It is constant for the lifetime of the executor.
	Size() int
}
