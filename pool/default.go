package pool

import "sync"

var (
	defaultOnce sync.Once
	defaultPool *Fixed
)

// Default returns the process-wide shared pool, sized to the number of
// available processors. It is created on first call and never closed; all
// engine invocations without an explicit executor share it, so one set of
// goroutines serves the whole process.
func Default() Executor {
	defaultOnce.Do(func() {
		defaultPool = NewFixed(0)
	})
	return defaultPool
}
