package parallel

import "github.com/ygrebnov/parallel/metrics"

// instruments bundles the engine's metrics for one invocation.
type instruments struct {
	tasksDispatched metrics.Counter
	itemsProcessed  metrics.Counter
	itemFailures    metrics.Counter
	suppressed      metrics.Counter
	batchDuration   metrics.Histogram
}

func newInstruments(p metrics.Provider) *instruments {
	return &instruments{
		tasksDispatched: p.Counter("parallel.tasks.dispatched",
			metrics.WithDescription("chunks claimed plus element-wise tasks dispatched"), metrics.WithUnit("1")),
		itemsProcessed: p.Counter("parallel.items.processed",
			metrics.WithDescription("items the user function was invoked for"), metrics.WithUnit("1")),
		itemFailures: p.Counter("parallel.items.failed",
			metrics.WithDescription("user function failures, including recovered panics"), metrics.WithUnit("1")),
		suppressed: p.Counter("parallel.errors.suppressed",
			metrics.WithDescription("errors drained after the first captured one"), metrics.WithUnit("1")),
		batchDuration: p.Histogram("parallel.batch.duration",
			metrics.WithDescription("wall time of one Map/ForEach invocation"), metrics.WithUnit("seconds")),
	}
}
