package parallel

import (
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/parallel/metrics"
	"github.com/ygrebnov/parallel/pool"
)

// config holds one invocation's settings, assembled from options before any
// dispatch happens.
type config struct {
	// chunk is the requested chunk size; adaptive by default.
	chunk chunkSpec

	// executor is the execution context to schedule work on.
	// Nil means the shared default pool, resolved lazily so that an
	// empty-source call never touches it.
	executor pool.Executor

	// tokensBuffer caps the conduit buffers. Conduits whose full token budget
	// is smaller are sized to the budget instead.
	// Default: 1024.
	tokensBuffer uint

	// metrics receives engine instrumentation. Default: noop.
	metrics metrics.Provider
}

func defaultConfig() config {
	return config{
		chunk:        chunkSpec{}, // adaptive
		executor:     nil,         // shared default pool
		tokensBuffer: 1024,
		metrics:      metrics.NewNoopProvider(),
	}
}

// newConfig applies opts over defaults. Option errors surface here,
// synchronously, before the batch is examined.
func newConfig(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}

func (c *config) resolveExecutor() pool.Executor {
	if c.executor != nil {
		return c.executor
	}
	return pool.Default()
}

// conduitCap sizes a conduit buffer: the configured cap, shrunk to the token
// budget when that is known and smaller. budget < 0 means unknown.
func (c *config) conduitCap(budget int) int {
	capacity := int(c.tokensBuffer)
	if budget >= 0 && budget < capacity {
		capacity = budget
	}
	return capacity
}

// Option configures one invocation. Options are applied before any dispatch;
// an invalid value fails the call synchronously.
type Option func(*config) error

// WithChunkSize sets an explicit chunk size (must be > 0). Values larger than
// the batch collapse to a single chunk. Without this option the size is
// derived adaptively from the batch and pool sizes.
func WithChunkSize(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return errorc.With(ErrInvalidChunkSize, errorc.String("", "WithChunkSize requires n > 0"))
		}
		cfg.chunk = chunkSpec{size: n, explicit: true}
		return nil
	}
}

// WithExecutor schedules the batch on the given executor instead of the
// shared default pool.
func WithExecutor(e pool.Executor) Option {
	return func(cfg *config) error {
		if e == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithExecutor requires a non-nil executor"))
		}
		cfg.executor = e
		return nil
	}
}

// WithTokensBuffer caps the internal conduit buffers (default 1024).
// Zero is valid: producers then hand every token directly to the collector.
func WithTokensBuffer(size uint) Option {
	return func(cfg *config) error { cfg.tokensBuffer = size; return nil }
}

// WithMetrics records engine instrumentation into the given provider.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a non-nil provider"))
		}
		cfg.metrics = p
		return nil
	}
}
