package pool

import (
	"runtime"
	"sync"
)

// Fixed is a fixed-size worker pool. Workers are started by the constructor
// and run until Close. The zero value is not usable; construct via NewFixed.
type Fixed struct {
	size      int
	submit    chan func()
	closeOnce sync.Once
}

// NewFixed creates a pool of n workers. n < 1 defaults to
// runtime.GOMAXPROCS(0).
func NewFixed(n int) *Fixed {
	if n < 1 {
		n = runtime.GOMAXPROCS(0)
	}
	p := &Fixed{size: n, submit: make(chan func())}
	for i := 0; i < n; i++ {
		go p.loop()
	}
	return p
}

func (p *Fixed) loop() {
	for fn := range p.submit {
		fn()
	}
}

// Spawn schedules fn on the pool, blocking until a worker picks it up.
// Spawn must not be called after Close. A nil fn is ignored.
func (p *Fixed) Spawn(fn func()) {
	if fn == nil {
		return
	}
	p.submit <- fn
}

// Size returns the number of workers.
func (p *Fixed) Size() int { return p.size }

// Close stops the workers once already-picked-up functions return.
// Idempotent. Close does not wait for running functions to finish.
func (p *Fixed) Close() {
	p.closeOnce.Do(func() { close(p.submit) })
}
