package parallel

// IndexedSource exposes a bounded collection through random access.
// Size must be exact and O(1); At must be valid for every i in [0, Size()).
// The engine never mutates items and never calls At twice for the same index
// within one invocation.
type IndexedSource[T any] interface {
	Size() int
	At(i int) T
}

// SequentialSource exposes a single-pass collection. TrySize may report the
// exact size upfront; when it cannot, workers pull items one batch at a time
// under mutual exclusion. Next is never called concurrently.
type SequentialSource[T any] interface {
	TrySize() (int, bool)
	Next() (T, bool)
}

type sliceSource[T any] struct{ items []T }

// FromSlice adapts a slice into an IndexedSource. The slice is not copied;
// callers must not mutate it while a batch is running.
func FromSlice[T any](items []T) IndexedSource[T] { return sliceSource[T]{items: items} }

func (s sliceSource[T]) Size() int  { return len(s.items) }
func (s sliceSource[T]) At(i int) T { return s.items[i] }

type chanSource[T any] struct{ ch <-chan T }

// FromChan adapts a channel into a SequentialSource of unknown size.
// The sequence ends when the channel is closed.
func FromChan[T any](ch <-chan T) SequentialSource[T] { return &chanSource[T]{ch: ch} }

func (s *chanSource[T]) TrySize() (int, bool) { return 0, false }

func (s *chanSource[T]) Next() (T, bool) {
	v, ok := <-s.ch
	return v, ok
}

type funcSource[T any] struct {
	next  func() (T, bool)
	size  int
	sized bool
}

// FromFunc adapts a pull function into a SequentialSource of unknown size.
// next must return ok == false at end of sequence and keep doing so afterwards.
func FromFunc[T any](next func() (T, bool)) SequentialSource[T] {
	return &funcSource[T]{next: next}
}

// FromSizedFunc adapts a pull function whose total length is known upfront.
// Known-size sequential sources are snapshotted before dispatch, so next is
// called exactly min(n, sequence length) times, from one goroutine.
func FromSizedFunc[T any](n int, next func() (T, bool)) SequentialSource[T] {
	return &funcSource[T]{next: next, size: n, sized: true}
}

func (s *funcSource[T]) TrySize() (int, bool) { return s.size, s.sized }

func (s *funcSource[T]) Next() (T, bool) { return s.next() }

// snapshot materializes up to n items of a sequential source into an indexed
// one, pairing every item with its position before any dispatch happens.
// This keeps workers off the shared iterator entirely.
func snapshot[T any](src SequentialSource[T], n int) IndexedSource[T] {
	items := make([]T, 0, n)
	for len(items) < n {
		v, ok := src.Next()
		if !ok {
			break
		}
		items = append(items, v)
	}
	return FromSlice(items)
}
