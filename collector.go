package parallel

import "sort"

// Collectors run on the calling goroutine and are the sole consumers of the
// conduits. Both follow the same two-state discipline: collect until the full
// token budget has been received, only then surface the captured failure (if
// any). Observing an error never cuts collection short; draining everything
// is what guarantees no producer stays blocked on a conduit send.

// itemToken is one item's outcome on the map conduit.
type itemToken[R any] struct {
	index int
	val   R
	err   error
}

// collectOrdered receives exactly n item tokens and reassembles the output in
// original-index order by writing each value straight into a pre-sized slice.
// The first error in receive order wins; later ones are counted and dropped.
func collectOrdered[R any](out <-chan itemToken[R], n int, ins *instruments) ([]R, error) {
	results := make([]R, n)
	var firstErr error
	for received := 0; received < n; received++ {
		t := <-out
		if t.err != nil {
			if firstErr == nil {
				firstErr = t.err
			} else {
				ins.suppressed.Add(1)
			}
			continue
		}
		results[t.index] = t.val
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// collectSorted receives item tokens until the conduit is closed (streamed
// path, where the total is unknown upfront) and sorts the survivors by the
// running-cursor index each item was paired with at pull time.
func collectSorted[R any](out <-chan itemToken[R], ins *instruments) ([]R, error) {
	var (
		tokens   []itemToken[R]
		firstErr error
	)
	for t := range out {
		if t.err != nil {
			if firstErr == nil {
				firstErr = t.err
			} else {
				ins.suppressed.Add(1)
			}
			continue
		}
		tokens = append(tokens, t)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if len(tokens) == 0 {
		return nil, nil
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i].index < tokens[j].index })
	results := make([]R, len(tokens))
	for i, t := range tokens {
		results[i] = t.val
	}
	return results, nil
}

// aggregate drains the for-each conduits until expected terminal completion
// tokens have been observed. Tasks send error tokens immediately per failing
// item and exactly one completion token at the end; keeping the two on
// separate conduits means a failing task never has to choose between
// reporting the failure and signalling completion, which is what would
// otherwise deadlock the fixed receive budget. select alternates fairly, so
// neither conduit starves the other.
func aggregate(completions <-chan struct{}, errs <-chan error, expected int, ins *instruments) error {
	var firstErr error
	for seen := 0; seen < expected; {
		select {
		case <-completions:
			seen++
		case e := <-errs:
			if firstErr == nil {
				firstErr = e
			} else {
				ins.suppressed.Add(1)
			}
		}
	}
	// Every task's error sends precede its completion send, so once all
	// completions are in, leftovers can only sit in the errs buffer.
	return drainBuffered(errs, firstErr, ins)
}

// aggregateStreamed is the unknown-budget variant: it drains until the
// completion conduit is closed by the distributor's closer.
func aggregateStreamed(completions <-chan struct{}, errs <-chan error, ins *instruments) error {
	var firstErr error
	for completions != nil {
		select {
		case _, ok := <-completions:
			if !ok {
				completions = nil
			}
		case e := <-errs:
			if firstErr == nil {
				firstErr = e
			} else {
				ins.suppressed.Add(1)
			}
		}
	}
	return drainBuffered(errs, firstErr, ins)
}

func drainBuffered(errs <-chan error, firstErr error, ins *instruments) error {
	for {
		select {
		case e := <-errs:
			if firstErr == nil {
				firstErr = e
			} else {
				ins.suppressed.Add(1)
			}
		default:
			return firstErr
		}
	}
}
