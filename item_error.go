package parallel

import (
	"errors"
	"fmt"
)

// ItemFailure exposes the origin of a per-item failure for diagnostics.
// Every error surfaced by the engine for a user-function failure implements it.
type ItemFailure interface {
	error
	Unwrap() error
	// ItemIndex is the original 0-based index of the failing item.
	ItemIndex() int
	// ChunkIndex is the index of the chunk the item was dispatched in.
	// In element-wise mode each item forms its own chunk.
	ChunkIndex() int
}

type itemError struct {
	err   error
	index int
	chunk int
}

func newItemError(err error, index, chunk int) error {
	if err == nil {
		return nil
	}
	return &itemError{err: err, index: index, chunk: chunk}
}

// Error returns the original message unchanged; the origin metadata is
// reachable through ItemFailure and the %+v verb.
func (e *itemError) Error() string { return e.err.Error() }
func (e *itemError) Unwrap() error { return e.err }

func (e *itemError) ItemIndex() int  { return e.index }
func (e *itemError) ChunkIndex() int { return e.chunk }

func (e *itemError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "item(index=%d,chunk=%d): %+v", e.index, e.chunk, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractItemIndex returns the originating item index from err if present.
func ExtractItemIndex(err error) (int, bool) {
	var f ItemFailure
	if errors.As(err, &f) {
		return f.ItemIndex(), true
	}
	return 0, false
}

// ExtractChunkIndex returns the originating chunk index from err if present.
func ExtractChunkIndex(err error) (int, bool) {
	var f ItemFailure
	if errors.As(err, &f) {
		return f.ChunkIndex(), true
	}
	return 0, false
}
