package parallel

import (
	"strconv"

	"github.com/ygrebnov/errorc"
)

// Adaptive chunk size bounds. The lower bound keeps chunks non-empty; the
// upper bound caps the cost of losing one worker mid-chunk on huge batches.
const (
	minAdaptiveChunkSize = 1
	maxAdaptiveChunkSize = 1000
)

// defaultStreamedChunkSize is used when pulling from an unknown-size
// sequential source without an explicit chunk size. It balances the time the
// pull mutex is held against contention on it.
const defaultStreamedChunkSize = 16

// chunkSpec is the planner input: an explicit size or the adaptive default.
type chunkSpec struct {
	size     int
	explicit bool
}

// planChunkSize computes the effective chunk size for a batch of n items on a
// pool of the given size.
//
// Explicit sizes must be strictly positive and are capped at n (a larger
// value would dispatch a single chunk anyway). The adaptive size is
// ceil(n / (2 * workers)) clamped to [1, 1000], yielding roughly two claim
// rounds per worker so late chunks can still be stolen.
func planChunkSize(n int, spec chunkSpec, workers int) (int, error) {
	if spec.explicit {
		if spec.size <= 0 {
			return 0, errorc.With(ErrInvalidChunkSize,
				errorc.String("size", strconv.Itoa(spec.size)))
		}
		if n > 0 && spec.size > n {
			return n, nil
		}
		return spec.size, nil
	}

	if n == 0 {
		return 1, nil
	}
	if workers < 1 {
		workers = 1
	}
	adaptive := (n + 2*workers - 1) / (2 * workers)
	if adaptive < minAdaptiveChunkSize {
		adaptive = minAdaptiveChunkSize
	}
	if adaptive > maxAdaptiveChunkSize {
		adaptive = maxAdaptiveChunkSize
	}
	return adaptive, nil
}

// streamedChunkSize picks the pull batch size for an unknown-size source.
// Explicit sizes are already validated by WithChunkSize; the adaptive formula
// needs n, which is unknown here, so a fixed default applies instead.
func streamedChunkSize(spec chunkSpec) int {
	if spec.explicit {
		return spec.size
	}
	return defaultStreamedChunkSize
}

// chunkedMode reports whether chunked dispatch engages. Outside this regime
// the per-chunk bookkeeping buys nothing and the engine dispatches one task
// per item. Purely a performance policy: results are identical either way.
func chunkedMode(n, size int) bool { return size > 1 && n > size }

// chunkCount returns ceil(n / size).
func chunkCount(n, size int) int { return (n + size - 1) / size }
