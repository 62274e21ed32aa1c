package tests

import (
	"math/rand"

	"github.com/ygrebnov/parallel"
)

// chunkings enumerates the chunk-size shapes the properties are checked
// under: adaptive plus explicit values around the batch size.
func chunkings(size int) map[string][]parallel.Option {
	m := map[string][]parallel.Option{
		"auto":    nil,
		"chunk=1": {parallel.WithChunkSize(1)},
		"chunk=2": {parallel.WithChunkSize(2)},
	}
	if size/2 > 0 {
		m["chunk=size/2"] = []parallel.Option{parallel.WithChunkSize(size / 2)}
	}
	if size > 0 {
		m["chunk=size"] = []parallel.Option{parallel.WithChunkSize(size)}
		m["chunk=size*10"] = []parallel.Option{parallel.WithChunkSize(size * 10)}
	}
	return m
}

func randomInts(n int, r *rand.Rand) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = r.Intn(1000)
	}
	return out
}

func sequentialMap[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, len(items))
	for i, v := range items {
		out[i] = fn(v)
	}
	return out
}

func ints(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}
