package tests

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/parallel"
)

func TestMap_SingleFailure_MessagePreserved(t *testing.T) {
	ctx := context.Background()
	items := ints(0, 19)

	for name, opts := range chunkings(len(items)) {
		got, err := parallel.Map(ctx, items, func(_ context.Context, x int) (int, error) {
			if x == 13 {
				return 0, errors.New("unlucky item")
			}
			return x, nil
		}, opts...)
		require.EqualError(t, err, "unlucky item", name)
		require.Nil(t, got, name)

		idx, ok := parallel.ExtractItemIndex(err)
		require.True(t, ok, name)
		require.Equal(t, 13, idx, name)
	}
}

func TestForEach_SingleFailure_MessagePreserved(t *testing.T) {
	ctx := context.Background()
	items := ints(0, 19)

	for name, opts := range chunkings(len(items)) {
		err := parallel.ForEach(ctx, items, func(_ context.Context, x int) error {
			if x == 13 {
				return errors.New("unlucky item")
			}
			return nil
		}, opts...)
		require.EqualError(t, err, "unlucky item", name)
	}
}

func TestMap_ManySimultaneousFailures_NoDeadlock(t *testing.T) {
	ctx := context.Background()
	items := ints(0, 199)

	// Every item fails, across every chunk. All producers must still drain
	// and exactly one error must surface.
	for name, opts := range chunkings(len(items)) {
		got, err := parallel.Map(ctx, items, func(_ context.Context, x int) (int, error) {
			return 0, fmt.Errorf("failure on %d", x)
		}, opts...)
		require.Error(t, err, name)
		require.Nil(t, got, name)
	}
}

func TestForEach_ManySimultaneousFailures_NoDeadlock(t *testing.T) {
	ctx := context.Background()
	items := ints(0, 199)

	for name, opts := range chunkings(len(items)) {
		err := parallel.ForEach(ctx, items, func(_ context.Context, x int) error {
			return fmt.Errorf("failure on %d", x)
		}, opts...)
		require.Error(t, err, name)
	}
}

func TestForEach_FailureDoesNotAbortChunk(t *testing.T) {
	ctx := context.Background()
	items := ints(0, 19)

	var visited atomic.Int64
	err := parallel.ForEach(ctx, items, func(_ context.Context, x int) error {
		visited.Add(1)
		if x%2 == 0 {
			return fmt.Errorf("even item %d", x)
		}
		return nil
	}, parallel.WithChunkSize(5))

	require.Error(t, err)
	// Remaining items of a partially failed chunk are still attempted.
	require.EqualValues(t, 20, visited.Load())
}

func TestMap_PanicBecomesError(t *testing.T) {
	_, err := parallel.Map(context.Background(), ints(0, 9),
		func(_ context.Context, x int) (int, error) {
			if x == 4 {
				panic("boom")
			}
			return x, nil
		})
	require.ErrorIs(t, err, parallel.ErrPanicked)
	require.ErrorContains(t, err, "boom")
}

func TestForEach_PanicBecomesError(t *testing.T) {
	err := parallel.ForEach(context.Background(), ints(0, 9),
		func(_ context.Context, x int) error {
			if x == 4 {
				panic("boom")
			}
			return nil
		})
	require.ErrorIs(t, err, parallel.ErrPanicked)
}

func TestMap_NilFunction(t *testing.T) {
	_, err := parallel.Map[int, int](context.Background(), ints(0, 3), nil)
	require.ErrorIs(t, err, parallel.ErrNilFunction)
}
