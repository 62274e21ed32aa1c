package tests

import (
	"context"
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/parallel"
	"github.com/ygrebnov/parallel/pool"
)

func TestMap_MatchesSequential_AcrossChunkSizes(t *testing.T) {
	ctx := context.Background()
	r := rand.New(rand.NewSource(1))

	for _, size := range []int{1, 2, 7, 64, 257} {
		items := randomInts(size, r)
		want := sequentialMap(items, func(x int) string { return strconv.Itoa(x * 3) })

		for name, opts := range chunkings(size) {
			got, err := parallel.Map(ctx, items,
				func(_ context.Context, x int) (string, error) { return strconv.Itoa(x * 3), nil },
				opts...)
			require.NoError(t, err, "size=%d %s", size, name)
			require.Equal(t, want, got, "size=%d %s", size, name)
		}
	}
}

func TestMap_Empty(t *testing.T) {
	invoked := false
	got, err := parallel.Map(context.Background(), []int{},
		func(_ context.Context, x int) (int, error) { invoked = true; return x, nil },
		// An executor that blows up on any use proves the empty path never
		// touches the execution context.
		parallel.WithExecutor(explodingExecutor{}),
	)
	require.NoError(t, err)
	require.Nil(t, got)
	require.False(t, invoked)
}

type explodingExecutor struct{}

func (explodingExecutor) Spawn(func()) { panic("executor used on the empty path") }
func (explodingExecutor) Size() int    { panic("executor sized on the empty path") }

func TestMap_DoublesSmallBatch(t *testing.T) {
	got, err := parallel.Map(context.Background(), []int{1, 2, 3, 4},
		func(_ context.Context, x int) (int, error) { return x * 2, nil })
	require.NoError(t, err)
	require.Equal(t, []int{2, 4, 6, 8}, got)
}

func TestMap_ExplicitChunkMatchesAuto(t *testing.T) {
	ctx := context.Background()
	items := ints(1, 20)
	double := func(_ context.Context, x int) (int, error) { return x * 2, nil }

	auto, err := parallel.Map(ctx, items, double)
	require.NoError(t, err)

	chunked, err := parallel.Map(ctx, items, double, parallel.WithChunkSize(5))
	require.NoError(t, err)

	require.Equal(t, sequentialMap(items, func(x int) int { return x * 2 }), auto)
	require.Equal(t, auto, chunked)
}

func TestMap_LargeBatch_AdaptiveOrderPreserved(t *testing.T) {
	items := ints(0, 999)
	got, err := parallel.Map(context.Background(), items,
		func(_ context.Context, x int) (int, error) { return x * x, nil })
	require.NoError(t, err)
	require.Equal(t, sequentialMap(items, func(x int) int { return x * x }), got)
}

func TestMapIndexed_CustomSource(t *testing.T) {
	src := evenSource{n: 10}
	got, err := parallel.MapIndexed(context.Background(), src,
		func(_ context.Context, x int) (int, error) { return x + 1, nil })
	require.NoError(t, err)
	require.Equal(t, []int{1, 3, 5, 7, 9, 11, 13, 15, 17, 19}, got)
}

// evenSource yields the first n even numbers without backing storage.
type evenSource struct{ n int }

func (s evenSource) Size() int    { return s.n }
func (s evenSource) At(i int) int { return 2 * i }

func TestMap_CallerPool(t *testing.T) {
	p := pool.NewFixed(2)
	defer p.Close()

	items := ints(1, 50)
	got, err := parallel.Map(context.Background(), items,
		func(_ context.Context, x int) (int, error) { return -x, nil },
		parallel.WithExecutor(p))
	require.NoError(t, err)
	require.Equal(t, sequentialMap(items, func(x int) int { return -x }), got)
}

// A batch must not touch its executor after Map returns, even when part of
// the pool is held by unrelated work and the idle-loop submissions were never
// picked up. Closing the pool right after return has to be safe.
func TestMap_CloseCallerPoolImmediatelyAfterReturn(t *testing.T) {
	p := pool.NewFixed(2)

	release := make(chan struct{})
	p.Spawn(func() { <-release })
	go func() {
		time.Sleep(50 * time.Millisecond)
		close(release)
	}()

	items := ints(1, 8)
	got, err := parallel.Map(context.Background(), items,
		func(_ context.Context, x int) (int, error) { return x * 2, nil },
		parallel.WithChunkSize(2),
		parallel.WithExecutor(p))
	p.Close()

	require.NoError(t, err)
	require.Equal(t, sequentialMap(items, func(x int) int { return x * 2 }), got)
}
