package workerpool_test

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andyle182810/boxsdk/workerpool"
	"github.com/stretchr/testify/require"
)

var errOdd = errors.New("odd input")

func TestNew_DefaultValues(t *testing.T) {
	t.Parallel()

	pool := workerpool.New()

	require.Equal(t, "worker-pool", pool.Name())
}

func TestWithName_IgnoresEmptyName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "users", workerpool.New(workerpool.WithName("users")).Name())
	require.Equal(t, "worker-pool", workerpool.New(workerpool.WithName("")).Name())
}

func TestRun_ReturnsResultsInInputOrder(t *testing.T) {
	t.Parallel()

	pool := workerpool.New(workerpool.WithWorkerCount(3))
	inputs := []int{1, 2, 3, 4, 5, 6, 7}

	results := workerpool.Run(t.Context(), pool, inputs, func(_ context.Context, in int) (string, error) {
		time.Sleep(time.Duration(8-in) * time.Millisecond)

		return strconv.Itoa(in * 10), nil
	})

	require.Len(t, results, len(inputs))

	for idx, res := range results {
		require.Equal(t, idx, res.Index)
		require.NoError(t, res.Err)
		require.Equal(t, strconv.Itoa(inputs[idx]*10), res.Value)
	}
}

func TestRun_CollectsPerInputErrors(t *testing.T) {
	t.Parallel()

	pool := workerpool.New(workerpool.WithWorkerCount(2))

	results := workerpool.Run(t.Context(), pool, []int{1, 2, 3, 4}, func(_ context.Context, in int) (int, error) {
		if in%2 == 1 {
			return 0, errOdd
		}

		return in, nil
	})

	require.ErrorIs(t, results[0].Err, errOdd)
	require.Equal(t, 2, results[1].Value)
	require.ErrorIs(t, results[2].Err, errOdd)
	require.Len(t, workerpool.Errors(results), 2)
}

func TestRun_BoundsConcurrency(t *testing.T) {
	t.Parallel()

	var inFlight, peak atomic.Int32

	pool := workerpool.New(workerpool.WithWorkerCount(2))

	workerpool.Run(t.Context(), pool, make([]int, 10), func(context.Context, int) (struct{}, error) {
		current := inFlight.Add(1)
		for {
			old := peak.Load()
			if current <= old || peak.CompareAndSwap(old, current) {
				break
			}
		}

		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)

		return struct{}{}, nil
	})

	require.LessOrEqual(t, peak.Load(), int32(2))
}

func TestRun_AppliesExecutionTimeout(t *testing.T) {
	t.Parallel()

	pool := workerpool.New(workerpool.WithExecutionTimeout(10 * time.Millisecond))

	results := workerpool.Run(t.Context(), pool, []int{1}, func(ctx context.Context, _ int) (int, error) {
		<-ctx.Done()

		return 0, ctx.Err()
	})

	require.ErrorIs(t, results[0].Err, context.DeadlineExceeded)
}

func TestRun_CancelledContextMarksPendingInputs(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	pool := workerpool.New(workerpool.WithWorkerCount(1))

	results := workerpool.Run(ctx, pool, []int{1, 2, 3}, func(ctx context.Context, in int) (int, error) {
		return in, ctx.Err()
	})

	require.Len(t, results, 3)

	for _, res := range results {
		require.ErrorIs(t, res.Err, context.Canceled)
	}
}

func TestRun_EmptyInputs(t *testing.T) {
	t.Parallel()

	results := workerpool.Run(t.Context(), workerpool.New(), []int(nil), func(context.Context, int) (int, error) {
		return 0, nil
	})

	require.Empty(t, results)
}
