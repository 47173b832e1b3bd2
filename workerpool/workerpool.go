package workerpool

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultWorkerCount = 4

// Job processes one input.
type Job[In, Out any] func(ctx context.Context, input In) (Out, error)

// Result holds the outcome for the input at Index.
type Result[Out any] struct {
	Index int
	Value Out
	Err   error
}

type WorkerPool struct {
	name        string
	workerCount int
	execTimeout time.Duration
}

type Option func(*WorkerPool)

func New(opts ...Option) *WorkerPool {
	pool := &WorkerPool{
		name:        "worker-pool",
		workerCount: defaultWorkerCount,
		execTimeout: 0,
	}

	for _, opt := range opts {
		opt(pool)
	}

	return pool
}

func WithWorkerCount(count int) Option {
	return func(pool *WorkerPool) {
		if count > 0 {
			pool.workerCount = count
		}
	}
}

func WithExecutionTimeout(timeout time.Duration) Option {
	return func(pool *WorkerPool) {
		if timeout > 0 {
			pool.execTimeout = timeout
		}
	}
}

func WithName(name string) Option {
	return func(pool *WorkerPool) {
		if name != "" {
			pool.name = name
		}
	}
}

func (pool *WorkerPool) Name() string {
	return pool.name
}

// Run executes job for every input with at most workerCount in flight.
// Results are returned in input order; a failed input does not stop the others.
// Inputs not started before ctx is done report ctx.Err().
func Run[In, Out any](ctx context.Context, pool *WorkerPool, inputs []In, job Job[In, Out]) []Result[Out] {
	results := make([]Result[Out], len(inputs))
	if len(inputs) == 0 {
		return results
	}

	workers := min(pool.workerCount, len(inputs))
	jobChan := make(chan int)

	log.Debug().
		Str("pool", pool.name).
		Int("worker_count", workers).
		Int("inputs", len(inputs)).
		Msg("Worker pool is starting.")

	var wg sync.WaitGroup

	for workerID := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for idx := range jobChan {
				results[idx] = execute(ctx, pool, workerID, idx, inputs[idx], job)
			}
		}()
	}

	dispatched := 0

dispatch:
	for idx := range inputs {
		select {
		case <-ctx.Done():
			break dispatch
		case jobChan <- idx:
			dispatched++
		}
	}

	close(jobChan)
	wg.Wait()

	for idx := dispatched; idx < len(inputs); idx++ {
		results[idx] = Result[Out]{Index: idx, Err: ctx.Err()} //nolint:exhaustruct
	}

	return results
}

func execute[In, Out any](
	ctx context.Context,
	pool *WorkerPool,
	workerID, idx int,
	input In,
	job Job[In, Out],
) Result[Out] {
	var execCtx context.Context

	var cancel context.CancelFunc

	if pool.execTimeout > 0 {
		execCtx, cancel = context.WithTimeout(ctx, pool.execTimeout)
	} else {
		execCtx, cancel = context.WithCancel(ctx)
	}

	defer cancel()

	value, err := job(execCtx, input)
	if err != nil {
		log.Debug().
			Err(err).
			Str("pool", pool.name).
			Int("worker_id", workerID).
			Int("index", idx).
			Msg("Job failed.")
	}

	return Result[Out]{Index: idx, Value: value, Err: err}
}

// Errors returns the non-nil errors in results.
func Errors[Out any](results []Result[Out]) []error {
	var errs []error

	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}

	return errs
}
