package pool

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// WorkerPool is a generic, bounded worker pool. It distributes a batch of
// tasks across a fixed number of concurrent workers and reassembles the
// results in input order.
//
// Type parameters:
//   - T: The input task type
//   - R: The result type
type WorkerPool[T any, R any] struct {
	workerCount int
	taskBuffer  int
	mode        ExecMode
	limiter     *rate.Limiter
	metrics     *poolMetrics
}

// NewWorkerPool creates a new worker pool with the given options.
//
// Default configuration:
//   - workerCount: runtime.GOMAXPROCS(0) (runtime.NumCPU() in ModeCPU)
//   - taskBuffer: equal to workerCount
//   - mode: ModeIO
//   - no rate limiting, no metrics
//
// Type parameters:
//   - T: The input task type
//   - R: The result type produced by processing tasks
//
// Example:
//
//	p := NewWorkerPool[int, string](
//	    WithWorkerCount(8),
//	    WithExecMode(ModeCPU),
//	)
func NewWorkerPool[T any, R any](opts ...WorkerPoolOption) *WorkerPool[T, R] {
	cfg := createConfig(opts...)
	return &WorkerPool[T, R]{
		workerCount: cfg.workerCount,
		taskBuffer:  cfg.taskBuffer,
		mode:        cfg.mode,
		limiter:     cfg.rateLimiter,
		metrics:     cfg.metrics,
	}
}

// Process executes a batch of tasks concurrently using a pool of workers and
// returns the results in the same order as the input slice: result[i]
// corresponds to tasks[i] regardless of completion order.
//
// At most min(workerCount, len(tasks)) invocations of processFn run
// concurrently. An empty task slice returns an empty result slice without
// invoking processFn.
//
// A failing task does not stop the remaining tasks: failures are collected
// while processing continues, and once every worker has been joined the
// failure with the lowest original index is returned as a *TaskError. No
// result slice is returned on failure. A *StartupError means the workers
// could not be created and nothing was processed.
//
// Example:
//
//	results, err := p.Process(ctx, []int{1, 2, 3}, func(ctx context.Context, n int) (int, error) {
//	    return n * n, nil
//	})
func (wp *WorkerPool[T, R]) Process(
	ctx context.Context,
	tasks []T,
	processFn ProcessFunc[T, R],
) ([]R, error) {
	if len(tasks) == 0 {
		return []R{}, nil
	}

	g, ctx := errgroup.WithContext(ctx)

	taskChan := make(chan workItem[T], wp.taskBuffer)
	resultChan := make(chan result[R], len(tasks))

	numWorkers := min(wp.workerCount, len(tasks))
	for id := 0; id < numWorkers; id++ {
		id := id
		g.Go(func() error {
			return wp.worker(ctx, id, taskChan, resultChan, processFn)
		})
	}

	g.Go(func() error {
		defer close(taskChan)
		for idx, task := range tasks {
			select {
			case taskChan <- workItem[T]{index: idx, task: task}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	results := make([]R, len(tasks))
	collected := make(chan error, 1)

	go func() {
		var firstErr *TaskError
		for r := range resultChan {
			if r.err != nil {
				te := r.err.(*TaskError)
				if firstErr == nil || te.Index < firstErr.Index {
					firstErr = te
				}
				continue
			}
			results[r.index] = r.value
		}
		if firstErr != nil {
			collected <- firstErr
			return
		}
		collected <- nil
	}()

	// All workers are joined before results are examined, success or not.
	if err := g.Wait(); err != nil {
		close(resultChan)
		<-collected
		return nil, err
	}

	close(resultChan)
	if err := <-collected; err != nil {
		return nil, err
	}

	return results, nil
}

// ProcessMap is the keyed variant of Process: it executes the map's tasks
// concurrently and returns a result map with the same keys.
//
// Error policy matches Process, except that with no input order to refer to
// the failure with the lexicographically smallest key is returned.
//
// Example:
//
//	tasks := map[string]int{"a": 1, "b": 2, "c": 3}
//	results, err := p.ProcessMap(ctx, tasks, func(ctx context.Context, n int) (int, error) {
//	    return n * 2, nil
//	})
//	// results: map[string]int{"a": 2, "b": 4, "c": 6}
func (wp *WorkerPool[T, R]) ProcessMap(
	ctx context.Context,
	tasks map[string]T,
	processFn ProcessFunc[T, R],
) (map[string]R, error) {
	if len(tasks) == 0 {
		return map[string]R{}, nil
	}

	g, ctx := errgroup.WithContext(ctx)

	taskChan := make(chan keyedTask[T], wp.taskBuffer)
	resultChan := make(chan keyedResult[R], len(tasks))

	numWorkers := min(wp.workerCount, len(tasks))
	for id := 0; id < numWorkers; id++ {
		id := id
		g.Go(func() error {
			release, err := wp.enterWorker(id)
			if err != nil {
				return err
			}
			defer release()

			for {
				select {
				case kt, ok := <-taskChan:
					if !ok {
						return nil
					}
					if err := wp.waitLimiter(ctx); err != nil {
						return err
					}
					value, err := wp.runTask(ctx, kt.task, processFn)
					if err != nil {
						err = &TaskError{Index: -1, Key: kt.key, Task: kt.task, Err: err}
					}
					select {
					case resultChan <- keyedResult[R]{key: kt.key, value: value, err: err}:
					case <-ctx.Done():
						return ctx.Err()
					}
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		})
	}

	g.Go(func() error {
		defer close(taskChan)
		for key, task := range tasks {
			select {
			case taskChan <- keyedTask[T]{key: key, task: task}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	results := make(map[string]R, len(tasks))
	collected := make(chan error, 1)

	go func() {
		var firstErr *TaskError
		for r := range resultChan {
			if r.err != nil {
				te := r.err.(*TaskError)
				if firstErr == nil || te.Key < firstErr.Key {
					firstErr = te
				}
				continue
			}
			results[r.key] = r.value
		}
		if firstErr != nil {
			collected <- firstErr
			return
		}
		collected <- nil
	}()

	if err := g.Wait(); err != nil {
		close(resultChan)
		<-collected
		return nil, err
	}

	close(resultChan)
	if err := <-collected; err != nil {
		return nil, err
	}

	return results, nil
}

// ProcessStream processes tasks from a channel instead of a slice.
// This is useful for streaming scenarios where tasks arrive dynamically
// and no positional order exists to restore; results are delivered in
// completion order.
//
// Unlike Process, the stream stops at the first failure: the error is
// delivered on the returned error channel after the workers have been
// joined and the result channel has been closed.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - taskChan: Input channel of tasks (caller must close it)
//   - processFn: Function to process each task
func (wp *WorkerPool[T, R]) ProcessStream(
	ctx context.Context,
	taskChan <-chan T,
	processFn ProcessFunc[T, R],
) (<-chan R, <-chan error) {
	resultChan := make(chan R, wp.taskBuffer)
	errChan := make(chan error, 1)

	go func() {
		defer close(resultChan)
		defer close(errChan)

		g, ctx := errgroup.WithContext(ctx)

		for id := 0; id < wp.workerCount; id++ {
		id := id
			g.Go(func() error {
				release, err := wp.enterWorker(id)
				if err != nil {
					return err
				}
				defer release()

				for {
					select {
					case task, ok := <-taskChan:
						if !ok {
							return nil
						}
						if err := wp.waitLimiter(ctx); err != nil {
							return err
						}
						value, err := wp.runTask(ctx, task, processFn)
						if err != nil {
							return &TaskError{Index: -1, Task: task, Err: err}
						}
						select {
						case resultChan <- value:
						case <-ctx.Done():
							return ctx.Err()
						}
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			})
		}

		if err := g.Wait(); err != nil {
			errChan <- err
		}
	}()

	return resultChan, errChan
}
