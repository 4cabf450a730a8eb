package pool

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/goconcurrent/parpool/internal/cpu"
)

// worker is the core worker loop for slice processing. It drains the task
// channel until it is closed, recording one result per work item. Task
// failures are reported through the result channel, never as a worker
// error, so one bad task cannot stop the others.
func (wp *WorkerPool[T, R]) worker(
	ctx context.Context,
	id int,
	taskChan <-chan workItem[T],
	resultChan chan<- result[R],
	processFn ProcessFunc[T, R],
) error {
	release, err := wp.enterWorker(id)
	if err != nil {
		return err
	}
	defer release()

	for {
		select {
		case item, ok := <-taskChan:
			if !ok {
				return nil
			}

			if err := wp.waitLimiter(ctx); err != nil {
				return err
			}

			value, err := wp.runTask(ctx, item.task, processFn)
			res := result[R]{value: value, index: item.index}
			if err != nil {
				res.err = &TaskError{Index: item.index, Task: item.task, Err: err}
			}

			select {
			case resultChan <- res:
			case <-ctx.Done():
				return ctx.Err()
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// enterWorker prepares the execution context for one worker. In ModeCPU the
// worker is locked to an OS thread pinned to a core; a pinning failure is a
// *StartupError and aborts the run. The returned release func must be
// deferred by the caller.
func (wp *WorkerPool[T, R]) enterWorker(id int) (func(), error) {
	if wp.mode != ModeCPU {
		return func() {}, nil
	}

	release, err := cpu.Pin(id)
	if err != nil {
		return nil, &StartupError{Err: err}
	}
	return release, nil
}

// waitLimiter blocks until the rate limiter admits the next task, if one is
// configured.
func (wp *WorkerPool[T, R]) waitLimiter(ctx context.Context) error {
	if wp.limiter == nil {
		return nil
	}
	return wp.limiter.Wait(ctx)
}

// runTask executes a single task with panic recovery and metrics
// accounting. A panic inside processFn is converted to an error with a
// stack trace so it cannot crash the worker.
func (wp *WorkerPool[T, R]) runTask(
	ctx context.Context,
	task T,
	processFn ProcessFunc[T, R],
) (R, error) {
	wp.metrics.taskStarted()
	start := time.Now()

	value, err := processWithRecovery(ctx, task, processFn)

	wp.metrics.taskDone(time.Since(start), err)
	return value, err
}

// processWithRecovery executes a task with panic recovery.
// If a panic occurs, it's converted to an error to prevent crashing the worker.
func processWithRecovery[T, R any](
	ctx context.Context,
	task T,
	processFn ProcessFunc[T, R],
) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("worker panic: %v\nstack trace:\n%s", r, buf[:n])
		}
	}()

	return processFn(ctx, task)
}
