// Package pool provides a small, generic, bounded worker pool for
// concurrent batch processing with ordered results.
//
// The primary type is WorkerPool[T, R], a configurable pool of workers
// which process tasks of type T and produce results of type R. The pool
// bounds peak concurrency to the configured worker count, preserves the
// input-to-result mapping order, recovers from panics in task functions,
// and tears down every worker before returning, even when tasks fail.
//
// # Basic Usage
//
//	ctx := context.Background()
//	tasks := []int{1, 2, 3, 4, 5}
//	p := pool.NewWorkerPool[int, int](pool.WithWorkerCount(2))
//	results, err := p.Process(ctx, tasks, func(ctx context.Context, t int) (int, error) {
//	    return t * t, nil
//	})
//	// results: [1, 4, 9, 16, 25]
//
// # Processing Modes
//
// The pool supports three processing entry points:
//
//   - Process: processes a slice of tasks and returns results in input order
//   - ProcessMap: processes a map of tasks and returns a map with matching keys
//   - ProcessStream: processes tasks from a channel and returns a results channel
//
// # Execution Modes
//
// Workloads that block on external events and workloads that saturate the
// CPU want different worker placement. WithExecMode selects between them:
//
//   - ModeIO (default): plain goroutine workers; suited to tasks that spend
//     most of their time waiting (network calls, disk reads, timers).
//   - ModeCPU: each worker locks its OS thread and pins it to a CPU core,
//     giving compute-heavy tasks stable, independent execution contexts.
//     The default worker count in this mode is runtime.NumCPU().
//
// The external contract is identical in both modes: bounded concurrency,
// ordered results, deterministic teardown. Results always cross the worker
// boundary by value over channels, never via shared references.
//
// # Error Handling
//
// Task failures are collected, not lost: a failing task never prevents the
// remaining tasks from being processed, and never prevents teardown of the
// other workers. After all tasks have completed or failed, Process returns
// the failure with the lowest original index as a *TaskError carrying the
// index, the input value, and the underlying cause; no result slice is
// returned in that case. A *StartupError means the worker contexts could
// not be created at all and aborts the run with no partial results.
//
// There is no automatic retry. Callers that want retries resubmit the
// failed indices themselves.
//
// # Rate Limiting
//
// Control throughput to avoid overwhelming external services:
//
//	p := pool.NewWorkerPool[string, Response](
//	    pool.WithWorkerCount(10),
//	    pool.WithRateLimit(5.0, 10), // 5 tasks/sec, burst of 10
//	)
//
// # Metrics
//
// WithMetrics attaches Prometheus instrumentation (task counts, failures,
// duration histogram, in-flight gauge) to a caller-owned registry. The
// package never exposes an HTTP endpoint; exposition is the caller's
// concern.
//
// The package is designed to be small and idiomatic for Go 1.18+ (generics).
package pool
