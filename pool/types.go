package pool

import "context"

// ProcessFunc is a function type that defines how individual tasks are processed
// by the worker pool. It takes a context for cancellation/timeout control and a
// task of type T, returning a result of type R. It must be a pure function of
// its input: workers run in parallel and results are reassembled independent of
// completion order, so the function may not depend on call order.
//
// Type parameters:
//   - T: The type of input task to be processed
//   - R: The type of result produced after processing
type ProcessFunc[T any, R any] func(ctx context.Context, task T) (R, error)

// ExecMode selects the kind of execution context workers run in.
type ExecMode int

const (
	// ModeIO runs workers as plain goroutines. Suited to tasks that spend
	// most of their time blocked on external events.
	ModeIO ExecMode = iota

	// ModeCPU locks each worker to an OS thread and pins it to a CPU core.
	// Suited to compute-heavy tasks that would otherwise contend for cores.
	ModeCPU
)

// String returns the mode name for logs and error messages.
func (m ExecMode) String() string {
	switch m {
	case ModeCPU:
		return "cpu"
	default:
		return "io"
	}
}

// workItem pairs a task with its original position in the input slice.
// Created at submission, immutable, discarded once its result is recorded.
type workItem[T any] struct {
	index int
	task  T
}

// result carries the outcome of one work item back to the collector.
// err, when non-nil, is always a *TaskError.
type result[R any] struct {
	value R
	index int
	err   error
}

// keyedTask and keyedResult are the map-processing counterparts of
// workItem and result, carrying the map key instead of a position.
type keyedTask[T any] struct {
	key  string
	task T
}

type keyedResult[R any] struct {
	key   string
	value R
	err   error
}
