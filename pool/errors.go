package pool

import "fmt"

// TaskError reports the failure of a single work item. It carries enough
// context to identify the task after pool teardown: the original index (or
// map key for keyed tasks), the input value, and the underlying cause.
type TaskError struct {
	// Index is the task's position in the input slice, or -1 for keyed tasks.
	Index int

	// Key is the map key for tasks submitted via ProcessMap, otherwise empty.
	Key string

	// Task is the original input value.
	Task any

	// Err is the underlying failure returned (or recovered) from the
	// processing function.
	Err error
}

func (e *TaskError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("task %q (input %v): %v", e.Key, e.Task, e.Err)
	}
	return fmt.Sprintf("task %d (input %v): %v", e.Index, e.Task, e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }

// StartupError reports that the pool's worker execution contexts could not
// be created, for example when a CPU-pinned worker fails to acquire its
// core. The run is aborted with no partial results.
type StartupError struct {
	Err error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("pool startup: %v", e.Err)
}

func (e *StartupError) Unwrap() error { return e.Err }
