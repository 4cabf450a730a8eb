// Package queue provides a concurrency-safe FIFO task queue with a
// non-blocking try-remove operation, plus a helper that drains a pre-loaded
// queue with a fixed set of workers.
//
// Emptiness is an explicit signal, not an error: TryPop returns false when
// no item is available, so worker loops need no failure-as-control-flow.
package queue

import (
	"sync"

	ring "github.com/eapache/queue"
)

// Queue is a mutex-guarded FIFO backed by a growable ring buffer. Multiple
// workers may Push and TryPop concurrently; each pushed item is delivered
// to exactly one popper.
type Queue[T any] struct {
	mu   sync.Mutex
	ring *ring.Queue
}

// New returns an empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{ring: ring.New()}
}

// Push appends v to the back of the queue.
func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	q.ring.Add(v)
	q.mu.Unlock()
}

// TryPop removes and returns the item at the front of the queue. The
// second return value reports whether an item was available; it is false
// when the queue is empty.
func (q *Queue[T]) TryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.ring.Length() == 0 {
		var zero T
		return zero, false
	}
	return q.ring.Remove().(T), true
}

// Len returns the number of items currently queued.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ring.Length()
}
