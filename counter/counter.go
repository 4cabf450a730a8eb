// Package counter provides a mutex-guarded counter for demonstrating safe
// shared mutable state across goroutines. The counter is an owned value:
// the scope that runs the workers creates it, hands out a reference, and
// reads the total after the workers are joined. No package-level state.
package counter

import "sync"

// Counter is an integer cell whose every read-modify-write is serialized
// through a mutex, so concurrent increments are never lost.
//
// The zero value is ready to use.
type Counter struct {
	mu sync.Mutex
	n  int64
}

// Inc adds one to the counter.
func (c *Counter) Inc() {
	c.Add(1)
}

// Add adds delta to the counter. The critical section covers exactly the
// read-modify-write of the value.
func (c *Counter) Add(delta int64) {
	c.mu.Lock()
	c.n += delta
	c.mu.Unlock()
}

// Value returns the current count.
func (c *Counter) Value() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// RunIncrementers spawns workers goroutines that each increment a fresh
// Counter perWorker times, joins them all, and returns the final value.
// The result always equals workers * perWorker.
func RunIncrementers(workers, perWorker int) int64 {
	var c Counter
	var wg sync.WaitGroup

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				c.Inc()
			}
		}()
	}
	wg.Wait()

	return c.Value()
}
