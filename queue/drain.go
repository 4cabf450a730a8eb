package queue

import "sync"

// Drain runs workers goroutines that repeatedly TryPop tasks from q and
// pass them to fn along with the worker's id, exiting when the queue
// reports empty. It returns once every worker has exited.
//
// Every queued task is processed by exactly one worker; which worker gets
// which task is not specified. fn may be called concurrently and must be
// safe for that.
func Drain[T any](workers int, q *Queue[T], fn func(worker int, task T)) {
	var wg sync.WaitGroup

	wg.Add(workers)
	for id := 0; id < workers; id++ {
		id := id
		go func() {
			defer wg.Done()
			for {
				task, ok := q.TryPop()
				if !ok {
					return
				}
				fn(id, task)
			}
		}()
	}
	wg.Wait()
}
