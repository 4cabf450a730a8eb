package queue

import (
	"fmt"
	"sync"
	"testing"
)

func TestQueue_FIFOOrder(t *testing.T) {
	q := New[int]()

	for i := 0; i < 10; i++ {
		q.Push(i)
	}
	if got := q.Len(); got != 10 {
		t.Fatalf("expected length 10, got %d", got)
	}

	for i := 0; i < 10; i++ {
		v, ok := q.TryPop()
		if !ok {
			t.Fatalf("expected item at position %d, queue reported empty", i)
		}
		if v != i {
			t.Errorf("position %d: expected %d, got %d", i, i, v)
		}
	}
}

func TestQueue_TryPopEmpty(t *testing.T) {
	q := New[string]()

	v, ok := q.TryPop()
	if ok {
		t.Errorf("expected empty signal, got item %q", v)
	}
	if v != "" {
		t.Errorf("expected zero value, got %q", v)
	}
	if q.Len() != 0 {
		t.Errorf("expected length 0, got %d", q.Len())
	}
}

func TestQueue_InterleavedPushPop(t *testing.T) {
	q := New[int]()

	q.Push(1)
	q.Push(2)
	if v, _ := q.TryPop(); v != 1 {
		t.Errorf("expected 1, got %d", v)
	}
	q.Push(3)
	if v, _ := q.TryPop(); v != 2 {
		t.Errorf("expected 2, got %d", v)
	}
	if v, _ := q.TryPop(); v != 3 {
		t.Errorf("expected 3, got %d", v)
	}
	if _, ok := q.TryPop(); ok {
		t.Error("expected empty queue")
	}
}

func TestQueue_ConcurrentPoppers(t *testing.T) {
	q := New[int]()

	const items = 1_000
	for i := 0; i < items; i++ {
		q.Push(i)
	}

	var mu sync.Mutex
	seen := make(map[int]int, items)

	var wg sync.WaitGroup
	wg.Add(8)
	for _r78 := 0; _r78 < 8; _r78++ {
		go func() {
			defer wg.Done()
			for {
				v, ok := q.TryPop()
				if !ok {
					return
				}
				mu.Lock()
				seen[v]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != items {
		t.Fatalf("expected %d distinct items, got %d", items, len(seen))
	}
	for v, n := range seen {
		if n != 1 {
			t.Errorf("item %d delivered %d times", v, n)
		}
	}
}

func TestDrain_ExactlyOnceDelivery(t *testing.T) {
	// Repeat to give racy assignment plenty of chances to misbehave.
	for run := 0; run < 20; run++ {
		q := New[string]()
		tasks := []string{"task-0", "task-1", "task-2", "task-3", "task-4"}
		for _, task := range tasks {
			q.Push(task)
		}

		var mu sync.Mutex
		processed := make(map[string]int, len(tasks))

		Drain(3, q, func(worker int, task string) {
			mu.Lock()
			processed[task]++
			mu.Unlock()
		})

		if len(processed) != len(tasks) {
			t.Fatalf("run %d: expected %d tasks processed, got %d", run, len(tasks), len(processed))
		}
		for _, task := range tasks {
			if processed[task] != 1 {
				t.Errorf("run %d: task %q processed %d times", run, task, processed[task])
			}
		}
		if q.Len() != 0 {
			t.Errorf("run %d: queue not drained, %d left", run, q.Len())
		}
	}
}

func TestDrain_MoreWorkersThanTasks(t *testing.T) {
	q := New[int]()
	q.Push(1)
	q.Push(2)

	var mu sync.Mutex
	var got []int

	Drain(8, q, func(worker int, task int) {
		mu.Lock()
		got = append(got, task)
		mu.Unlock()
	})

	if len(got) != 2 {
		t.Fatalf("expected 2 tasks processed, got %d", len(got))
	}
}

func TestDrain_EmptyQueue(t *testing.T) {
	q := New[int]()

	called := false
	Drain(3, q, func(worker int, task int) {
		called = true
	})

	if called {
		t.Error("expected no calls for an empty queue")
	}
}

func TestDrain_WorkerIDsInRange(t *testing.T) {
	q := New[int]()
	for i := 0; i < 100; i++ {
		q.Push(i)
	}

	const workers = 4
	var mu sync.Mutex
	ids := make(map[int]bool)

	Drain(workers, q, func(worker int, task int) {
		mu.Lock()
		ids[worker] = true
		mu.Unlock()
	})

	for id := range ids {
		if id < 0 || id >= workers {
			t.Errorf("worker id %d out of range [0,%d)", id, workers)
		}
	}
}

func ExampleQueue_TryPop() {
	q := New[string]()
	q.Push("a")

	if v, ok := q.TryPop(); ok {
		fmt.Println(v)
	}
	if _, ok := q.TryPop(); !ok {
		fmt.Println("empty")
	}
	// Output:
	// a
	// empty
}
