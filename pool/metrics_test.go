package pool

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// counterValue sums a gathered counter family across label sets.
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		var total float64
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total
	}
	return 0
}

func gaugeValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		var total float64
		for _, m := range mf.GetMetric() {
			total += m.GetGauge().GetValue()
		}
		return total
	}
	return 0
}

func TestWorkerPool_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewWorkerPool[int, int](
		WithWorkerCount(4),
		WithMetrics(reg, "test"),
	)

	tasks := []int{1, 2, 3, 4, 5}
	_, err := p.Process(context.Background(), tasks,
		func(ctx context.Context, task int) (int, error) {
			if task == 3 {
				return 0, errors.New("failure")
			}
			return task, nil
		})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if got := counterValue(t, reg, "parpool_pool_tasks_total"); got != float64(len(tasks)) {
		t.Errorf("expected %d tasks recorded, got %v", len(tasks), got)
	}
	if got := counterValue(t, reg, "parpool_pool_task_failures_total"); got != 1 {
		t.Errorf("expected 1 failure recorded, got %v", got)
	}
	if got := gaugeValue(t, reg, "parpool_pool_tasks_in_flight"); got != 0 {
		t.Errorf("expected 0 tasks in flight after teardown, got %v", got)
	}
}

func TestWorkerPool_MetricsSharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := NewWorkerPool[int, int](WithWorkerCount(2), WithMetrics(reg, "first"))
	second := NewWorkerPool[int, int](WithWorkerCount(2), WithMetrics(reg, "second"))

	double := func(ctx context.Context, task int) (int, error) { return task * 2, nil }

	if _, err := first.Process(context.Background(), []int{1, 2, 3}, double); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := second.Process(context.Background(), []int{1, 2}, double); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := counterValue(t, reg, "parpool_pool_tasks_total"); got != 5 {
		t.Errorf("expected 5 tasks across both pools, got %v", got)
	}
}

func TestWorkerPool_NoMetricsIsSafe(t *testing.T) {
	p := NewWorkerPool[int, int](WithWorkerCount(2))

	results, err := p.Process(context.Background(), []int{1, 2, 3},
		func(ctx context.Context, task int) (int, error) {
			return task + 1, nil
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
}
