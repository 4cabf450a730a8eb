// Command parpool-demo runs four small concurrency scenarios on top of the
// parpool packages: an I/O-bound pool, a CPU-bound pinned pool, a locked
// shared counter, and a producer/consumer queue drain. All printing lives
// here; the library packages only return values.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/schollz/progressbar/v3"

	"github.com/goconcurrent/parpool/counter"
	"github.com/goconcurrent/parpool/internal/cpu"
	"github.com/goconcurrent/parpool/pool"
	"github.com/goconcurrent/parpool/queue"
	"github.com/goconcurrent/parpool/workload"
)

var (
	bold  = color.New(color.Bold)
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
	cyan  = color.New(color.FgCyan)
)

func main() {
	configPath := flag.String("config", "", "optional YAML scenario file")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		colorPrintLn(red, "config error:", err)
		os.Exit(1)
	}

	colorPrintf(bold, "Logical CPUs: %d\n\n", cpu.Count())

	runDownloadDemo(cfg.Download)
	runPrimeDemo(cfg.Primes)
	runCounterDemo(cfg.Counter)
	runQueueDemo(cfg.Queue)
}

// runDownloadDemo processes simulated downloads on an I/O-mode pool and
// reports the ordered results plus the pool's Prometheus counters.
func runDownloadDemo(cfg DownloadConfig) {
	printHeader("Worker pool (I/O-bound)")

	delay, err := cfg.delay()
	if err != nil {
		colorPrintLn(red, "invalid delay:", err)
		return
	}

	reg := prometheus.NewRegistry()
	p := pool.NewWorkerPool[int, string](
		pool.WithWorkerCount(cfg.Workers),
		pool.WithMetrics(reg, "download"),
	)

	tasks := make([]int, cfg.Items)
	for i := range tasks {
		tasks[i] = i
	}

	bar := makeProgressBar(cfg.Items, "Downloading")

	start := time.Now()
	results, err := p.Process(context.Background(), tasks, func(ctx context.Context, idx int) (string, error) {
		item, err := workload.FetchItem(ctx, idx, delay)
		_ = bar.Add(1)
		return item, err
	})
	elapsed := time.Since(start)
	_ = bar.Finish()
	fmt.Println()

	if err != nil {
		colorPrintLn(red, "download demo failed:", err)
		return
	}

	for _, item := range results {
		fmt.Println("pool result", item)
	}
	colorPrintf(green, "Pooled I/O finished in %.2fs with %d workers (%.0f tasks recorded)\n\n",
		elapsed.Seconds(), cfg.Workers, metricValue(reg, "parpool_pool_tasks_total"))
}

// runPrimeDemo counts primes below a ladder of limits on a CPU-mode pool,
// one pinned worker per core by default.
func runPrimeDemo(cfg PrimesConfig) {
	printHeader("Worker pool (CPU-bound, pinned)")

	workers := cfg.Workers
	if workers <= 0 {
		workers = cpu.Count()
	}
	inputs := cfg.Inputs
	if inputs <= 0 {
		inputs = workers * 3
	}

	limits := make([]int, inputs)
	for i := range limits {
		limits[i] = cfg.Limit + i*cfg.Step
	}

	p := pool.NewWorkerPool[int, int](
		pool.WithWorkerCount(workers),
		pool.WithExecMode(pool.ModeCPU),
	)

	start := time.Now()
	counts, err := p.Process(context.Background(), limits, func(ctx context.Context, limit int) (int, error) {
		return workload.CountPrimes(limit), nil
	})
	elapsed := time.Since(start)

	if err != nil {
		colorPrintLn(red, "prime demo failed:", err)
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Limit", "Primes Below")
	for i, limit := range limits {
		_ = table.Append(formatNumber(limit), formatNumber(counts[i]))
	}
	if err := table.Render(); err != nil {
		colorPrintLn(red, "error rendering primes table")
	}
	colorPrintf(green, "CPU pool completed in %.2fs using %d workers\n\n", elapsed.Seconds(), workers)
}

// runCounterDemo increments a shared locked counter from several goroutines
// and checks that no update was lost.
func runCounterDemo(cfg CounterConfig) {
	printHeader("Shared counter with lock")

	start := time.Now()
	total := counter.RunIncrementers(cfg.Workers, cfg.Increments)
	elapsed := time.Since(start)

	expected := int64(cfg.Workers) * int64(cfg.Increments)
	fmt.Printf("Counter = %d (expected %d)\n", total, expected)
	if total == expected {
		colorPrintf(green, "Locked increments completed in %.2fs\n\n", elapsed.Seconds())
	} else {
		colorPrintf(red, "lost updates detected: %d missing\n\n", expected-total)
	}
}

// runQueueDemo pre-loads a queue and drains it with a fixed worker set,
// showing the non-deterministic task-to-worker assignment.
func runQueueDemo(cfg QueueConfig) {
	printHeader("Producer/consumer queue")

	q := queue.New[string]()
	for i := 0; i < cfg.Tasks; i++ {
		q.Push(fmt.Sprintf("task-%d", i))
	}

	type assignment struct {
		worker int
		task   string
	}

	var mu sync.Mutex
	var assignments []assignment

	queue.Drain(cfg.Workers, q, func(worker int, task string) {
		time.Sleep(100 * time.Millisecond) // simulate per-task work
		mu.Lock()
		assignments = append(assignments, assignment{worker: worker, task: task})
		mu.Unlock()
	})

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Worker", "Task")
	for _, a := range assignments {
		_ = table.Append(fmt.Sprintf("worker-%d", a.worker), a.task)
	}
	if err := table.Render(); err != nil {
		colorPrintLn(red, "error rendering queue table")
	}
	colorPrintf(green, "Drained %d tasks with %d workers\n", len(assignments), cfg.Workers)
}

func printHeader(title string) {
	colorPrintLn(cyan, "--- "+title+" ---")
}

func colorPrintLn(c *color.Color, a ...any) {
	_, _ = c.Println(a...)
}

func colorPrintf(c *color.Color, format string, a ...any) {
	_, _ = c.Printf(format, a...)
}

func makeProgressBar(length int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(length,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// metricValue sums a counter family gathered from reg, for the end-of-demo
// summary lines.
func metricValue(reg *prometheus.Registry, name string) float64 {
	families, err := reg.Gather()
	if err != nil {
		return 0
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

// formatNumber renders n with comma separators.
func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	out := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
