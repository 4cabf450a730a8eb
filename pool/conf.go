package pool

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

// WorkerPoolOption is a functional option for configuring the worker pool.
type WorkerPoolOption func(*workerPoolConfig)

type workerPoolConfig struct {
	workerCount    int
	workerCountSet bool
	taskBuffer     int
	rateLimiter    *rate.Limiter
	mode           ExecMode
	metrics        *poolMetrics
}

// WithWorkerCount sets the number of concurrent workers.
// If not specified, defaults to runtime.GOMAXPROCS(0) for ModeIO and
// runtime.NumCPU() for ModeCPU.
func WithWorkerCount(count int) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if count > 0 {
			cfg.workerCount = count
			cfg.workerCountSet = true
		}
	}
}

// WithTaskBuffer sets the buffer size for the task channel.
// A larger buffer can improve throughput but uses more memory.
// If not specified, defaults to the number of workers.
func WithTaskBuffer(size int) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if size >= 0 {
			cfg.taskBuffer = size
		}
	}
}

// WithExecMode selects the worker execution model. ModeIO (the default)
// runs workers as ordinary goroutines; ModeCPU locks each worker to an OS
// thread pinned to a CPU core for compute-heavy workloads.
func WithExecMode(mode ExecMode) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		cfg.mode = mode
	}
}

// WithRateLimit sets a rate limiter for controlling task throughput.
// tasksPerSecond specifies the maximum number of tasks to process per second.
// burst specifies the maximum number of tasks that can be processed in a burst.
// This is useful for preventing overwhelming external services or APIs.
// If not specified, no rate limiting is applied.
//
// Example:
//
//	WithRateLimit(10, 5) // Allow 10 tasks/sec with burst of 5
func WithRateLimit(tasksPerSecond float64, burst int) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}

// WithMetrics attaches Prometheus instrumentation to the pool, registered
// with reg. name labels the pool's metric series so several pools can share
// a registry. Exposition of the registry is the caller's responsibility.
func WithMetrics(reg prometheus.Registerer, name string) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if reg != nil {
			cfg.metrics = newPoolMetrics(reg, name)
		}
	}
}

func createConfig(opts ...WorkerPoolOption) *workerPoolConfig {
	cfg := &workerPoolConfig{
		workerCount: runtime.GOMAXPROCS(0),
		taskBuffer:  0, // Will be set to workerCount if not specified
		mode:        ModeIO,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.mode == ModeCPU && !cfg.workerCountSet {
		cfg.workerCount = runtime.NumCPU()
	}

	if cfg.taskBuffer == 0 {
		cfg.taskBuffer = cfg.workerCount
	}

	return cfg
}
