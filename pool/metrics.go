package pool

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// poolMetrics holds the Prometheus instruments for one pool. All methods
// are nil-safe so uninstrumented pools pay nothing.
type poolMetrics struct {
	tasks    prometheus.Counter
	failures prometheus.Counter
	duration prometheus.Observer
	inFlight prometheus.Gauge
}

// register adds c to reg, reusing the existing collector when another pool
// already registered the same series. Several pools can therefore share one
// registry, distinguished by the pool label.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(C)
		}
		panic(err)
	}
	return c
}

// newPoolMetrics registers the pool's metric series with reg, labeled by
// pool name.
func newPoolMetrics(reg prometheus.Registerer, name string) *poolMetrics {
	tasks := register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parpool",
			Subsystem: "pool",
			Name:      "tasks_total",
			Help:      "Total number of tasks processed",
		},
		[]string{"pool"},
	))

	failures := register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parpool",
			Subsystem: "pool",
			Name:      "task_failures_total",
			Help:      "Total number of tasks that returned an error or panicked",
		},
		[]string{"pool"},
	))

	duration := register(reg, prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "parpool",
			Subsystem: "pool",
			Name:      "task_duration_seconds",
			Help:      "Time spent processing individual tasks",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"pool"},
	))

	inFlight := register(reg, prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "parpool",
			Subsystem: "pool",
			Name:      "tasks_in_flight",
			Help:      "Number of tasks currently being processed",
		},
		[]string{"pool"},
	))

	return &poolMetrics{
		tasks:    tasks.WithLabelValues(name),
		failures: failures.WithLabelValues(name),
		duration: duration.WithLabelValues(name),
		inFlight: inFlight.WithLabelValues(name),
	}
}

func (m *poolMetrics) taskStarted() {
	if m == nil {
		return
	}
	m.inFlight.Inc()
}

func (m *poolMetrics) taskDone(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.inFlight.Dec()
	m.tasks.Inc()
	m.duration.Observe(d.Seconds())
	if err != nil {
		m.failures.Inc()
	}
}
