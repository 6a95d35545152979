// Package monitoring exposes Prometheus metrics for script executions.
package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the executor.
type Metrics struct {
	ExecutionsTotal   *prometheus.CounterVec
	ExecutionDuration prometheus.Histogram
	ExecutionsActive  prometheus.Gauge

	// Snapshot of current values for programmatic access
	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds current counter values for the Stats API.
type Snapshot struct {
	Total     int64
	Succeeded int64
	Failed    int64
	TimedOut  int64
}

var (
	shared     *Metrics
	sharedOnce sync.Once
)

// Shared returns the process-wide metrics collector. Registration with the
// default Prometheus registry happens once, so any number of executors can
// share it safely.
func Shared() *Metrics {
	sharedOnce.Do(func() {
		shared = &Metrics{
			ExecutionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "scriptbox_executions_total",
					Help: "Total number of script executions by outcome",
				},
				[]string{"outcome"},
			),
			ExecutionDuration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "scriptbox_execution_duration_seconds",
					Help:    "Script execution duration in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
				},
			),
			ExecutionsActive: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "scriptbox_executions_active",
					Help: "Number of executions currently in flight",
				},
			),
		}
	})
	return shared
}

// ExecutionStarted records the start of an execution.
func (m *Metrics) ExecutionStarted() {
	m.ExecutionsActive.Inc()
}

// ExecutionFinished records a completed execution and its outcome label.
// The label is "success" or the failure kind.
func (m *Metrics) ExecutionFinished(outcome string, d time.Duration) {
	m.ExecutionsActive.Dec()
	m.ExecutionsTotal.WithLabelValues(outcome).Inc()
	m.ExecutionDuration.Observe(d.Seconds())

	m.mu.Lock()
	m.snapshot.Total++
	switch outcome {
	case "success":
		m.snapshot.Succeeded++
	case "timeout":
		m.snapshot.TimedOut++
		m.snapshot.Failed++
	default:
		m.snapshot.Failed++
	}
	m.mu.Unlock()
}

// Stats returns a copy of the current counter values.
func (m *Metrics) Stats() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
