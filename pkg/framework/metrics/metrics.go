// Package metrics counts runtime events on a private Prometheus registry.
//
// Every collector is resolved when Metrics is built, so recording on the
// audio thread is a handful of atomic adds. Timestamps come from
// go-timecache instead of time.Now.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/agilira/go-timecache"
	"github.com/prometheus/client_golang/prometheus"
)

// Lifecycle operations counted by Operation.
const (
	OpInit            = "init"
	OpActivate        = "activate"
	OpDeactivate      = "deactivate"
	OpStartProcessing = "start_processing"
	OpStopProcessing  = "stop_processing"
	OpReset           = "reset"
	OpDestroy         = "destroy"
	OpFlush           = "flush"
	OpProcess         = "process"
)

const opCount = 9

var operations = [opCount]string{
	OpInit, OpActivate, OpDeactivate, OpStartProcessing,
	OpStopProcessing, OpReset, OpDestroy, OpFlush, OpProcess,
}

// Metrics holds the collectors of one plugin bundle.
type Metrics struct {
	Registry *prometheus.Registry

	InstancesLive       prometheus.Gauge
	InstancesCreated    prometheus.Counter
	Activations         prometheus.Counter
	ProcessCalls        prometheus.Counter
	ProcessErrors       prometheus.Counter
	ProcessPanics       prometheus.Counter
	ContractViolations  prometheus.Counter
	LifecycleViolations *prometheus.CounterVec
	Operations          *prometheus.CounterVec

	violationsByOp [opCount]prometheus.Counter
	opsByName      [opCount]prometheus.Counter

	lastProcess atomic.Int64
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		InstancesLive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "clapgo_instances_live",
			Help: "Plugin instances created and not yet destroyed",
		}),
		InstancesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clapgo_instances_created_total",
			Help: "Plugin instances created by the factory",
		}),
		Activations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clapgo_activations_total",
			Help: "Successful activations",
		}),
		ProcessCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clapgo_process_calls_total",
			Help: "Process calls received from the host",
		}),
		ProcessErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clapgo_process_errors_total",
			Help: "Process calls that returned the error status",
		}),
		ProcessPanics: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clapgo_process_panics_total",
			Help: "Panics recovered on the audio thread",
		}),
		ContractViolations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clapgo_host_contract_violations_total",
			Help: "Host calls rejected because they broke the plugin protocol",
		}),
		LifecycleViolations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clapgo_lifecycle_violations_total",
			Help: "Lifecycle calls rejected in the wrong state",
		}, []string{"operation"}),
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clapgo_lifecycle_operations_total",
			Help: "Lifecycle calls that succeeded",
		}, []string{"operation"}),
	}
	for i, op := range operations {
		m.violationsByOp[i] = m.LifecycleViolations.WithLabelValues(op)
		m.opsByName[i] = m.Operations.WithLabelValues(op)
	}

	m.Registry.MustRegister(
		m.InstancesLive,
		m.InstancesCreated,
		m.Activations,
		m.ProcessCalls,
		m.ProcessErrors,
		m.ProcessPanics,
		m.ContractViolations,
		m.LifecycleViolations,
		m.Operations,
	)
	return m
}

func index(op string) int {
	for i, name := range operations {
		if name == op {
			return i
		}
	}
	return -1
}

// Operation counts a successful lifecycle call. Unknown names are ignored.
func (m *Metrics) Operation(op string) {
	if m == nil {
		return
	}
	if i := index(op); i >= 0 {
		m.opsByName[i].Inc()
	}
}

// LifecycleViolation counts a lifecycle call made in the wrong state.
func (m *Metrics) LifecycleViolation(op string) {
	if m == nil {
		return
	}
	if i := index(op); i >= 0 {
		m.violationsByOp[i].Inc()
	}
}

// ContractViolation counts a host protocol violation.
func (m *Metrics) ContractViolation() {
	if m != nil {
		m.ContractViolations.Inc()
	}
}

// InstanceCreated records a new instance.
func (m *Metrics) InstanceCreated() {
	if m != nil {
		m.InstancesCreated.Inc()
		m.InstancesLive.Inc()
	}
}

// InstanceDestroyed records a destroyed instance.
func (m *Metrics) InstanceDestroyed() {
	if m != nil {
		m.InstancesLive.Dec()
	}
}

// Activated records a successful activation.
func (m *Metrics) Activated() {
	if m != nil {
		m.Activations.Inc()
		m.Operation(OpActivate)
	}
}

// Process records one process call. It never allocates.
func (m *Metrics) Process(failed bool) {
	if m == nil {
		return
	}
	m.ProcessCalls.Inc()
	if failed {
		m.ProcessErrors.Inc()
	}
	m.lastProcess.Store(timecache.CachedTimeNano())
}

// ProcessPanic records a panic recovered on the audio thread.
func (m *Metrics) ProcessPanic() {
	if m != nil {
		m.ProcessPanics.Inc()
	}
}

// LastProcess returns when process last ran, or the zero time.
func (m *Metrics) LastProcess() time.Time {
	if m == nil {
		return time.Time{}
	}
	ns := m.lastProcess.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}
