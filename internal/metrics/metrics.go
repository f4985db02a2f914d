// Package metrics defines the Prometheus metrics exported by uiforge.
//
// All recording methods are safe on a nil *Metrics, so components can be
// built without a registry in tests and one-shot commands.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/felixgeelhaar/uiforge/internal/errors"
)

// Metrics holds all Prometheus metrics for uiforge
type Metrics struct {
	// Command execution metrics
	CommandExecutions *prometheus.CounterVec
	CommandDuration   *prometheus.HistogramVec

	// Oracle call metrics
	OracleCalls   *prometheus.CounterVec
	OracleLatency *prometheus.HistogramVec

	// Synthesis metrics
	SynthAttempts *prometheus.CounterVec
	SynthRetries  *prometheus.CounterVec
	SynthOutcomes *prometheus.CounterVec
	PlanNodes     prometheus.Histogram

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Bundle metrics
	BundleOperations *prometheus.CounterVec

	// Error metrics (by error code from structured errors)
	Errors *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		CommandExecutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uiforge_command_executions_total",
				Help: "Total number of command executions",
			},
			[]string{"command", "success"},
		),
		CommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "uiforge_command_duration_seconds",
				Help:    "Command execution duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),

		OracleCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uiforge_oracle_calls_total",
				Help: "Total number of oracle chat calls",
			},
			[]string{"purpose", "success"},
		),
		OracleLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "uiforge_oracle_latency_seconds",
				Help:    "Oracle chat call latency in seconds",
				Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0},
			},
			[]string{"purpose"},
		),

		SynthAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uiforge_synth_attempts_total",
				Help: "Total number of planning attempts, retries included",
			},
			[]string{"mode"},
		),
		SynthRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uiforge_synth_retries_total",
				Help: "Total number of planning retries after a JSON syntax failure",
			},
			[]string{"mode"},
		),
		SynthOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uiforge_synth_outcomes_total",
				Help: "Total number of synthesis runs by outcome",
			},
			[]string{"mode", "outcome"},
		),
		PlanNodes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "uiforge_plan_nodes",
				Help:    "Number of nodes in validated plans",
				Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
			},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uiforge_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "uiforge_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),

		BundleOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uiforge_bundle_operations_total",
				Help: "Total number of bundle exports and imports",
			},
			[]string{"operation", "success"},
		),

		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uiforge_errors_total",
				Help: "Total number of errors by error code",
			},
			[]string{"error_code", "component"},
		),
	}
}

// RecordCommand counts one command execution
func (m *Metrics) RecordCommand(command string, success bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.CommandExecutions.WithLabelValues(command, strconv.FormatBool(success)).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

// RecordOracleCall counts one oracle call and its latency
func (m *Metrics) RecordOracleCall(purpose string, success bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.OracleCalls.WithLabelValues(purpose, strconv.FormatBool(success)).Inc()
	m.OracleLatency.WithLabelValues(purpose).Observe(duration.Seconds())
}

// RecordSynthAttempt counts one planning attempt; retry marks the second one
func (m *Metrics) RecordSynthAttempt(mode string, retry bool) {
	if m == nil {
		return
	}
	m.SynthAttempts.WithLabelValues(mode).Inc()
	if retry {
		m.SynthRetries.WithLabelValues(mode).Inc()
	}
}

// RecordSynthOutcome counts a finished synthesis run
func (m *Metrics) RecordSynthOutcome(mode, outcome string) {
	if m == nil {
		return
	}
	m.SynthOutcomes.WithLabelValues(mode, outcome).Inc()
}

// ObservePlan records the size of a validated plan
func (m *Metrics) ObservePlan(nodes int) {
	if m == nil {
		return
	}
	m.PlanNodes.Observe(float64(nodes))
}

// RecordHTTP counts one served request
func (m *Metrics) RecordHTTP(route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordBundle counts one bundle export or import
func (m *Metrics) RecordBundle(operation string, success bool) {
	if m == nil {
		return
	}
	m.BundleOperations.WithLabelValues(operation, strconv.FormatBool(success)).Inc()
}

// RecordError counts err under its structured code, or "unknown"
func (m *Metrics) RecordError(err error, component string) {
	if m == nil || err == nil {
		return
	}
	code := string(errors.CodeOf(err))
	if code == "" {
		code = "unknown"
	}
	m.Errors.WithLabelValues(code, component).Inc()
}
