// Package metrics provides Prometheus-based metrics collection for hostscan.
// It exposes counters and histograms for the two subsystems that do real
// work in this module: probing (TCP/UDP/ICMP/ARP) and banner analysis
// (tokenize/match/vuln/osid). There is no database, API, or daemon
// subsystem here, so those metric families from the teacher's
// implementation have no referent and are not carried forward.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	namespace = "hostscan"

	subsystemProbe   = "probe"
	subsystemAnalyze = "analyze"
)

// PrometheusMetrics holds all Prometheus metric collectors for a scan run.
type PrometheusMetrics struct {
	probesTotal   *prometheus.CounterVec
	probeDuration *prometheus.HistogramVec
	probeErrors   *prometheus.CounterVec
	activeProbes  prometheus.Gauge

	analyzeTotal    *prometheus.CounterVec
	analyzeDuration *prometheus.HistogramVec
	vulnMatches     *prometheus.CounterVec

	startTime time.Time
	mu        sync.RWMutex
	registry  *prometheus.Registry
}

// NewPrometheusMetrics creates a new Prometheus metrics instance with all
// collectors registered against a fresh registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()

	pm := &PrometheusMetrics{
		startTime: time.Now(),
		registry:  registry,
	}

	pm.initProbeMetrics()
	pm.initAnalyzeMetrics()
	pm.registerMetrics()

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return pm
}

func (pm *PrometheusMetrics) initProbeMetrics() {
	pm.probesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemProbe,
			Name:      "total",
			Help:      "Total number of service probes performed by protocol and reason",
		},
		[]string{"protocol", "reason"},
	)

	pm.probeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystemProbe,
			Name:      "duration_seconds",
			Help:      "Duration of a single service probe in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
		[]string{"protocol"},
	)

	pm.probeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemProbe,
			Name:      "errors_total",
			Help:      "Total number of probe failures by protocol and error code",
		},
		[]string{"protocol", "error_code"},
	)

	pm.activeProbes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystemProbe,
			Name:      "active",
			Help:      "Number of probe tasks currently running in the worker pool",
		},
	)
}

func (pm *PrometheusMetrics) initAnalyzeMetrics() {
	pm.analyzeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemAnalyze,
			Name:      "total",
			Help:      "Total number of banner analysis runs by stage and outcome",
		},
		[]string{"stage", "outcome"},
	)

	pm.analyzeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystemAnalyze,
			Name:      "duration_seconds",
			Help:      "Duration of a banner analysis stage in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"stage"},
	)

	pm.vulnMatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemAnalyze,
			Name:      "vuln_matches_total",
			Help:      "Total number of CVE matches found during vulnerability lookup",
		},
		[]string{"cpe_vendor"},
	)
}

func (pm *PrometheusMetrics) registerMetrics() {
	pm.registry.MustRegister(pm.probesTotal)
	pm.registry.MustRegister(pm.probeDuration)
	pm.registry.MustRegister(pm.probeErrors)
	pm.registry.MustRegister(pm.activeProbes)

	pm.registry.MustRegister(pm.analyzeTotal)
	pm.registry.MustRegister(pm.analyzeDuration)
	pm.registry.MustRegister(pm.vulnMatches)
}

// GetRegistry returns the Prometheus registry, for wiring into a metrics
// HTTP endpoint by an embedding application.
func (pm *PrometheusMetrics) GetRegistry() *prometheus.Registry {
	return pm.registry
}

// IncrementProbesTotal records a completed probe by protocol and the
// probe.Reason it resolved to (reply_received, port_unreachable,
// timed_out...).
func (pm *PrometheusMetrics) IncrementProbesTotal(protocol, reason string) {
	pm.probesTotal.WithLabelValues(protocol, reason).Inc()
}

// RecordProbeDuration records how long a single probe took.
func (pm *PrometheusMetrics) RecordProbeDuration(protocol string, duration time.Duration) {
	pm.probeDuration.WithLabelValues(protocol).Observe(duration.Seconds())
}

// IncrementProbeErrors records a probe-level fatal error (not a closed port,
// which is a normal outcome, but a setup or I/O failure).
func (pm *PrometheusMetrics) IncrementProbeErrors(protocol, errorCode string) {
	pm.probeErrors.WithLabelValues(protocol, errorCode).Inc()
}

// SetActiveProbes sets the current number of in-flight probe tasks.
func (pm *PrometheusMetrics) SetActiveProbes(count int) {
	pm.activeProbes.Set(float64(count))
}

// IncrementAnalyzeTotal records a completed analysis stage run (tokenize,
// match, vuln, osid) and its outcome (ok, matched, unmatched).
func (pm *PrometheusMetrics) IncrementAnalyzeTotal(stage, outcome string) {
	pm.analyzeTotal.WithLabelValues(stage, outcome).Inc()
}

// RecordAnalyzeDuration records how long an analysis stage took.
func (pm *PrometheusMetrics) RecordAnalyzeDuration(stage string, duration time.Duration) {
	pm.analyzeDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// IncrementVulnMatches records CVE matches found for a given CPE vendor.
func (pm *PrometheusMetrics) IncrementVulnMatches(cpeVendor string, count int) {
	pm.vulnMatches.WithLabelValues(cpeVendor).Add(float64(count))
}

// GetUptime returns how long this metrics instance has been collecting.
func (pm *PrometheusMetrics) GetUptime() time.Duration {
	return time.Since(pm.startTime)
}

var (
	globalMetrics *PrometheusMetrics
	metricsOnce   sync.Once
)

// GetGlobalMetrics returns the process-wide Prometheus metrics instance,
// creating it on first use.
func GetGlobalMetrics() *PrometheusMetrics {
	metricsOnce.Do(func() {
		globalMetrics = NewPrometheusMetrics()
	})
	return globalMetrics
}

// RecordProbe records a completed probe using the global metrics instance.
func RecordProbe(protocol, reason string, duration time.Duration) {
	m := GetGlobalMetrics()
	m.IncrementProbesTotal(protocol, reason)
	m.RecordProbeDuration(protocol, duration)
}

// RecordProbeError records a probe-level error using the global instance.
func RecordProbeError(protocol, errorCode string) {
	GetGlobalMetrics().IncrementProbeErrors(protocol, errorCode)
}

// RecordAnalyze records a completed analysis stage using the global instance.
func RecordAnalyze(stage, outcome string, duration time.Duration) {
	m := GetGlobalMetrics()
	m.IncrementAnalyzeTotal(stage, outcome)
	m.RecordAnalyzeDuration(stage, duration)
}
