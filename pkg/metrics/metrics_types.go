package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the analyzer
type Registry struct {
	// Analysis Metrics
	AnalysisRunsTotal    *prometheus.CounterVec
	AnalysisDuration     prometheus.Histogram
	StageDuration        *prometheus.HistogramVec
	GraphNodes           prometheus.Gauge
	GraphEdges           prometheus.Gauge
	ClustersDetected     prometheus.Gauge
	BridgeSourcesSampled prometheus.Gauge
	GhostFollowersFound  prometheus.Gauge

	// Snapshot Metrics
	SnapshotLoadsTotal   *prometheus.CounterVec
	SnapshotLoadDuration *prometheus.HistogramVec
	SnapshotBytesRead    *prometheus.CounterVec

	// System Metrics
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.RWMutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initAnalysisMetrics()
	r.initSnapshotMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
