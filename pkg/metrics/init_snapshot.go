package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSnapshotMetrics() {
	r.SnapshotLoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "followgraph_snapshot_loads_total",
			Help: "Total number of graph snapshot loads",
		},
		[]string{"source", "status"},
	)

	r.SnapshotLoadDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "followgraph_snapshot_load_duration_seconds",
			Help:    "Snapshot load duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"source"},
	)

	r.SnapshotBytesRead = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "followgraph_snapshot_bytes_read_total",
			Help: "Raw snapshot bytes read before decompression",
		},
		[]string{"source"},
	)
}
