package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAnalysisMetrics() {
	r.AnalysisRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "followgraph_analysis_runs_total",
			Help: "Total number of analysis runs",
		},
		[]string{"status"},
	)

	r.AnalysisDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "followgraph_analysis_duration_seconds",
			Help:    "End-to-end analysis duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120},
		},
	)

	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "followgraph_stage_duration_seconds",
			Help:    "Duration of a single analysis stage in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10, 60},
		},
		[]string{"stage"},
	)

	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "followgraph_graph_nodes",
			Help: "Number of nodes in the most recently analyzed graph",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "followgraph_graph_edges",
			Help: "Number of edges in the most recently analyzed graph",
		},
	)

	r.ClustersDetected = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "followgraph_clusters_detected",
			Help: "Number of clusters found in the most recent run",
		},
	)

	r.BridgeSourcesSampled = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "followgraph_bridge_sources_sampled",
			Help: "Number of BFS sources used for betweenness in the most recent run",
		},
	)

	r.GhostFollowersFound = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "followgraph_ghost_followers",
			Help: "Number of ghost followers of the seed in the most recent run",
		},
	)
}
