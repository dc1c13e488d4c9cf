package metrics

import (
	"runtime"
	"time"
)

// Run outcomes used as the status label.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RecordAnalysis records a finished analysis run
func (r *Registry) RecordAnalysis(status string, duration time.Duration) {
	r.AnalysisRunsTotal.WithLabelValues(status).Inc()
	r.AnalysisDuration.Observe(duration.Seconds())
}

// RecordStage records the duration of one analysis stage
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// UpdateGraphSize sets the node and edge gauges for the graph being analyzed
func (r *Registry) UpdateGraphSize(nodes, edges int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
}

// UpdateRunResults sets the per-run result gauges
func (r *Registry) UpdateRunResults(clusters, bridgeSources, ghosts int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ClustersDetected.Set(float64(clusters))
	r.BridgeSourcesSampled.Set(float64(bridgeSources))
	r.GhostFollowersFound.Set(float64(ghosts))
}

// RecordSnapshotLoad records a snapshot load from the given source kind
// (file, s3, postgres).
func (r *Registry) RecordSnapshotLoad(source, status string, duration time.Duration, bytesRead int) {
	r.SnapshotLoadsTotal.WithLabelValues(source, status).Inc()
	r.SnapshotLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
	if bytesRead > 0 {
		r.SnapshotBytesRead.WithLabelValues(source).Add(float64(bytesRead))
	}
}

// UpdateSystemMetrics samples runtime statistics
func (r *Registry) UpdateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
}
