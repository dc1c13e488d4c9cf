package health

import (
	"fmt"
	"runtime"
	"sync"
)

// RunTracker records the outcome of the analysis pipeline for the
// readiness checks.
type RunTracker struct {
	mu     sync.RWMutex
	nodes  int
	edges  int
	loaded bool
	done   bool
	err    error
}

// NewRunTracker creates a tracker with nothing loaded.
func NewRunTracker() *RunTracker {
	return &RunTracker{}
}

// SnapshotLoaded records the size of the loaded graph.
func (t *RunTracker) SnapshotLoaded(nodes, edges int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nodes, t.edges, t.loaded = nodes, edges, true
}

// RunFinished records the analysis outcome; err is nil on success.
func (t *RunTracker) RunFinished(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done, t.err = true, err
}

// SnapshotCheck is unhealthy until a snapshot has been loaded.
func (t *RunTracker) SnapshotCheck() CheckFunc {
	return func() Check {
		t.mu.RLock()
		defer t.mu.RUnlock()

		if !t.loaded {
			return Check{Status: StatusUnhealthy, Message: "No snapshot loaded"}
		}
		check := Check{
			Status:  StatusHealthy,
			Message: fmt.Sprintf("%d nodes loaded", t.nodes),
			Details: map[string]any{"nodes": t.nodes, "edges": t.edges},
		}
		if t.nodes == 0 {
			check.Status = StatusDegraded
			check.Message = "Snapshot is empty"
		}
		return check
	}
}

// AnalysisCheck is unhealthy until a run has completed successfully.
func (t *RunTracker) AnalysisCheck() CheckFunc {
	return func() Check {
		t.mu.RLock()
		defer t.mu.RUnlock()

		switch {
		case !t.done:
			return Check{Status: StatusUnhealthy, Message: "Analysis pending"}
		case t.err != nil:
			return Check{Status: StatusUnhealthy, Message: t.err.Error()}
		default:
			return Check{Status: StatusHealthy, Message: "Report ready"}
		}
	}
}

// MemoryCheck reports heap usage, degraded above maxAllocBytes.
// A zero ceiling disables the threshold.
func MemoryCheck(maxAllocBytes uint64) CheckFunc {
	return func() Check {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		check := Check{
			Status:  StatusHealthy,
			Message: "Memory usage normal",
			Details: map[string]any{
				"alloc_bytes": m.Alloc,
				"sys_bytes":   m.Sys,
				"num_gc":      m.NumGC,
				"goroutines":  runtime.NumGoroutine(),
			},
		}
		if maxAllocBytes > 0 && m.Alloc > maxAllocBytes {
			check.Status = StatusDegraded
			check.Message = "High memory usage"
		}
		return check
	}
}
