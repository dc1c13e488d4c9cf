package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPerformChecks_WorstStatusWins(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"no checks", nil, StatusHealthy},
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy beats degraded", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := NewHealthChecker()
			for i, s := range tt.statuses {
				status := s
				hc.RegisterLivenessCheck(string(rune('a'+i)), func() Check {
					return Check{Status: status}
				})
			}

			resp := hc.CheckLiveness()
			if resp.Status != tt.want {
				t.Errorf("Status = %s, want %s", resp.Status, tt.want)
			}
			if len(resp.Checks) != len(tt.statuses) {
				t.Errorf("Expected %d checks, got %d", len(tt.statuses), len(resp.Checks))
			}
		})
	}
}

func TestChecksAreSeparated(t *testing.T) {
	hc := NewHealthChecker()
	readyCalled := false
	hc.RegisterReadinessCheck("ready", func() Check {
		readyCalled = true
		return Check{Status: StatusHealthy}
	})

	hc.CheckLiveness()
	if readyCalled {
		t.Error("readiness check should not run for liveness")
	}

	resp := hc.CheckReadiness()
	if !readyCalled {
		t.Error("readiness check was not called")
	}
	if resp.Checks["ready"].Name != "ready" {
		t.Errorf("Expected check name filled in, got %q", resp.Checks["ready"].Name)
	}
}

func TestRunTracker(t *testing.T) {
	tracker := NewRunTracker()
	snapshot := tracker.SnapshotCheck()
	analysis := tracker.AnalysisCheck()

	if snapshot().Status != StatusUnhealthy || analysis().Status != StatusUnhealthy {
		t.Fatal("Expected unhealthy before anything happened")
	}

	tracker.SnapshotLoaded(0, 0)
	if got := snapshot().Status; got != StatusDegraded {
		t.Errorf("Empty snapshot status = %s, want degraded", got)
	}

	tracker.SnapshotLoaded(12, 30)
	check := snapshot()
	if check.Status != StatusHealthy || check.Details["nodes"] != 12 {
		t.Errorf("Unexpected snapshot check %+v", check)
	}

	tracker.RunFinished(errors.New("boom"))
	if check := analysis(); check.Status != StatusUnhealthy || check.Message != "boom" {
		t.Errorf("Unexpected failed analysis check %+v", check)
	}

	tracker.RunFinished(nil)
	if got := analysis().Status; got != StatusHealthy {
		t.Errorf("Analysis status = %s, want healthy", got)
	}
}

func TestMemoryCheck(t *testing.T) {
	if got := MemoryCheck(0)().Status; got != StatusHealthy {
		t.Errorf("Unbounded memory check = %s, want healthy", got)
	}
	if got := MemoryCheck(1)().Status; got != StatusDegraded {
		t.Errorf("1-byte ceiling = %s, want degraded", got)
	}
}

func TestHandlers(t *testing.T) {
	hc := NewHealthChecker()
	tracker := NewRunTracker()
	hc.RegisterLivenessCheck("memory", MemoryCheck(1))
	hc.RegisterReadinessCheck("analysis", tracker.AnalysisCheck())

	tests := []struct {
		name    string
		handler http.HandlerFunc
		setup   func()
		want    int
	}{
		{"liveness degraded is ok", hc.LivenessHandler(), func() {}, http.StatusOK},
		{"readiness pending", hc.ReadinessHandler(), func() {}, http.StatusServiceUnavailable},
		{"readiness done", hc.ReadinessHandler(), func() { tracker.RunFinished(nil) }, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			rec := httptest.NewRecorder()
			tt.handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			if rec.Code != tt.want {
				t.Errorf("Status code = %d, want %d", rec.Code, tt.want)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			var resp Response
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode body: %v", err)
			}
			if len(resp.Checks) != 1 {
				t.Errorf("Expected 1 check, got %d", len(resp.Checks))
			}
		})
	}
}
