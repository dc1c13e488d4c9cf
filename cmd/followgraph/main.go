package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dd0wney/cluso-followgraph/pkg/analysis"
	"github.com/dd0wney/cluso-followgraph/pkg/health"
	"github.com/dd0wney/cluso-followgraph/pkg/logging"
	"github.com/dd0wney/cluso-followgraph/pkg/metrics"
	"github.com/dd0wney/cluso-followgraph/pkg/snapshot"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "followgraph: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

// run loads a snapshot, analyzes it and writes the report. When a metrics
// address is configured it keeps serving until ctx is cancelled.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	config, err := parseConfig(args, stderr)
	if err != nil {
		return err
	}

	logger := logging.NewJSONLogger(stderr, logging.ParseLevel(config.LogLevel))
	registry := metrics.NewRegistry()
	tracker := health.NewRunTracker()

	var server *http.Server
	if config.MetricsAddr != "" {
		server, err = serveMetrics(config.MetricsAddr, newMux(registry, tracker), logger)
		if err != nil {
			return err
		}
		defer server.Close()
	}

	loader := snapshot.NewLoader()
	loader.SetLogger(logger.With(logging.Component("snapshot")))
	loader.SetMetricsRegistry(registry)
	loader.SetS3Config(config.S3)

	loadCtx, cancel := context.WithTimeout(ctx, config.Timeout)
	g, err := loader.Load(loadCtx, config.Source)
	cancel()
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	tracker.SnapshotLoaded(g.NodeCount(), g.EdgeCount())
	if config.SnapshotOut != "" {
		if err := snapshot.SaveFile(config.SnapshotOut, g); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		logger.Info("snapshot saved", logging.String("path", config.SnapshotOut))
	}

	analyzer, err := analysis.NewAnalyzer(config.Options())
	if err != nil {
		return err
	}
	analyzer.SetLogger(logger.With(logging.Component("analysis")))
	analyzer.SetMetricsRegistry(registry)

	report, err := analyzer.AnalyzeGraph(g, config.Seed)
	tracker.RunFinished(err)
	if err != nil {
		return err
	}

	if err := writeReport(config, report, stdout); err != nil {
		return err
	}

	if server != nil {
		registry.UpdateSystemMetrics()
		logger.Info("report written; serving metrics until interrupted", logging.String("addr", config.MetricsAddr))
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
	return nil
}

func writeReport(config *Config, report *analysis.Report, stdout io.Writer) error {
	w := stdout
	if config.Out != "" {
		f, err := os.Create(config.Out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if config.Format == FormatText {
		_, err := io.WriteString(w, renderText(report))
		return err
	}
	return writeJSON(w, report)
}

// newMux routes /metrics plus liveness and readiness probes. Readiness
// turns healthy once the report has been produced.
func newMux(registry *metrics.Registry, tracker *health.RunTracker) *http.ServeMux {
	hc := health.NewHealthChecker()
	hc.RegisterLivenessCheck("memory", health.MemoryCheck(0))
	hc.RegisterReadinessCheck("snapshot", tracker.SnapshotCheck())
	hc.RegisterReadinessCheck("analysis", tracker.AnalysisCheck())

	mux := http.NewServeMux()
	mux.Handle("/metrics", registry.Handler())
	mux.Handle("/health", hc.LivenessHandler())
	mux.Handle("/ready", hc.ReadinessHandler())
	return mux
}

func serveMetrics(addr string, handler http.Handler, logger logging.Logger) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", logging.Error(err))
		}
	}()
	logger.Info("serving metrics", logging.String("addr", ln.Addr().String()))
	return server, nil
}
