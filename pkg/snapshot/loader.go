package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dd0wney/cluso-followgraph/pkg/graph"
	"github.com/dd0wney/cluso-followgraph/pkg/logging"
	"github.com/dd0wney/cluso-followgraph/pkg/metrics"
	"github.com/dd0wney/cluso-followgraph/pkg/validation"
)

// Loader fetches a graph snapshot from a file, S3 or PostgreSQL and
// validates it before handing it to the analyzer.
type Loader struct {
	logger          logging.Logger
	metricsRegistry *metrics.Registry

	s3Config S3Config
	s3Client S3API

	openPG func(ctx context.Context, dsn string) (*PGStore, error)

	// SkipValidation disables schema checks on the decoded graph.
	SkipValidation bool
}

// NewLoader creates a loader using the default AWS and PostgreSQL clients.
func NewLoader() *Loader {
	return &Loader{
		logger:          logging.NewDefaultLogger().With(logging.Component("snapshot")),
		metricsRegistry: metrics.DefaultRegistry(),
		openPG:          OpenPGStore,
	}
}

// SetLogger replaces the loader's logger.
func (l *Loader) SetLogger(logger logging.Logger) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	l.logger = logger
}

// SetMetricsRegistry replaces the registry loads are recorded in.
func (l *Loader) SetMetricsRegistry(r *metrics.Registry) {
	l.metricsRegistry = r
}

// SetS3Config configures the client built on the first S3 load.
func (l *Loader) SetS3Config(cfg S3Config) {
	l.s3Config = cfg
}

// SetS3Client replaces the S3 client.
func (l *Loader) SetS3Client(client S3API) {
	l.s3Client = client
}

// SetPGStore makes every postgres:// load read from store, ignoring the DSN.
func (l *Loader) SetPGStore(store *PGStore) {
	l.openPG = func(context.Context, string) (*PGStore, error) { return store, nil }
}

// Load parses location, fetches and decodes the snapshot and validates it.
func (l *Loader) Load(ctx context.Context, location string) (*graph.Graph, error) {
	src, err := ParseSource(location)
	if err != nil {
		return nil, err
	}

	timer := logging.StartTimer(l.logger, "snapshot loaded", logging.Source(src.String()))
	g, bytesRead, err := l.load(ctx, src)
	if err == nil && !l.SkipValidation {
		if verr := validation.ValidateGraph(g); verr != nil {
			err = fmt.Errorf("%w: %w", ErrInvalidSnapshot, verr)
		}
	}

	if err != nil {
		elapsed := timer.EndError(err)
		l.record(src.Kind, metrics.StatusError, elapsed, bytesRead)
		return nil, err
	}

	elapsed := timer.EndInfo(logging.Nodes(g.NodeCount()), logging.Edges(g.EdgeCount()))
	l.record(src.Kind, metrics.StatusSuccess, elapsed, bytesRead)
	return g, nil
}

func (l *Loader) load(ctx context.Context, src Source) (*graph.Graph, int, error) {
	switch src.Kind {
	case KindFile:
		data, err := readFile(src.Path)
		if err != nil {
			return nil, 0, fmt.Errorf("load %s: %w", src.Path, err)
		}
		g, err := Decode(data, compressed(src.Path))
		return g, len(data), err

	case KindS3:
		if l.s3Client == nil {
			client, err := NewS3Client(ctx, l.s3Config)
			if err != nil {
				return nil, 0, err
			}
			l.s3Client = client
		}
		data, err := readS3(ctx, l.s3Client, src.Bucket, src.Key)
		if err != nil {
			return nil, 0, err
		}
		g, err := Decode(data, compressed(src.Key))
		return g, len(data), err

	case KindPostgres:
		if l.openPG == nil {
			return nil, 0, errors.New("postgres loading is not configured")
		}
		store, err := l.openPG(ctx, src.DSN)
		if err != nil {
			return nil, 0, err
		}
		defer store.Close()
		g, err := store.LoadGraph(ctx)
		return g, 0, err

	default:
		return nil, 0, fmt.Errorf("%w: kind %q", ErrUnsupportedSource, src.Kind)
	}
}

func (l *Loader) record(kind Kind, status string, elapsed time.Duration, bytesRead int) {
	if l.metricsRegistry == nil {
		return
	}
	l.metricsRegistry.RecordSnapshotLoad(string(kind), status, elapsed, bytesRead)
}
