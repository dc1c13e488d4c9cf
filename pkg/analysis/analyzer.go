package analysis

import (
	"fmt"
	"maps"
	"time"

	"github.com/dd0wney/cluso-followgraph/pkg/algorithms"
	"github.com/dd0wney/cluso-followgraph/pkg/graph"
	"github.com/dd0wney/cluso-followgraph/pkg/logging"
	"github.com/dd0wney/cluso-followgraph/pkg/metrics"
	"github.com/dd0wney/cluso-followgraph/pkg/parallel"
	"github.com/google/uuid"
)

// Stage names, as used in logs, metrics and AnalysisError.
const (
	StageMutuals   = "mutuals"
	StageBridges   = "bridges"
	StageClusters  = "clusters"
	StageInfluence = "influence"
	StageGhosts    = "ghosts"
	StageOrbits    = "orbits"
)

// Analyzer runs every follow-graph analysis against one graph and merges
// the results into a Report. An Analyzer holds no per-run state and may be
// reused; concurrent calls to AnalyzeGraph are safe as long as Options
// does not carry a shared Clusters.Rand.
type Analyzer struct {
	opts            Options
	logger          logging.Logger
	metricsRegistry *metrics.Registry
	now             func() time.Time
}

// NewAnalyzer creates an analyzer with the given options. Invalid options
// are rejected here and again on every run.
func NewAnalyzer(opts Options) (*Analyzer, error) {
	if err := opts.Validate(); err != nil {
		return nil, &AnalysisError{Op: "NewAnalyzer", Stage: "options", Cause: err}
	}
	return &Analyzer{
		opts:            opts,
		logger:          logging.NewDefaultLogger().With(logging.Component("analysis")),
		metricsRegistry: metrics.DefaultRegistry(),
		now:             time.Now,
	}, nil
}

// SetLogger replaces the analyzer's logger.
func (a *Analyzer) SetLogger(logger logging.Logger) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	a.logger = logger
}

// SetMetricsRegistry replaces the registry runs are recorded in.
func (a *Analyzer) SetMetricsRegistry(r *metrics.Registry) {
	a.metricsRegistry = r
}

// Options returns the analyzer's configuration.
func (a *Analyzer) Options() Options {
	return a.opts
}

// stageResults holds the output slot of every stage. Each stage writes
// only its own fields.
type stageResults struct {
	mutuals   []algorithms.MutualPair
	bridges   *algorithms.BridgeResult
	clusters  *algorithms.ClusterResult
	influence []algorithms.RankedNode
	ghosts    []algorithms.GhostFollower
	orbits    *algorithms.OrbitResult
}

type stage struct {
	name string
	run  func() error
}

// AnalyzeGraph runs all analyses against g for seed, or for g.Seed when
// seed is empty. The graph must not be mutated while this runs.
//
// A structurally valid graph never fails: dangling edges, an empty graph
// and an unknown seed all degrade to empty results. Errors are returned
// only for nil graphs and invalid options, and wrap AnalysisError.
func (a *Analyzer) AnalyzeGraph(g *graph.Graph, seed string) (*Report, error) {
	start := a.now()
	runID := uuid.New().String()

	if g == nil {
		return nil, a.fail(start, &AnalysisError{Op: "AnalyzeGraph", Cause: ErrNilGraph})
	}
	if err := a.opts.Validate(); err != nil {
		return nil, a.fail(start, &AnalysisError{Op: "AnalyzeGraph", Stage: "options", Cause: err})
	}

	seed = graph.Canonical(seed)
	if seed == "" {
		seed = graph.Canonical(g.Seed)
	}

	log := a.logger.With(logging.RunID(runID), logging.Seed(seed))
	log.Debug("analysis started", logging.Nodes(g.NodeCount()), logging.Edges(g.EdgeCount()))
	if !g.HasNode(seed) {
		log.Warn("seed not in graph; ghost and orbit results will be empty")
	}

	idx := algorithms.BuildAdjacencyIndex(g)
	var res stageResults
	stages := a.stages(idx, g, seed, &res)

	timings := make([]StageTiming, len(stages))
	errs := make([]error, len(stages))
	poolErr := parallel.ForEach(a.opts.stageWorkers(), len(stages), func(i int) {
		s := stages[i]
		timer := logging.StartTimer(log, "stage complete", logging.Stage(s.name))
		errs[i] = runStage(s)
		elapsed := timer.End()
		timings[i] = StageTiming{Stage: s.name, Duration: elapsed}
		if a.metricsRegistry != nil {
			a.metricsRegistry.RecordStage(s.name, elapsed)
		}
	})
	if poolErr != nil {
		return nil, a.fail(start, &AnalysisError{Op: "AnalyzeGraph", Cause: poolErr})
	}
	for i, err := range errs {
		if err != nil {
			log.Error("stage failed", logging.Stage(stages[i].name), logging.Error(err))
			return nil, a.fail(start, &AnalysisError{Op: "AnalyzeGraph", Stage: stages[i].name, Cause: err})
		}
	}

	report := &Report{
		RunID:     runID,
		Seed:      seed,
		Timestamp: start.UTC(),
		Counts: Counts{
			Nodes:             g.NodeCount(),
			Edges:             g.EdgeCount(),
			FollowEdges:       g.FollowEdgeCount(),
			MutualConnections: len(res.mutuals),
			Clusters:          len(res.clusters.Clusters),
			BridgeAccounts:    len(res.bridges.Top),
			GhostFollowers:    len(res.ghosts),
		},
		MutualConnections:  res.mutuals,
		BridgeAccounts:     res.bridges.Top,
		Clusters:           res.clusters.Clusters,
		InfluenceRanking:   res.influence,
		GhostFollowers:     res.ghosts,
		Orbits:             res.orbits.Summary,
		Metadata:           maps.Clone(g.Metadata),
		Stages:             timings,
		BridgesApproximate: res.bridges.Approximate,
		SeedInGraph:        g.HasNode(seed),
	}

	elapsed := a.now().Sub(start)
	if a.metricsRegistry != nil {
		a.metricsRegistry.RecordAnalysis(metrics.StatusSuccess, elapsed)
		a.metricsRegistry.UpdateGraphSize(report.Counts.Nodes, report.Counts.Edges)
		a.metricsRegistry.UpdateRunResults(report.Counts.Clusters, len(res.bridges.Sources), report.Counts.GhostFollowers)
	}
	log.Info("analysis complete",
		logging.Nodes(report.Counts.Nodes),
		logging.Int("clusters", report.Counts.Clusters),
		logging.Int("mutuals", report.Counts.MutualConnections),
		logging.Latency(elapsed))

	return report, nil
}

// stages lists the independent analyses. They share idx read-only.
func (a *Analyzer) stages(idx *algorithms.AdjacencyIndex, g *graph.Graph, seed string, res *stageResults) []stage {
	return []stage{
		{StageMutuals, func() error {
			res.mutuals = idx.MutualConnections()
			return nil
		}},
		{StageBridges, func() (err error) {
			res.bridges, err = algorithms.BridgeAccounts(idx, g, a.opts.Bridges)
			return err
		}},
		{StageClusters, func() (err error) {
			res.clusters, err = algorithms.DetectClusters(idx, g, a.opts.clusterOptions())
			return err
		}},
		{StageInfluence, func() (err error) {
			res.influence, err = algorithms.InfluenceRanking(idx, g, a.opts.Influence)
			return err
		}},
		{StageGhosts, func() (err error) {
			res.ghosts, err = algorithms.GhostFollowers(idx, g, seed, a.opts.Ghosts)
			return err
		}},
		{StageOrbits, func() (err error) {
			res.orbits, err = algorithms.ClassifyOrbits(idx, g, seed, a.opts.Orbits)
			return err
		}},
	}
}

// runStage runs one stage, converting a panic into ErrStagePanicked.
func runStage(s stage) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrStagePanicked, r)
		}
	}()
	return s.run()
}

func (a *Analyzer) fail(start time.Time, err *AnalysisError) error {
	if a.metricsRegistry != nil {
		a.metricsRegistry.RecordAnalysis(metrics.StatusError, a.now().Sub(start))
	}
	a.logger.Error("analysis failed", logging.Stage(err.Stage), logging.Error(err.Cause))
	return err
}
