package analysis

import (
	"github.com/dd0wney/cluso-followgraph/pkg/algorithms"
	"github.com/dd0wney/cluso-followgraph/pkg/parallel"
	"github.com/dd0wney/cluso-followgraph/pkg/validation"
)

// Options configures one Analyzer. Start from DefaultOptions; zero counts
// (top-N, sample size, iterations, ghost ceiling) and a zero damping factor
// fall back to each analyzer's default, so Options{} runs like
// DefaultOptions. The inner-circle overlap is a ratio and zero is honored.
type Options struct {
	Bridges   algorithms.BridgeOptions
	Clusters  algorithms.ClusterOptions
	Influence algorithms.InfluenceOptions
	Ghosts    algorithms.GhostOptions
	Orbits    algorithms.OrbitOptions

	// ClusterSeed, when set, seeds a fresh PRNG for label propagation on
	// every run, so repeated runs produce the same clusters. It takes
	// precedence over Clusters.Rand.
	ClusterSeed *int64

	// Parallel runs the analysis stages concurrently against the shared
	// adjacency index.
	Parallel bool
	// Workers bounds concurrent stages when Parallel is set. Zero uses
	// GOMAXPROCS.
	Workers int
}

// DefaultOptions returns the default configuration: sequential stages,
// default parameters for every analyzer.
func DefaultOptions() Options {
	return Options{
		Bridges:   algorithms.DefaultBridgeOptions(),
		Clusters:  algorithms.DefaultClusterOptions(),
		Influence: algorithms.DefaultInfluenceOptions(),
		Ghosts:    algorithms.DefaultGhostOptions(),
		Orbits:    algorithms.DefaultOrbitOptions(),
	}
}

// Validate checks every precondition and reports all violations at once.
// Analyzer preconditions wrap algorithms.ErrInvalidOptions.
func (o Options) Validate() error {
	return validation.NewConfigValidator("analysis.Options").
		Custom("Bridges", o.Bridges.Validate).
		Custom("Clusters", o.Clusters.Validate).
		Custom("Influence", o.Influence.Validate).
		Custom("Ghosts", o.Ghosts.Validate).
		Custom("Orbits", o.Orbits.Validate).
		NonNegative("Workers", o.Workers).
		MaxInt("Workers", o.Workers, parallel.MaxWorkers).
		Validate()
}

// clusterOptions returns the cluster options for one run.
func (o Options) clusterOptions() algorithms.ClusterOptions {
	opts := o.Clusters
	if o.ClusterSeed != nil {
		opts.Rand = algorithms.NewSeededRand(*o.ClusterSeed)
	}
	return opts
}

// stageWorkers is the worker count used to run the stages themselves.
func (o Options) stageWorkers() int {
	if !o.Parallel {
		return 1
	}
	return o.Workers
}
