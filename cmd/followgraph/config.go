package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dd0wney/cluso-followgraph/pkg/algorithms"
	"github.com/dd0wney/cluso-followgraph/pkg/analysis"
	"github.com/dd0wney/cluso-followgraph/pkg/parallel"
	"github.com/dd0wney/cluso-followgraph/pkg/snapshot"
	"github.com/dd0wney/cluso-followgraph/pkg/validation"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatText = "text"

	defaultTimeout = 2 * time.Minute
)

// Config is the CLI configuration. It is read from an optional YAML file;
// flags given on the command line override it.
type Config struct {
	Source      string        `yaml:"source"`
	Seed        string        `yaml:"seed"`
	Format      string        `yaml:"format"`
	Out         string        `yaml:"out"`
	SnapshotOut string        `yaml:"snapshot_out"`
	MetricsAddr string        `yaml:"metrics_addr"`
	Timeout     time.Duration `yaml:"timeout"`
	LogLevel    string        `yaml:"log_level"`

	Analysis AnalysisConfig    `yaml:"analysis"`
	S3       snapshot.S3Config `yaml:"s3"`
}

// AnalysisConfig mirrors analysis.Options. Zero values select defaults.
type AnalysisConfig struct {
	TopBridges          int     `yaml:"top_bridges"`
	SampleSize          int     `yaml:"sample_size"`
	TopInfluence        int     `yaml:"top_influence"`
	DampingFactor       float64 `yaml:"damping_factor"`
	InfluenceIterations int     `yaml:"influence_iterations"`
	ClusterIterations   int     `yaml:"cluster_iterations"`
	ClusterSeed         *int64  `yaml:"cluster_seed"`
	GhostMaxOutDegree   int     `yaml:"ghost_max_out_degree"`
	InnerCircleOverlap  float64 `yaml:"inner_circle_overlap"`
	Parallel            bool    `yaml:"parallel"`
	Workers             int     `yaml:"workers"`
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &config, nil
}

// parseConfig builds the configuration from args: the -config file first,
// then every flag that was set explicitly, then the positional source.
func parseConfig(args []string, stderr io.Writer) (*Config, error) {
	fs := flag.NewFlagSet("followgraph", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: followgraph [flags] <snapshot>\n\n")
		fmt.Fprintf(stderr, "Snapshots: path[.sz], file://path, s3://bucket/key, postgres://dsn\n\nFlags:\n")
		fs.PrintDefaults()
	}

	var (
		configFile  = fs.String("config", "", "YAML configuration file")
		seed        = fs.String("seed", "", "Account to analyze (default: the snapshot's crawl seed)")
		top         = fs.Int("top", 0, "Length of the bridge and influence rankings")
		sample      = fs.Int("sample", 0, "Maximum BFS sources for betweenness")
		clusterSeed = fs.Int64("cluster-seed", 0, "Seed for reproducible cluster detection")
		par         = fs.Bool("parallel", false, "Run analysis stages concurrently")
		workers     = fs.Int("workers", 0, "Worker goroutines for parallel runs (0 = GOMAXPROCS)")
		format      = fs.String("format", FormatJSON, "Output format: json or text")
		out         = fs.String("out", "", "Write the report to this file instead of stdout")
		snapshotOut = fs.String("snapshot-out", "", "Save the loaded snapshot to this file (.sz compresses)")
		metricsAddr = fs.String("metrics-addr", "", "Serve Prometheus metrics on this address and wait for a signal after the run")
		timeout     = fs.Duration("timeout", defaultTimeout, "Snapshot load timeout")
	)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	config := &Config{}
	if *configFile != "" {
		loaded, err := loadConfig(*configFile)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			config.Seed = *seed
		case "top":
			config.Analysis.TopBridges = *top
			config.Analysis.TopInfluence = *top
		case "sample":
			config.Analysis.SampleSize = *sample
		case "cluster-seed":
			v := *clusterSeed
			config.Analysis.ClusterSeed = &v
		case "parallel":
			config.Analysis.Parallel = *par
		case "workers":
			config.Analysis.Workers = *workers
		case "format":
			config.Format = *format
		case "out":
			config.Out = *out
		case "snapshot-out":
			config.SnapshotOut = *snapshotOut
		case "metrics-addr":
			config.MetricsAddr = *metricsAddr
		case "timeout":
			config.Timeout = *timeout
		}
	})

	if fs.NArg() > 1 {
		return nil, fmt.Errorf("expected one snapshot location, got %d", fs.NArg())
	}
	if fs.NArg() == 1 {
		config.Source = fs.Arg(0)
	}

	config.Format = validation.DefaultOr(config.Format, FormatJSON)
	config.Timeout = validation.DefaultOrDuration(config.Timeout, defaultTimeout)
	config.LogLevel = validation.DefaultOr(config.LogLevel, os.Getenv("LOG_LEVEL"))

	return config, config.Validate()
}

// Validate checks the CLI-level settings. Analyzer parameters are checked
// by analysis.Options.
func (c *Config) Validate() error {
	return validation.NewConfigValidator("Config").
		Required("Source", c.Source).
		OneOf("Format", c.Format, []string{FormatJSON, FormatText}).
		MinDuration("Timeout", c.Timeout, time.Second).
		RangeInt("Analysis.Workers", c.Analysis.Workers, 0, parallel.MaxWorkers).
		When(c.Analysis.DampingFactor != 0, func(cv *validation.ConfigValidator) {
			cv.RangeFloat("Analysis.DampingFactor", c.Analysis.DampingFactor, 0, 1)
		}).
		Validate()
}

// Options converts the configuration to analyzer options.
func (c *Config) Options() analysis.Options {
	opts := analysis.DefaultOptions()
	a := c.Analysis

	opts.Bridges.TopN = validation.DefaultOrInt(a.TopBridges, algorithms.DefaultBridgeTopN)
	opts.Bridges.SampleSize = validation.DefaultOrInt(a.SampleSize, algorithms.DefaultBridgeSampleSize)
	opts.Influence.TopN = validation.DefaultOrInt(a.TopInfluence, algorithms.DefaultInfluenceTopN)
	opts.Influence.DampingFactor = validation.DefaultOr(a.DampingFactor, algorithms.DefaultDampingFactor)
	opts.Influence.Iterations = validation.DefaultOrInt(a.InfluenceIterations, algorithms.DefaultInfluenceIterations)
	opts.Clusters.MaxIterations = validation.DefaultOrInt(a.ClusterIterations, algorithms.DefaultClusterIterations)
	opts.Ghosts.MaxOutDegree = validation.DefaultOrInt(a.GhostMaxOutDegree, algorithms.DefaultGhostMaxOutDegree)
	opts.Orbits.InnerCircleOverlap = validation.DefaultOr(a.InnerCircleOverlap, algorithms.DefaultInnerCircleOverlap)
	opts.ClusterSeed = a.ClusterSeed
	opts.Parallel = a.Parallel
	opts.Workers = a.Workers
	if a.Parallel {
		// Sampled BFS passes share the same worker budget
		opts.Bridges.Workers = validation.ClampInt(a.Workers, 0, parallel.MaxWorkers)
	}
	return opts
}
