package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "followgraph.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestParseConfig_Defaults(t *testing.T) {
	config, err := parseConfig([]string{"graph.json"}, io.Discard)
	if err != nil {
		t.Fatalf("parseConfig failed: %v", err)
	}

	if config.Source != "graph.json" {
		t.Errorf("Source = %q, want graph.json", config.Source)
	}
	if config.Format != FormatJSON {
		t.Errorf("Format = %q, want json", config.Format)
	}
	if config.Timeout != defaultTimeout {
		t.Errorf("Timeout = %v, want %v", config.Timeout, defaultTimeout)
	}

	opts := config.Options()
	if opts.Bridges.TopN != 10 || opts.Bridges.SampleSize != 50 || opts.Influence.TopN != 20 {
		t.Errorf("Unexpected default options %+v", opts)
	}
	if opts.ClusterSeed != nil || opts.Parallel {
		t.Errorf("Expected no cluster seed and sequential stages, got %+v", opts)
	}
}

func TestParseConfig_YAMLWithFlagOverrides(t *testing.T) {
	path := writeConfigFile(t, `
source: s3://crawls/alice.json.sz
seed: alice
format: text
timeout: 45s
analysis:
  top_bridges: 5
  sample_size: 200
  cluster_seed: 11
  damping_factor: 0.9
  parallel: true
  workers: 3
s3:
  region: eu-west-1
  use_path_style: true
`)

	config, err := parseConfig([]string{"-config", path, "-seed", "bob", "-top", "7", "-format", "json"}, io.Discard)
	if err != nil {
		t.Fatalf("parseConfig failed: %v", err)
	}

	if config.Source != "s3://crawls/alice.json.sz" {
		t.Errorf("Source = %q", config.Source)
	}
	if config.Seed != "bob" {
		t.Errorf("Flag should override seed, got %q", config.Seed)
	}
	if config.Format != FormatJSON {
		t.Errorf("Flag should override format, got %q", config.Format)
	}
	if config.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", config.Timeout)
	}
	if config.S3.Region != "eu-west-1" || !config.S3.UsePathStyle {
		t.Errorf("Unexpected S3 config %+v", config.S3)
	}

	opts := config.Options()
	if opts.Bridges.TopN != 7 || opts.Influence.TopN != 7 {
		t.Errorf("-top should set both rankings, got bridges %d influence %d", opts.Bridges.TopN, opts.Influence.TopN)
	}
	if opts.Bridges.SampleSize != 200 {
		t.Errorf("SampleSize = %d, want 200", opts.Bridges.SampleSize)
	}
	if opts.ClusterSeed == nil || *opts.ClusterSeed != 11 {
		t.Errorf("Expected cluster seed 11, got %v", opts.ClusterSeed)
	}
	if opts.Influence.DampingFactor != 0.9 {
		t.Errorf("DampingFactor = %v, want 0.9", opts.Influence.DampingFactor)
	}
	if !opts.Parallel || opts.Workers != 3 || opts.Bridges.Workers != 3 {
		t.Errorf("Unexpected parallelism %+v", opts)
	}
}

func TestParseConfig_ClusterSeedFlag(t *testing.T) {
	config, err := parseConfig([]string{"-cluster-seed", "0", "graph.json"}, io.Discard)
	if err != nil {
		t.Fatalf("parseConfig failed: %v", err)
	}
	// An explicit zero is still a seed
	if config.Analysis.ClusterSeed == nil || *config.Analysis.ClusterSeed != 0 {
		t.Errorf("Expected explicit cluster seed 0, got %v", config.Analysis.ClusterSeed)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing source", nil, "Config.Source"},
		{"bad format", []string{"-format", "xml", "g.json"}, "Config.Format"},
		{"short timeout", []string{"-timeout", "10ms", "g.json"}, "Config.Timeout"},
		{"negative workers", []string{"-workers", "-2", "g.json"}, "Analysis.Workers"},
		{"two sources", []string{"a.json", "b.json"}, "one snapshot location"},
		{"missing config file", []string{"-config", "/nonexistent/followgraph.yaml", "g.json"}, "no such file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseConfig(tt.args, io.Discard)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseConfig_BadDampingInFile(t *testing.T) {
	path := writeConfigFile(t, "source: g.json\nanalysis:\n  damping_factor: 1.5\n")

	_, err := parseConfig([]string{"-config", path}, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "DampingFactor") {
		t.Errorf("Expected damping factor error, got %v", err)
	}
}
