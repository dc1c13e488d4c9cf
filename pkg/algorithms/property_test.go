package algorithms

import (
	"fmt"
	"testing"

	"github.com/dd0wney/cluso-followgraph/pkg/graph"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const propertyMaxNodes = 16

// randomGraph decodes a node count and a list of ints into a follow graph.
// Each int encodes one (source, target) pair; a few targets fall outside
// the node set to exercise dangling endpoints.
func randomGraph(n int, pairs []int) *graph.Graph {
	g := graph.New("u0")
	for i := 0; i < n; i++ {
		g.AddNode(graph.NodeRecord{Username: fmt.Sprintf("u%d", i)})
	}
	for _, p := range pairs {
		from := (p / (propertyMaxNodes + 2)) % n
		to := p % (propertyMaxNodes + 2)
		if to >= n && to < propertyMaxNodes {
			to %= n
		}
		g.Follow(fmt.Sprintf("u%d", from), fmt.Sprintf("u%d", to))
	}
	return g
}

func graphGens() []gopter.Gen {
	return []gopter.Gen{
		gen.IntRange(1, propertyMaxNodes),
		gen.SliceOf(gen.IntRange(0, propertyMaxNodes*(propertyMaxNodes+2)-1)),
	}
}

// TestAnalyzerInvariants uses property-based testing to verify invariants
// that must hold for any follow graph
func TestAnalyzerInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("every node has adjacency entries", prop.ForAll(
		func(n int, pairs []int) bool {
			g := randomGraph(n, pairs)
			idx := BuildAdjacencyIndex(g)
			for _, key := range g.Keys() {
				id, ok := idx.ID(key)
				if !ok || !idx.IsGraphNode(id) {
					return false
				}
			}
			return idx.NodeCount() == g.NodeCount()
		},
		graphGens()...,
	))

	properties.Property("mutual pairs are reciprocal and unique", prop.ForAll(
		func(n int, pairs []int) bool {
			idx := BuildAdjacencyIndex(randomGraph(n, pairs))
			seen := make(map[MutualPair]bool)
			for _, p := range idx.MutualConnections() {
				if !(p.A < p.B) || seen[p] || seen[MutualPair{A: p.B, B: p.A}] {
					return false
				}
				if !idx.HasEdge(p.A, p.B) || !idx.HasEdge(p.B, p.A) {
					return false
				}
				seen[p] = true
			}
			return true
		},
		graphGens()...,
	))

	properties.Property("orbits partition all other nodes", prop.ForAll(
		func(n int, pairs []int) bool {
			g := randomGraph(n, pairs)
			result, err := ClassifyOrbits(BuildAdjacencyIndex(g), g, "u0", DefaultOrbitOptions())
			if err != nil {
				return false
			}
			seen := make(map[string]bool)
			buckets := [][]OrbitMember{
				result.Orbits.InnerCircle, result.Orbits.Active,
				result.Orbits.OuterRing, result.Orbits.Periphery,
			}
			for _, bucket := range buckets {
				for _, m := range bucket {
					if seen[m.Username] || m.Username == "u0" {
						return false
					}
					seen[m.Username] = true
				}
			}
			return len(seen) == n-1 && result.Summary.Total == n-1
		},
		graphGens()...,
	))

	properties.Property("clusters are disjoint, sorted and never singletons", prop.ForAll(
		func(n int, pairs []int, seed int64) bool {
			g := randomGraph(n, pairs)
			result, err := DetectClusters(BuildAdjacencyIndex(g), g, ClusterOptions{Rand: NewSeededRand(seed)})
			if err != nil {
				return false
			}
			seen := make(map[string]bool)
			for i, c := range result.Clusters {
				if c.ID != i || c.Size < 2 || c.Size != len(c.Members) {
					return false
				}
				if i > 0 && c.Size > result.Clusters[i-1].Size {
					return false
				}
				for _, m := range c.Members {
					if seen[m] || !g.HasNode(m) {
						return false
					}
					seen[m] = true
				}
			}
			return true
		},
		gen.IntRange(1, propertyMaxNodes),
		gen.SliceOf(gen.IntRange(0, propertyMaxNodes*(propertyMaxNodes+2)-1)),
		gen.Int64(),
	))

	properties.Property("influence peaks at exactly 100", prop.ForAll(
		func(n int, pairs []int) bool {
			scores, err := InfluenceScores(BuildAdjacencyIndex(randomGraph(n, pairs)), DefaultInfluenceOptions())
			if err != nil || len(scores) != n {
				return false
			}
			maxScore := 0.0
			for _, s := range scores {
				if s < 0 || s > 100 {
					return false
				}
				maxScore = max(maxScore, s)
			}
			return maxScore == 100
		},
		graphGens()...,
	))

	properties.Property("isolated nodes have zero betweenness", prop.ForAll(
		func(n int, pairs []int) bool {
			g := randomGraph(n, pairs)
			g.AddNode(graph.NodeRecord{Username: "isolated"})
			result, err := BridgeAccounts(BuildAdjacencyIndex(g), g, DefaultBridgeOptions())
			if err != nil {
				return false
			}
			return result.Scores["isolated"] == 0
		},
		graphGens()...,
	))

	properties.TestingRun(t)
}
