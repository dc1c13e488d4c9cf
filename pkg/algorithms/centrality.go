package algorithms

import (
	"github.com/dd0wney/cluso-followgraph/pkg/graph"
	"github.com/dd0wney/cluso-followgraph/pkg/parallel"
	"github.com/dd0wney/cluso-followgraph/pkg/pools"
)

const (
	// DefaultBridgeSampleSize caps the number of BFS sources used for
	// betweenness.
	DefaultBridgeSampleSize = 50
	// DefaultBridgeTopN is the number of bridge accounts returned.
	DefaultBridgeTopN = 10
)

// BridgeOptions configures BridgeAccounts.
type BridgeOptions struct {
	// TopN is the number of accounts returned. Zero selects
	// DefaultBridgeTopN.
	TopN int
	// SampleSize caps the number of BFS sources. The first SampleSize graph
	// nodes in insertion order are used; all of them when the graph is no
	// larger than the sample. Zero selects DefaultBridgeSampleSize.
	SampleSize int
	// Sources, when non-empty, replaces the default sample with an explicit
	// list of usernames. Unknown usernames are skipped.
	Sources []string
	// Workers bounds the number of concurrent BFS passes. 1 runs them
	// sequentially; 0 uses GOMAXPROCS.
	Workers int
}

// DefaultBridgeOptions returns the default bridge detection configuration.
func DefaultBridgeOptions() BridgeOptions {
	return BridgeOptions{
		TopN:       DefaultBridgeTopN,
		SampleSize: DefaultBridgeSampleSize,
		Workers:    1,
	}
}

// Validate checks the option preconditions.
func (o BridgeOptions) Validate() error {
	if o.TopN < 0 {
		return invalidOptions("bridge top-N %d is negative", o.TopN)
	}
	if o.SampleSize < 0 {
		return invalidOptions("bridge sample size %d is negative", o.SampleSize)
	}
	if o.Workers < 0 {
		return invalidOptions("bridge workers %d is negative", o.Workers)
	}
	return nil
}

// BridgeResult holds sampled betweenness scores.
type BridgeResult struct {
	// Scores maps every graph node to its raw betweenness sum, rounded to
	// two decimals.
	Scores map[string]float64 `json:"scores"`
	// Top lists the highest-scoring accounts, descending.
	Top []RankedNode `json:"top"`
	// Sources lists the BFS sources actually used.
	Sources []string `json:"sources"`
	// Approximate is true when fewer sources than graph nodes were used.
	Approximate bool `json:"approximate"`
}

// BridgeAccounts computes betweenness centrality over the undirected
// projection of the follow graph with Brandes' algorithm, run only from a
// sample of sources. Scores are raw dependency sums, not normalised by the
// sample or graph size, so on graphs larger than the sample they are
// approximate and depend on node insertion order.
func BridgeAccounts(idx *AdjacencyIndex, g *graph.Graph, opts BridgeOptions) (*BridgeResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	sources := bridgeSources(idx, opts)
	neighbors := idx.undirectedNeighbors()
	n := idx.Len()

	// Each pass owns its delta slice; they are summed in source order so
	// the result does not depend on scheduling.
	deltas := make([][]float64, len(sources))
	err := parallel.ForEach(opts.Workers, len(sources), func(i int) {
		deltas[i] = brandesPass(neighbors, n, sources[i])
	})
	if err != nil {
		return nil, err
	}

	betweenness := make([]float64, n)
	for _, delta := range deltas {
		for id, d := range delta {
			betweenness[id] += d
		}
	}
	for id := range betweenness {
		betweenness[id] = round2(betweenness[id])
	}

	result := &BridgeResult{
		Scores:      make(map[string]float64, idx.NodeCount()),
		Top:         topNodes(idx, g, betweenness, opts.TopN),
		Sources:     make([]string, len(sources)),
		Approximate: len(sources) < idx.NodeCount(),
	}
	for id := 0; id < idx.NodeCount(); id++ {
		result.Scores[idx.Username(id)] = betweenness[id]
	}
	for i, s := range sources {
		result.Sources[i] = idx.Username(s)
	}
	return result, nil
}

// withDefaults fills zero-valued counts.
func (o BridgeOptions) withDefaults() BridgeOptions {
	if o.TopN == 0 {
		o.TopN = DefaultBridgeTopN
	}
	if o.SampleSize == 0 {
		o.SampleSize = DefaultBridgeSampleSize
	}
	return o
}

func bridgeSources(idx *AdjacencyIndex, opts BridgeOptions) []int {
	if len(opts.Sources) > 0 {
		sources := make([]int, 0, len(opts.Sources))
		seen := make(map[int]bool, len(opts.Sources))
		for _, name := range opts.Sources {
			id, ok := idx.ID(graph.Canonical(name))
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			sources = append(sources, id)
		}
		return sources
	}

	limit := min(opts.SampleSize, idx.NodeCount())
	sources := make([]int, limit)
	for i := range sources {
		sources[i] = i
	}
	return sources
}

// brandesPass runs one single-source BFS and the reverse dependency
// accumulation. It returns delta[w] for every w != source (0 for source).
func brandesPass(neighbors [][]int, n, source int) []float64 {
	stack := pools.GetInts(n)
	queue := pools.GetInts(n)
	distance := pools.GetIntsFilled(n, -1)
	sigma := pools.GetFloat64s(n)
	defer func() {
		pools.PutInts(stack)
		pools.PutInts(queue)
		pools.PutInts(distance)
		pools.PutFloat64s(sigma)
	}()
	predecessors := make([][]int, n)

	sigma[source] = 1
	distance[source] = 0

	queue = append(queue, source)
	for head := 0; head < len(queue); head++ {
		v := queue[head]
		stack = append(stack, v)

		for _, w := range neighbors[v] {
			if distance[w] < 0 {
				queue = append(queue, w)
				distance[w] = distance[v] + 1
			}
			if distance[w] == distance[v]+1 {
				sigma[w] += sigma[v]
				predecessors[w] = append(predecessors[w], v)
			}
		}
	}

	// delta is returned to the caller, so it is not pooled
	delta := make([]float64, n)
	for i := len(stack) - 1; i >= 0; i-- {
		w := stack[i]
		for _, v := range predecessors[w] {
			delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
		}
	}
	delta[source] = 0
	return delta
}
