package algorithms

import "github.com/dd0wney/cluso-followgraph/pkg/graph"

const (
	// DefaultDampingFactor is the share of score that follows edges.
	DefaultDampingFactor = 0.85
	// DefaultInfluenceIterations is the fixed number of propagation passes.
	DefaultInfluenceIterations = 20
	// DefaultInfluenceTopN is the ranking length used by the orchestrator.
	DefaultInfluenceTopN = 20
)

// InfluenceOptions configures influence scoring. Zero values select the
// defaults.
type InfluenceOptions struct {
	// DampingFactor is the share of score that follows edges, in [0, 1].
	// Zero selects DefaultDampingFactor, so an undamped uniform run cannot
	// be requested.
	DampingFactor float64
	// Iterations is the fixed pass count; there is no convergence check.
	// Zero selects DefaultInfluenceIterations.
	Iterations int
	// TopN is the ranking length for InfluenceRanking. Zero selects
	// DefaultInfluenceTopN.
	TopN int
}

// DefaultInfluenceOptions returns the default influence configuration.
func DefaultInfluenceOptions() InfluenceOptions {
	return InfluenceOptions{
		DampingFactor: DefaultDampingFactor,
		Iterations:    DefaultInfluenceIterations,
		TopN:          DefaultInfluenceTopN,
	}
}

// Validate checks the option preconditions.
func (o InfluenceOptions) Validate() error {
	if o.DampingFactor < 0 || o.DampingFactor > 1 {
		return invalidOptions("damping factor %v is outside [0, 1]", o.DampingFactor)
	}
	if o.Iterations < 0 {
		return invalidOptions("influence iterations %d is negative", o.Iterations)
	}
	if o.TopN < 0 {
		return invalidOptions("influence top-N %d is negative", o.TopN)
	}
	return nil
}

// withDefaults fills zero-valued fields.
func (o InfluenceOptions) withDefaults() InfluenceOptions {
	if o.DampingFactor == 0 {
		o.DampingFactor = DefaultDampingFactor
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultInfluenceIterations
	}
	if o.TopN == 0 {
		o.TopN = DefaultInfluenceTopN
	}
	return o
}

// InfluenceScores runs damped rank propagation over the directed follow
// graph and returns a 0–100 score per graph node.
//
// Every pass is computed from the previous pass's snapshot:
//
//	score'(w) = (1-d)/N + d * Σ_{v→w} score(v)/outDegree(v)
//
// Accounts that follow nobody pass their score to no one; that mass is
// not redistributed. After the fixed number of passes the scores are
// divided by the maximum and scaled to 100, rounded to two decimals.
func InfluenceScores(idx *AdjacencyIndex, opts InfluenceOptions) (map[string]float64, error) {
	scores, err := influenceVector(idx, opts)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(scores))
	for id, s := range scores {
		out[idx.Username(id)] = s
	}
	return out, nil
}

// InfluenceRanking returns the TopN most influential accounts, descending,
// each with its NodeRecord.
func InfluenceRanking(idx *AdjacencyIndex, g *graph.Graph, opts InfluenceOptions) ([]RankedNode, error) {
	scores, err := influenceVector(idx, opts)
	if err != nil {
		return nil, err
	}
	return topNodes(idx, g, scores, opts.withDefaults().TopN), nil
}

// influenceVector returns normalised scores indexed by graph node ID.
func influenceVector(idx *AdjacencyIndex, opts InfluenceOptions) ([]float64, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	n := idx.NodeCount()
	if n == 0 {
		return []float64{}, nil
	}

	d := opts.DampingFactor
	base := (1.0 - d) / float64(n)

	scores := make([]float64, n)
	newScores := make([]float64, n)
	for id := range scores {
		scores[id] = 1.0 / float64(n)
	}

	for iter := 0; iter < opts.Iterations; iter++ {
		for w := 0; w < n; w++ {
			incoming := 0.0
			for _, v := range idx.incoming[w].order {
				// Dangling sources have no score of their own.
				if !idx.IsGraphNode(v) {
					continue
				}
				incoming += scores[v] / float64(idx.outgoing[v].len())
			}
			newScores[w] = base + d*incoming
		}
		scores, newScores = newScores, scores
	}

	maxScore := 0.0
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	for id, s := range scores {
		if maxScore > 0 {
			scores[id] = round2(s / maxScore * 100)
		} else {
			scores[id] = 0
		}
	}
	return scores, nil
}
