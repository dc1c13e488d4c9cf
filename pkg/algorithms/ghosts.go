package algorithms

import (
	"sort"

	"github.com/dd0wney/cluso-followgraph/pkg/graph"
)

// DefaultGhostMaxOutDegree is the highest out-degree a ghost may have.
const DefaultGhostMaxOutDegree = 2

// GhostOptions configures GhostFollowers.
type GhostOptions struct {
	// MaxOutDegree is the inclusive out-degree ceiling for a candidate.
	// Zero selects DefaultGhostMaxOutDegree; a follower always has an
	// out-degree of at least one.
	MaxOutDegree int
}

// DefaultGhostOptions returns the default ghost detection configuration.
func DefaultGhostOptions() GhostOptions {
	return GhostOptions{MaxOutDegree: DefaultGhostMaxOutDegree}
}

// Validate checks the option preconditions.
func (o GhostOptions) Validate() error {
	if o.MaxOutDegree < 0 {
		return invalidOptions("ghost max out-degree %d is negative", o.MaxOutDegree)
	}
	return nil
}

// GhostFollower is a follower of the seed with little graph activity.
type GhostFollower struct {
	Username     string            `json:"username"`
	MutualFollow bool              `json:"mutualFollow"`
	EdgesInGraph int               `json:"edgesInGraph"`
	Node         *graph.NodeRecord `json:"node"`
}

// GhostFollowers returns followers of seed that the seed does not follow
// back and that follow at most MaxOutDegree accounts in this graph,
// sparsest first. Activity is judged only by out-degree inside the scraped
// subgraph. An unknown seed has no followers and yields no candidates.
func GhostFollowers(idx *AdjacencyIndex, g *graph.Graph, seed string, opts GhostOptions) ([]GhostFollower, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	maxOutDegree := opts.MaxOutDegree
	if maxOutDegree == 0 {
		maxOutDegree = DefaultGhostMaxOutDegree
	}

	ghosts := make([]GhostFollower, 0)
	seedID, ok := idx.ID(graph.Canonical(seed))
	if !ok {
		return ghosts, nil
	}

	following := idx.outgoing[seedID]
	for _, follower := range idx.incoming[seedID].order {
		if following.has(follower) {
			continue
		}
		degree := idx.outgoing[follower].len()
		if degree > maxOutDegree {
			continue
		}
		name := idx.Username(follower)
		ghosts = append(ghosts, GhostFollower{
			Username:     name,
			MutualFollow: false,
			EdgesInGraph: degree,
			Node:         g.Node(name),
		})
	}

	sort.SliceStable(ghosts, func(i, j int) bool {
		return ghosts[i].EdgesInGraph < ghosts[j].EdgesInGraph
	})
	return ghosts, nil
}
