package algorithms

import "github.com/dd0wney/cluso-followgraph/pkg/graph"

// MutualPair is an unordered pair of accounts that follow each other.
// A is always lexically smaller than B.
type MutualPair struct {
	A string `json:"a"`
	B string `json:"b"`
}

// FindMutualConnections returns every reciprocal follow pair in g.
func FindMutualConnections(g *graph.Graph) []MutualPair {
	return BuildAdjacencyIndex(g).MutualConnections()
}

// MutualConnections returns every reciprocal follow pair. Each pair is
// emitted once, from the side whose username sorts first.
func (idx *AdjacencyIndex) MutualConnections() []MutualPair {
	pairs := make([]MutualPair, 0)
	for from := range idx.names {
		a := idx.names[from]
		for _, to := range idx.outgoing[from].order {
			b := idx.names[to]
			if a < b && idx.outgoing[to].has(from) {
				pairs = append(pairs, MutualPair{A: a, B: b})
			}
		}
	}
	return pairs
}

// MutualConnectionsOf returns the accounts that share a reciprocal follow
// with username. The username is canonicalised first.
func MutualConnectionsOf(g *graph.Graph, username string) []string {
	return BuildAdjacencyIndex(g).MutualsOf(username)
}

// MutualsOf returns the accounts that share a reciprocal follow with
// username, in the order username follows them.
func (idx *AdjacencyIndex) MutualsOf(username string) []string {
	mutuals := make([]string, 0)
	id, ok := idx.ids[graph.Canonical(username)]
	if !ok {
		return mutuals
	}
	for _, other := range idx.outgoing[id].order {
		if other != id && idx.outgoing[other].has(id) {
			mutuals = append(mutuals, idx.names[other])
		}
	}
	return mutuals
}
