package algorithms

import "github.com/dd0wney/cluso-followgraph/pkg/graph"

// nodeSet is an insertion-ordered set of interned node IDs. Order matters:
// neighbor scans in BFS and label counting follow it.
type nodeSet struct {
	members map[int]struct{}
	order   []int
}

func newNodeSet() *nodeSet {
	return &nodeSet{members: make(map[int]struct{})}
}

func (s *nodeSet) add(id int) {
	if _, ok := s.members[id]; ok {
		return
	}
	s.members[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *nodeSet) has(id int) bool {
	_, ok := s.members[id]
	return ok
}

func (s *nodeSet) len() int {
	return len(s.order)
}

// AdjacencyIndex holds outgoing and incoming follow sets for one graph.
// Usernames are interned to dense IDs: graph nodes first, in insertion
// order, then dangling edge endpoints in the order edges mention them.
//
// The index is read-only once built and may be shared across goroutines.
type AdjacencyIndex struct {
	ids       map[string]int
	names     []string
	nodeCount int
	outgoing  []*nodeSet
	incoming  []*nodeSet
}

// BuildAdjacencyIndex derives the follow adjacency of g in O(V+E).
// Edges whose type is not "follows" are ignored. Endpoints missing from the
// graph's nodes get their own (possibly empty) entries.
func BuildAdjacencyIndex(g *graph.Graph) *AdjacencyIndex {
	keys := g.Keys()
	idx := &AdjacencyIndex{
		ids:       make(map[string]int, len(keys)),
		names:     make([]string, 0, len(keys)),
		nodeCount: len(keys),
	}

	for _, key := range keys {
		idx.intern(key)
	}

	if g == nil {
		return idx
	}
	for _, edge := range g.Edges {
		if !edge.IsFollow() {
			continue
		}
		from := idx.intern(edge.Source)
		to := idx.intern(edge.Target)
		idx.outgoing[from].add(to)
		idx.incoming[to].add(from)
	}

	return idx
}

func (idx *AdjacencyIndex) intern(username string) int {
	if id, ok := idx.ids[username]; ok {
		return id
	}
	id := len(idx.names)
	idx.ids[username] = id
	idx.names = append(idx.names, username)
	idx.outgoing = append(idx.outgoing, newNodeSet())
	idx.incoming = append(idx.incoming, newNodeSet())
	return id
}

// ID returns the interned ID of username.
func (idx *AdjacencyIndex) ID(username string) (int, bool) {
	id, ok := idx.ids[username]
	return id, ok
}

// Username returns the canonical username for an interned ID.
func (idx *AdjacencyIndex) Username(id int) string {
	return idx.names[id]
}

// NodeCount returns the number of IDs that belong to the graph's nodes.
// IDs in [0, NodeCount) are graph nodes; the rest are dangling endpoints.
func (idx *AdjacencyIndex) NodeCount() int {
	return idx.nodeCount
}

// Len returns the total number of interned usernames.
func (idx *AdjacencyIndex) Len() int {
	return len(idx.names)
}

// IsGraphNode reports whether id belongs to the graph's nodes.
func (idx *AdjacencyIndex) IsGraphNode(id int) bool {
	return id >= 0 && id < idx.nodeCount
}

// Has reports whether username has an entry in the index.
func (idx *AdjacencyIndex) Has(username string) bool {
	_, ok := idx.ids[username]
	return ok
}

// Outgoing returns the accounts username follows, in edge order.
// Unknown usernames have no neighbors.
func (idx *AdjacencyIndex) Outgoing(username string) []string {
	id, ok := idx.ids[username]
	if !ok {
		return []string{}
	}
	return idx.namesOf(idx.outgoing[id].order)
}

// Incoming returns the followers of username, in edge order.
func (idx *AdjacencyIndex) Incoming(username string) []string {
	id, ok := idx.ids[username]
	if !ok {
		return []string{}
	}
	return idx.namesOf(idx.incoming[id].order)
}

// HasEdge reports whether source follows target.
func (idx *AdjacencyIndex) HasEdge(source, target string) bool {
	from, ok := idx.ids[source]
	if !ok {
		return false
	}
	to, ok := idx.ids[target]
	if !ok {
		return false
	}
	return idx.outgoing[from].has(to)
}

// OutDegree returns the number of distinct accounts username follows.
func (idx *AdjacencyIndex) OutDegree(username string) int {
	if id, ok := idx.ids[username]; ok {
		return idx.outgoing[id].len()
	}
	return 0
}

// InDegree returns the number of distinct followers of username.
func (idx *AdjacencyIndex) InDegree(username string) int {
	if id, ok := idx.ids[username]; ok {
		return idx.incoming[id].len()
	}
	return 0
}

func (idx *AdjacencyIndex) namesOf(ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = idx.names[id]
	}
	return out
}

// undirectedNeighbors returns outgoing ∪ incoming for every ID, outgoing
// neighbors first.
func (idx *AdjacencyIndex) undirectedNeighbors() [][]int {
	neighbors := make([][]int, len(idx.names))
	for id := range idx.names {
		out := idx.outgoing[id]
		in := idx.incoming[id]
		merged := make([]int, 0, out.len()+in.len())
		merged = append(merged, out.order...)
		for _, v := range in.order {
			if !out.has(v) {
				merged = append(merged, v)
			}
		}
		neighbors[id] = merged
	}
	return neighbors
}
