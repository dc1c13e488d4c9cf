package graph

// Graph is a scraped follow graph. Nodes keep their insertion order, which
// is the iteration order every analyzer relies on for deterministic output.
//
// Graph is not safe for concurrent mutation. Callers must not modify it
// while an analysis is running.
type Graph struct {
	nodes map[string]*NodeRecord
	keys  []string

	Edges    []Edge
	Seed     string
	Metadata map[string]any
}

// New creates an empty graph crawled from seed.
func New(seed string) *Graph {
	return &Graph{
		nodes:    make(map[string]*NodeRecord),
		keys:     make([]string, 0),
		Edges:    make([]Edge, 0),
		Seed:     Canonical(seed),
		Metadata: make(map[string]any),
	}
}

// AddNode stores a record under the canonical form of its username and
// returns the key. Re-adding a key replaces the record in place.
func (g *Graph) AddNode(record NodeRecord) string {
	return g.SetNode(Canonical(record.Username), record)
}

// SetNode stores a record under an explicit key.
func (g *Graph) SetNode(key string, record NodeRecord) string {
	if g.nodes == nil {
		g.nodes = make(map[string]*NodeRecord)
	}
	if _, exists := g.nodes[key]; !exists {
		g.keys = append(g.keys, key)
	}
	rec := record
	g.nodes[key] = &rec
	return key
}

// AddEdge appends an edge. Duplicates are kept.
func (g *Graph) AddEdge(edge Edge) {
	g.Edges = append(g.Edges, edge)
}

// Follow appends a follows edge from source to target.
func (g *Graph) Follow(source, target string) {
	g.AddEdge(NewFollowEdge(source, target))
}

// Node returns the record stored under key, or nil.
func (g *Graph) Node(key string) *NodeRecord {
	if g == nil || g.nodes == nil {
		return nil
	}
	return g.nodes[key]
}

// HasNode reports whether key is present.
func (g *Graph) HasNode(key string) bool {
	return g.Node(key) != nil
}

// Keys returns the node keys in insertion order. The slice is shared and
// must not be modified.
func (g *Graph) Keys() []string {
	if g == nil {
		return nil
	}
	return g.keys
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	if g == nil {
		return 0
	}
	return len(g.keys)
}

// EdgeCount returns the number of edges of any type.
func (g *Graph) EdgeCount() int {
	if g == nil {
		return 0
	}
	return len(g.Edges)
}

// FollowEdgeCount returns the number of follows edges, duplicates included.
func (g *Graph) FollowEdgeCount() int {
	if g == nil {
		return 0
	}
	n := 0
	for _, e := range g.Edges {
		if e.IsFollow() {
			n++
		}
	}
	return n
}
