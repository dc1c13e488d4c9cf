package algorithms

import (
	"reflect"
	"testing"

	"github.com/dd0wney/cluso-followgraph/pkg/graph"
)

// buildTestGraph creates a graph with the given node keys (insertion order)
// and follows edges
func buildTestGraph(t testing.TB, nodes []string, edges [][2]string) *graph.Graph {
	t.Helper()

	g := graph.New("")
	for _, name := range nodes {
		g.AddNode(graph.NodeRecord{Username: name, DisplayName: "Display " + name})
	}
	for _, e := range edges {
		g.Follow(e[0], e[1])
	}
	return g
}

// TestBuildAdjacencyIndex_EmptyGraph tests index construction on an empty graph
func TestBuildAdjacencyIndex_EmptyGraph(t *testing.T) {
	idx := BuildAdjacencyIndex(graph.New(""))

	if idx.NodeCount() != 0 || idx.Len() != 0 {
		t.Errorf("Expected empty index, got NodeCount=%d Len=%d", idx.NodeCount(), idx.Len())
	}
	if len(idx.Outgoing("anyone")) != 0 {
		t.Error("Expected no neighbors for unknown username")
	}
}

// TestBuildAdjacencyIndex_NodesWithoutEdges tests that every node is pre-seeded
func TestBuildAdjacencyIndex_NodesWithoutEdges(t *testing.T) {
	g := buildTestGraph(t, []string{"a", "b", "c"}, nil)
	idx := BuildAdjacencyIndex(g)

	for _, key := range g.Keys() {
		if !idx.Has(key) {
			t.Errorf("Expected entry for %q", key)
		}
		if idx.OutDegree(key) != 0 || idx.InDegree(key) != 0 {
			t.Errorf("Expected empty sets for %q", key)
		}
	}
}

// TestBuildAdjacencyIndex_Edges tests duplicates, non-follow edges and dangling endpoints
func TestBuildAdjacencyIndex_Edges(t *testing.T) {
	g := buildTestGraph(t, []string{"a", "b"}, [][2]string{
		{"a", "b"},
		{"a", "b"},
		{"b", "ghost"},
	})
	g.AddEdge(graph.Edge{Source: "a", Target: "c", Type: "likes", Weight: 1})

	idx := BuildAdjacencyIndex(g)

	if got := idx.Outgoing("a"); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("Outgoing(a) = %v, want [b]", got)
	}
	if got := idx.Incoming("b"); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("Incoming(b) = %v, want [a]", got)
	}
	if got := idx.Outgoing("b"); !reflect.DeepEqual(got, []string{"ghost"}) {
		t.Errorf("Outgoing(b) = %v, want [ghost]", got)
	}

	if idx.NodeCount() != 2 {
		t.Errorf("Expected 2 graph nodes, got %d", idx.NodeCount())
	}
	if idx.Len() != 3 {
		t.Errorf("Expected 3 interned usernames (with dangling endpoint), got %d", idx.Len())
	}

	ghostID, ok := idx.ID("ghost")
	if !ok {
		t.Fatal("Expected dangling endpoint to be indexed")
	}
	if idx.IsGraphNode(ghostID) {
		t.Error("Dangling endpoint must not be reported as a graph node")
	}
	if idx.Has("c") {
		t.Error("Non-follow edge endpoint must not be indexed")
	}

	if !idx.HasEdge("a", "b") || idx.HasEdge("b", "a") {
		t.Error("HasEdge returned wrong direction")
	}
	if idx.HasEdge("nobody", "a") {
		t.Error("HasEdge must be false for unknown source")
	}
}

func TestAdjacencyIndex_UndirectedNeighbors(t *testing.T) {
	g := buildTestGraph(t, []string{"a", "b", "c"}, [][2]string{
		{"a", "b"},
		{"c", "a"},
		{"b", "a"},
	})
	idx := BuildAdjacencyIndex(g)
	neighbors := idx.undirectedNeighbors()

	aID, _ := idx.ID("a")
	got := idx.namesOf(neighbors[aID])
	// Outgoing first, then incoming not already present
	want := []string{"b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("undirected neighbors of a = %v, want %v", got, want)
	}
}
