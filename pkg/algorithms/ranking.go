package algorithms

import (
	"container/heap"

	"github.com/dd0wney/cluso-followgraph/pkg/graph"
)

// RankedNode is an account paired with a score.
type RankedNode struct {
	Username string            `json:"username"`
	Score    float64           `json:"score"`
	Node     *graph.NodeRecord `json:"node"`

	id int
}

// rankedNodeHeap is a min-heap by score. Among equal scores the node that
// comes later in insertion order is "smaller", so it is evicted first and
// the earlier node wins the tie.
type rankedNodeHeap []RankedNode

func (h rankedNodeHeap) Len() int { return len(h) }
func (h rankedNodeHeap) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score < h[j].Score
	}
	return h[i].id > h[j].id
}
func (h rankedNodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *rankedNodeHeap) Push(x any) {
	*h = append(*h, x.(RankedNode))
}

func (h *rankedNodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// topNodes returns the n graph nodes with the highest scores, descending,
// ties broken by insertion order. scores is indexed by interned ID; IDs
// outside the graph's nodes are skipped. O(V log n).
func topNodes(idx *AdjacencyIndex, g *graph.Graph, scores []float64, n int) []RankedNode {
	if n <= 0 {
		return []RankedNode{}
	}

	h := make(rankedNodeHeap, 0, n)
	heap.Init(&h)

	for id := 0; id < idx.NodeCount() && id < len(scores); id++ {
		rn := RankedNode{id: id, Score: scores[id]}
		if h.Len() < n {
			heap.Push(&h, rn)
		} else if beats(rn, h[0]) {
			heap.Pop(&h)
			heap.Push(&h, rn)
		}
	}

	result := make([]RankedNode, h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		rn := heap.Pop(&h).(RankedNode)
		rn.Username = idx.Username(rn.id)
		rn.Node = g.Node(rn.Username)
		result[i] = rn
	}
	return result
}

// beats reports whether a ranks above b.
func beats(a, b RankedNode) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.id < b.id
}
