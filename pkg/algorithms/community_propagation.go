package algorithms

import (
	"sort"

	"github.com/dd0wney/cluso-followgraph/pkg/graph"
)

// DetectClusters finds communities by label propagation over the undirected
// follow graph.
//
// Every node starts with its own label. Each pass visits the nodes in a
// freshly shuffled order and moves each one, in place, to the label most
// common among its neighbors. Ties go to the label seen first while
// scanning neighbors. Propagation stops after a pass with no changes or
// after MaxIterations passes.
//
// Because of the shuffle, membership can vary between runs unless
// opts.Rand is seeded; the clusters are valid either way. Singleton groups
// are dropped and the rest are numbered by descending size.
func DetectClusters(idx *AdjacencyIndex, g *graph.Graph, opts ClusterOptions) (*ClusterResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	maxIterations := opts.MaxIterations
	if maxIterations == 0 {
		maxIterations = DefaultClusterIterations
	}

	n := idx.NodeCount()
	if n == 0 {
		return &ClusterResult{Clusters: []Cluster{}, Converged: true}, nil
	}

	neighbors := idx.undirectedNeighbors()
	rng := opts.rng()

	labels := make([]int, n)
	order := make([]int, n)
	for id := range labels {
		labels[id] = id
		order[id] = id
	}

	// Reused across nodes; counts are reset after each node.
	counts := make(map[int]int)
	seen := make([]int, 0)

	result := &ClusterResult{}
	for iter := 0; iter < maxIterations; iter++ {
		result.Iterations++
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		changed := false
		for _, nodeID := range order {
			seen = seen[:0]
			for _, neighbor := range neighbors[nodeID] {
				// Dangling endpoints carry no label.
				if !idx.IsGraphNode(neighbor) {
					continue
				}
				label := labels[neighbor]
				if counts[label] == 0 {
					seen = append(seen, label)
				}
				counts[label]++
			}

			maxCount := 0
			maxLabel := labels[nodeID]
			for _, label := range seen {
				if counts[label] > maxCount {
					maxCount = counts[label]
					maxLabel = label
				}
				delete(counts, label)
			}

			if maxLabel != labels[nodeID] {
				labels[nodeID] = maxLabel
				changed = true
			}
		}

		if !changed {
			result.Converged = true
			break
		}
	}

	result.Clusters = groupLabels(idx, labels)
	return result, nil
}

// groupLabels turns final labels into clusters: members in insertion
// order, singletons dropped, sorted by size descending.
func groupLabels(idx *AdjacencyIndex, labels []int) []Cluster {
	groups := make(map[int][]string)
	labelOrder := make([]int, 0)
	for id, label := range labels {
		if _, ok := groups[label]; !ok {
			labelOrder = append(labelOrder, label)
		}
		groups[label] = append(groups[label], idx.Username(id))
	}

	clusters := make([]Cluster, 0)
	for _, label := range labelOrder {
		members := groups[label]
		if len(members) < 2 {
			continue
		}
		clusters = append(clusters, Cluster{Size: len(members), Members: members})
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Size > clusters[j].Size
	})
	for i := range clusters {
		clusters[i].ID = i
	}
	return clusters
}
