package algorithms

import (
	"math/rand"
	"time"
)

// DefaultClusterIterations caps label propagation passes.
const DefaultClusterIterations = 20

// Cluster is a detected community of at least two accounts.
type Cluster struct {
	ID      int      `json:"id"`
	Size    int      `json:"size"`
	Members []string `json:"members"`
}

// ClusterResult contains the detected clusters, largest first.
type ClusterResult struct {
	Clusters   []Cluster `json:"clusters"`
	Iterations int       `json:"iterations"`
	Converged  bool      `json:"converged"`
}

// ClusterOptions configures DetectClusters.
type ClusterOptions struct {
	// MaxIterations caps the number of propagation passes. Zero selects
	// DefaultClusterIterations.
	MaxIterations int
	// Rand drives the per-pass visit order. Supply a seeded source for
	// reproducible membership; nil seeds from the clock.
	Rand *rand.Rand
}

// DefaultClusterOptions returns the default cluster detection configuration.
func DefaultClusterOptions() ClusterOptions {
	return ClusterOptions{MaxIterations: DefaultClusterIterations}
}

// Validate checks the option preconditions.
func (o ClusterOptions) Validate() error {
	if o.MaxIterations < 0 {
		return invalidOptions("cluster iterations %d is negative", o.MaxIterations)
	}
	return nil
}

// NewSeededRand returns a PRNG for ClusterOptions.Rand.
func NewSeededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func (o ClusterOptions) rng() *rand.Rand {
	if o.Rand != nil {
		return o.Rand
	}
	return NewSeededRand(time.Now().UnixNano())
}
