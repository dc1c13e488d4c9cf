package analysis

import (
	"time"

	"github.com/dd0wney/cluso-followgraph/pkg/algorithms"
)

// Counts summarises the graph and the size of every result.
type Counts struct {
	Nodes             int `json:"nodes"`
	Edges             int `json:"edges"`
	FollowEdges       int `json:"followEdges"`
	MutualConnections int `json:"mutualConnections"`
	Clusters          int `json:"clusters"`
	BridgeAccounts    int `json:"bridgeAccounts"`
	GhostFollowers    int `json:"ghostFollowers"`
}

// Report is the combined output of one analysis run. Field names are the
// export contract.
type Report struct {
	RunID     string    `json:"runId"`
	Seed      string    `json:"seed"`
	Timestamp time.Time `json:"timestamp"`
	Counts    Counts    `json:"counts"`

	MutualConnections []algorithms.MutualPair    `json:"mutualConnections"`
	BridgeAccounts    []algorithms.RankedNode    `json:"bridgeAccounts"`
	Clusters          []algorithms.Cluster       `json:"clusters"`
	InfluenceRanking  []algorithms.RankedNode    `json:"influenceRanking"`
	GhostFollowers    []algorithms.GhostFollower `json:"ghostFollowers"`
	Orbits            algorithms.OrbitSummary    `json:"orbits"`

	Metadata map[string]any `json:"metadata,omitempty"`

	// Stages records per-stage wall time, in run order.
	Stages []StageTiming `json:"stages,omitempty"`
	// BridgesApproximate is true when betweenness was sampled.
	BridgesApproximate bool `json:"bridgesApproximate"`
	// SeedInGraph is false when the seed has no node record; ghost and
	// orbit results are then degenerate.
	SeedInGraph bool `json:"seedInGraph"`
}

// StageTiming is the wall time of one analysis stage.
type StageTiming struct {
	Stage    string        `json:"stage"`
	Duration time.Duration `json:"durationNs"`
}
