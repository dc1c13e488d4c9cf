package algorithms

import "github.com/dd0wney/cluso-followgraph/pkg/graph"

// DefaultInnerCircleOverlap is the overlap ratio a mutual must exceed to
// be in the inner circle.
const DefaultInnerCircleOverlap = 0.15

// Directions for one-way relationships in the outer ring.
const (
	DirectionFollowing = "following" // seed follows the account
	DirectionFollower  = "follower"  // account follows the seed
)

// OrbitOptions configures ClassifyOrbits.
type OrbitOptions struct {
	InnerCircleOverlap float64 // in [0, 1]
}

// DefaultOrbitOptions returns the default orbit configuration.
func DefaultOrbitOptions() OrbitOptions {
	return OrbitOptions{InnerCircleOverlap: DefaultInnerCircleOverlap}
}

// Validate checks the option preconditions.
func (o OrbitOptions) Validate() error {
	if o.InnerCircleOverlap < 0 || o.InnerCircleOverlap > 1 {
		return invalidOptions("inner circle overlap %v is outside [0, 1]", o.InnerCircleOverlap)
	}
	return nil
}

// OrbitMember is one account placed in a seed-relative bucket.
type OrbitMember struct {
	Username  string            `json:"username"`
	Overlap   float64           `json:"overlap,omitempty"`
	Direction string            `json:"direction,omitempty"`
	Node      *graph.NodeRecord `json:"node"`
}

// Orbits groups every non-seed account by its relationship to the seed.
type Orbits struct {
	InnerCircle []OrbitMember `json:"innerCircle"`
	Active      []OrbitMember `json:"active"`
	OuterRing   []OrbitMember `json:"outerRing"`
	Periphery   []OrbitMember `json:"periphery"`
}

// OrbitSummary counts the members of each bucket.
type OrbitSummary struct {
	InnerCircle int `json:"innerCircle"`
	Active      int `json:"active"`
	OuterRing   int `json:"outerRing"`
	Periphery   int `json:"periphery"`
	Total       int `json:"total"`
}

// OrbitResult is the orbit classification for one seed.
type OrbitResult struct {
	Seed    string       `json:"seed"`
	Orbits  Orbits       `json:"orbits"`
	Summary OrbitSummary `json:"summary"`
}

// ClassifyOrbits places every graph node other than seed in exactly one
// bucket:
//
//   - innerCircle: mutual follow and overlap ratio above the threshold
//   - active: mutual follow, overlap at or below the threshold
//   - outerRing: a follow in one direction only
//   - periphery: no direct edge
//
// The overlap ratio is |seed.following ∩ other.following| / |seed.following|,
// or 0 when the seed follows nobody. An unknown seed leaves everyone in the
// periphery.
func ClassifyOrbits(idx *AdjacencyIndex, g *graph.Graph, seed string, opts OrbitOptions) (*OrbitResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	seed = graph.Canonical(seed)
	result := &OrbitResult{
		Seed: seed,
		Orbits: Orbits{
			InnerCircle: make([]OrbitMember, 0),
			Active:      make([]OrbitMember, 0),
			OuterRing:   make([]OrbitMember, 0),
			Periphery:   make([]OrbitMember, 0),
		},
	}

	seedID, known := idx.ID(seed)
	for id := 0; id < idx.NodeCount(); id++ {
		if known && id == seedID {
			continue
		}
		name := idx.Username(id)
		member := OrbitMember{Username: name, Node: g.Node(name)}

		if !known {
			result.Orbits.Periphery = append(result.Orbits.Periphery, member)
			continue
		}

		seedFollows := idx.outgoing[seedID].has(id)
		followsSeed := idx.outgoing[id].has(seedID)

		switch {
		case seedFollows && followsSeed:
			overlap := idx.followingOverlap(seedID, id)
			member.Overlap = round2(overlap)
			if overlap > opts.InnerCircleOverlap {
				result.Orbits.InnerCircle = append(result.Orbits.InnerCircle, member)
			} else {
				result.Orbits.Active = append(result.Orbits.Active, member)
			}
		case seedFollows:
			member.Direction = DirectionFollowing
			result.Orbits.OuterRing = append(result.Orbits.OuterRing, member)
		case followsSeed:
			member.Direction = DirectionFollower
			result.Orbits.OuterRing = append(result.Orbits.OuterRing, member)
		default:
			result.Orbits.Periphery = append(result.Orbits.Periphery, member)
		}
	}

	result.Summary = OrbitSummary{
		InnerCircle: len(result.Orbits.InnerCircle),
		Active:      len(result.Orbits.Active),
		OuterRing:   len(result.Orbits.OuterRing),
		Periphery:   len(result.Orbits.Periphery),
	}
	result.Summary.Total = result.Summary.InnerCircle + result.Summary.Active +
		result.Summary.OuterRing + result.Summary.Periphery
	return result, nil
}

// followingOverlap returns the share of seed's followings that other also
// follows.
func (idx *AdjacencyIndex) followingOverlap(seedID, other int) float64 {
	seedFollowing := idx.outgoing[seedID]
	if seedFollowing.len() == 0 {
		return 0
	}
	otherFollowing := idx.outgoing[other]
	shared := 0
	for _, id := range seedFollowing.order {
		if otherFollowing.has(id) {
			shared++
		}
	}
	return float64(shared) / float64(seedFollowing.len())
}
