package graph

import "strings"

// EdgeTypeFollows is the only edge type the analyzers interpret.
const EdgeTypeFollows = "follows"

// NodeRecord describes one scraped account. Records are treated as
// immutable while an analysis is running.
type NodeRecord struct {
	Username        string `json:"username" validate:"required,max=64"`
	DisplayName     string `json:"displayName,omitempty" validate:"max=256"`
	Bio             string `json:"bio,omitempty"`
	FollowerCount   int    `json:"followerCount" validate:"min=0"`
	FollowingCount  int    `json:"followingCount" validate:"min=0"`
	Verified        bool   `json:"verified"`
	Depth           int    `json:"depth" validate:"min=0"`
	ProfileImageURL string `json:"profileImageUrl,omitempty" validate:"omitempty,url"`
}

// Edge is a directed relationship between two canonical usernames.
type Edge struct {
	Source string  `json:"source" validate:"required"`
	Target string  `json:"target" validate:"required"`
	Type   string  `json:"type" validate:"required"`
	Weight float64 `json:"weight" validate:"gt=0"`
}

// IsFollow reports whether the edge is interpreted by the analyzers.
func (e Edge) IsFollow() bool {
	return e.Type == EdgeTypeFollows
}

// NewFollowEdge returns a follows edge with the default weight.
// Endpoints are canonicalised.
func NewFollowEdge(source, target string) Edge {
	return Edge{
		Source: Canonical(source),
		Target: Canonical(target),
		Type:   EdgeTypeFollows,
		Weight: 1,
	}
}

// Canonical converts a username into the key form used by Graph:
// surrounding whitespace and leading '@' removed, lower-cased.
func Canonical(username string) string {
	return strings.ToLower(strings.TrimLeft(strings.TrimSpace(username), "@"))
}
