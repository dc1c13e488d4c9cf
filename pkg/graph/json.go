package graph

import (
	"encoding/json"
	"fmt"
)

// wireNode is a NodeRecord with an optional explicit key. When ID is empty
// the key is derived from Username.
type wireNode struct {
	ID string `json:"id,omitempty"`
	NodeRecord
}

type wireGraph struct {
	Seed     string         `json:"seed"`
	Nodes    []wireNode     `json:"nodes"`
	Edges    []Edge         `json:"edges"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// MarshalJSON encodes nodes as an ordered array so that insertion order
// survives a round trip.
func (g *Graph) MarshalJSON() ([]byte, error) {
	w := wireGraph{
		Seed:     g.Seed,
		Nodes:    make([]wireNode, 0, len(g.keys)),
		Edges:    g.Edges,
		Metadata: g.Metadata,
	}
	if w.Edges == nil {
		w.Edges = []Edge{}
	}
	for _, key := range g.keys {
		rec := g.nodes[key]
		wn := wireNode{NodeRecord: *rec}
		if Canonical(rec.Username) != key {
			wn.ID = key
		}
		w.Nodes = append(w.Nodes, wn)
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the ordered wire form. Edge endpoints are
// canonicalised and a missing weight defaults to 1.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var w wireGraph
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	decoded := New(w.Seed)
	if w.Metadata != nil {
		decoded.Metadata = w.Metadata
	}
	for i, wn := range w.Nodes {
		key := Canonical(wn.ID)
		if key == "" {
			key = Canonical(wn.Username)
		}
		if key == "" {
			return fmt.Errorf("node %d: missing username", i)
		}
		decoded.SetNode(key, wn.NodeRecord)
	}
	for _, e := range w.Edges {
		e.Source = Canonical(e.Source)
		e.Target = Canonical(e.Target)
		if e.Weight == 0 {
			e.Weight = 1
		}
		decoded.Edges = append(decoded.Edges, e)
	}

	*g = *decoded
	return nil
}
