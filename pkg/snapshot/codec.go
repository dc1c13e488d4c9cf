package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/dd0wney/cluso-followgraph/pkg/graph"
	"github.com/golang/snappy"
)

// Decode parses a JSON graph, snappy-decoding it first when compressed
// is set.
func Decode(data []byte, compressed bool) (*graph.Graph, error) {
	if compressed {
		decoded, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("%w: snappy: %v", ErrInvalidSnapshot, err)
		}
		data = decoded
	}

	g := &graph.Graph{}
	if err := json.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return g, nil
}

// Encode serialises g as JSON, snappy-compressed when compress is set.
func Encode(g *graph.Graph, compress bool) ([]byte, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}
	if compress {
		return snappy.Encode(nil, data), nil
	}
	return data, nil
}
