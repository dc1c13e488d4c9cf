package snapshot

import (
	"fmt"
	"os"

	"github.com/dd0wney/cluso-followgraph/pkg/graph"
	"golang.org/x/exp/mmap"
)

// readFile maps the snapshot file and copies it out, so the mapping can be
// released before decoding.
func readFile(path string) ([]byte, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data := make([]byte, reader.Len())
	if _, err := reader.ReadAt(data, 0); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// SaveFile writes g to path in the form Load reads back: the graph's JSON
// wire form, snappy-compressed when the name ends in .sz or .snappy. It is
// the writer a scraper uses to hand over a crawl, and the CLI uses it to
// keep a local copy of a remote snapshot. The file is replaced atomically.
func SaveFile(path string, g *graph.Graph) error {
	data, err := Encode(g, compressed(path))
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
