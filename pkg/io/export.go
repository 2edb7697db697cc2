package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/janwillms/graphboard/pkg/graph"
)

// DefaultFilename is the conventional filename for exported graph documents,
// used by the CLI and the HTTP export endpoint.
const DefaultFilename = "graph_structure.json"

// WriteJSON encodes the graph's document as indented JSON and writes it to w.
// The document is built fresh from the current store state, so the derived
// adjacency list always reflects the latest mutation.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g.Document()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalJSON returns the graph's document as indented JSON bytes.
func MarshalJSON(g *graph.Graph) ([]byte, error) {
	data, err := json.MarshalIndent(g.Document(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// ExportJSON writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
