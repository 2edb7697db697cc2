package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	apperrors "github.com/janwillms/graphboard/pkg/errors"
	"github.com/janwillms/graphboard/pkg/graph"
)

// ReadJSON decodes a JSON graph document from r into a fresh graph.
//
// Only JSON syntax is validated. On a syntax failure the returned error
// carries [apperrors.ErrCodeParse] and wraps the decoder message. On
// success, missing "nodes" or "edges" keys default to empty sequences and
// the derived "adjacency_list" key is ignored. Semantic invariants are not
// re-checked: duplicate IDs and dangling edge references load as-is.
//
// The returned graph is independent of r and can be mutated freely.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var doc graph.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "could not parse graph JSON")
	}
	return graph.FromDocument(doc), nil
}

// ImportJSON reads the JSON file at path and returns the decoded graph.
// It returns the same lenient-parse behavior as [ReadJSON]; the error for
// an unreadable file wraps the path for context.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
