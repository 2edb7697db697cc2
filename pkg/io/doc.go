// Package io provides JSON import and export for graph sessions.
//
// # JSON Format
//
// The format is a single top-level object:
//
//	{
//	  "nodes": [
//	    {"id": "N1", "label": "Start"},
//	    {"id": "N2", "label": ""}
//	  ],
//	  "edges": [
//	    {"source": "N1", "target": "N2", "direction": "directed", "label": "go"}
//	  ],
//	  "adjacency_list": {
//	    "N1": ["N2"],
//	    "N2": []
//	  }
//	}
//
// The adjacency_list key is derived output: export always writes it fresh
// from the current store state, and import ignores it.
//
// # Import
//
// Use [ImportJSON] to read a graph from a file path, or [ReadJSON] to read
// from any io.Reader. Import is deliberately lenient: only JSON syntax is
// checked. Missing "nodes" or "edges" keys default to empty sequences, and
// semantic invariants (unique IDs, no dangling edges) are NOT re-checked.
// Malformed or inconsistent data is loaded as-is; run [graph.Graph.Validate]
// afterwards for an advisory report.
//
// # Export
//
// Use [ExportJSON] to write a graph to a file, or [WriteJSON] to write to
// any io.Writer. Exported documents round-trip: re-importing reproduces the
// same node and edge sequences.
//
// [graph.Graph.Validate]: github.com/janwillms/graphboard/pkg/graph.Graph.Validate
package io
