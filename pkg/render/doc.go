// Package render draws graph sessions as node-link diagrams.
//
// # Overview
//
// This package produces Graphviz visualizations where every node appears as
// a box labeled with its display text and every edge as a connector whose
// arrow style follows the edge's direction mode:
//
//   - directed: one arrowhead (source → target)
//   - bidirected: arrowheads on both ends
//   - undirected: no arrowheads
//
// Edges with a non-empty label get a caption.
//
// # Usage
//
// Convert a graph to DOT source, then render in-process:
//
//	dot := render.ToDOT(g)
//	svg, err := render.SVG(ctx, g)
//	png, err := render.PNG(ctx, g)
//
// The generated DOT can also be saved and processed with external Graphviz
// tooling.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering,
// so no graphviz installation is required.
package render
