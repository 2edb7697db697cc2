// Package pkg provides the core libraries for Graphboard interactive graph
// building.
//
// # Overview
//
// Graphboard maintains a small labeled graph and keeps three derived views
// in sync with every mutation: an adjacency list, a canonical JSON document,
// and a graphviz drawing. The pkg directory is organized as follows:
//
//  1. [graph] - The graph store: nodes, edges, direction modes, derived views
//  2. [io] - JSON import and export of graph documents
//  3. [render] - DOT emission and SVG/PNG drawing via in-process Graphviz
//  4. [session] - Editing sessions with memory, Redis, and MongoDB backends
//  5. [cache] - Content-addressed caching of rendered artifacts
//  6. [errors] - Structured error codes shared by the CLI and HTTP API
//  7. [observability] - Optional hooks for metrics and tracing backends
//  8. [buildinfo] - Version information injected at build time
//
// # Architecture
//
// The typical data flow through Graphboard:
//
//	HTTP API / TUI editor
//	         ↓
//	    [graph] package (mutations + derived views)
//	         ↓
//	    [io] package (canonical JSON document)
//	         ↓
//	    [render] package (DOT → SVG/PNG)
//
// The graph store itself is not concurrency-safe; the HTTP layer serializes
// mutations per session, and the TUI owns its graph exclusively.
//
// # Quick Start
//
// Build a graph and export it:
//
//	g := graph.New()
//	web := g.AddNode("Web")
//	db := g.AddNode("DB")
//	_ = g.AddEdge(web.ID, db.ID, graph.Directed, "queries")
//	_ = io.ExportJSON(g, "graph_structure.json")
//
// Draw it:
//
//	svg, err := render.SVG(ctx, g)
//
// [graph]: https://pkg.go.dev/github.com/janwillms/graphboard/pkg/graph
// [io]: https://pkg.go.dev/github.com/janwillms/graphboard/pkg/io
// [render]: https://pkg.go.dev/github.com/janwillms/graphboard/pkg/render
// [session]: https://pkg.go.dev/github.com/janwillms/graphboard/pkg/session
// [cache]: https://pkg.go.dev/github.com/janwillms/graphboard/pkg/cache
// [errors]: https://pkg.go.dev/github.com/janwillms/graphboard/pkg/errors
// [observability]: https://pkg.go.dev/github.com/janwillms/graphboard/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/janwillms/graphboard/pkg/buildinfo
package pkg
