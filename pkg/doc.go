// Package pkg provides the core libraries for Delvemap dungeon generation.
//
// # Overview
//
// Delvemap generates, analyzes, and renders dungeon maps: undirected graphs
// of rooms joined by two-way passages. The pkg directory is organized into
// four main areas:
//
//  1. [dungeon] - Domain logic (room graph, traversal, procedural generation)
//  2. [layout] + [render] - Visualization (coordinate layout, SVG/PNG/DOT/minimap output)
//  3. [cache] + [store] - Infrastructure (artifact caching, snapshot persistence)
//  4. [pipeline] - Orchestration (source → layout → render)
//
// # Architecture
//
// The typical data flow through Delvemap:
//
//	Seed/Graph JSON
//	         ↓
//	    [dungeon/gen] package (carve rooms and passages)
//	         ↓
//	    [dungeon] package (graph structure + traversal)
//	         ↓
//	    [layout] package (room coordinates)
//	         ↓
//	    [render] package (visual artifacts)
//	         ↓
//	    SVG/PNG/DOT/JSON/minimap output
//
// # Quick Start
//
// Generate a dungeon and render it to SVG:
//
//	import (
//	    "context"
//	    "github.com/delvemap/delvemap/pkg/dungeon/gen"
//	    "github.com/delvemap/delvemap/pkg/layout"
//	    "github.com/delvemap/delvemap/pkg/render"
//	)
//
//	// 1. Generate a dungeon
//	g, _ := gen.Generate(gen.Options{Rooms: 12, Seed: 42})
//
//	// 2. Compute room coordinates
//	pos, _ := layout.Default(nil).Layout(context.Background(), g)
//
//	// 3. Render to SVG
//	dot := render.ToDOT(g, render.DOTOptions{Positions: pos})
//	svg, _ := render.RenderSVG(context.Background(), dot)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [dungeon] - Undirected room graph. Rooms carry a type (start, boss,
// treasure, shop, secret, normal) and a state (locked, unlocked, cleared);
// passages are symmetric and unweighted. Traversal helpers cover BFS
// distance, farthest-room search, and connected components.
//
// [dungeon/gen] - Seeded procedural generator. Grows a random spanning tree,
// adds loop passages, and assigns special rooms; the same seed always yields
// the same dungeon.
//
// [graphio] - Canonical JSON serialization for dungeon graphs. Output is
// deterministic (sorted rooms, ascending connections) so equal dungeons
// marshal to identical bytes.
//
// ## Visualization
//
// [layout] - Coordinate assignment via a provider chain: Graphviz when the
// embedded engine is available, falling back to a circular arrangement.
// Positions are normalized to the unit square.
//
// [render] - Visual artifacts: Graphviz DOT source, full SVG/PNG maps,
// square raster thumbnails, and a hand-drawn iconographic minimap. The
// preview holder publishes artifact bundles atomically for live viewers.
//
// ## Infrastructure
//
// [cache] - Content-addressed artifact cache keyed by graph hash plus
// render parameters. FileCache for the CLI (filesystem), RedisCache for
// the server, NullCache to disable caching.
//
// [store] - Snapshot persistence for the HTTP server. MemoryStore for
// tests and single-process serving, MongoStore for durable deployments.
// [store.Instrument] wraps any Store with observability hooks.
//
// [observability] - Process-wide hook registry. Pipeline, cache, and store
// emit lifecycle events through it without depending on a metrics stack.
//
// [config] - TOML configuration for the server (listen address, cache
// backend, store backend, render defaults).
//
// [errors] - Coded errors shared by every layer. Codes map to CLI exit
// behavior and HTTP status codes.
//
// ## Orchestration
//
// [pipeline] - Complete pipeline (source → layout → render) used by both
// CLI and server. Ensures consistent artifact bytes across entry points and
// consults the cache at each stage.
//
// # Common Workflows
//
// Load a dungeon from JSON:
//
//	g, _ := graphio.ReadFile("dungeon.json")
//	fmt.Println(g.RoomCount(), g.ConnectionCount())
//
// Query the graph:
//
//	start, _ := g.StartRoom()
//	boss, _ := g.BossRoom()
//	dist := g.Distance(start.ID, boss.ID)
//	far, _, _ := g.Farthest(start.ID)
//
// Run the full pipeline with caching:
//
//	runner := pipeline.NewRunner(cache.NewFileCache(dir), nil, logger)
//	defer runner.Close()
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Generate: &gen.Options{Rooms: 12, Seed: 42},
//	    Formats:  []string{pipeline.FormatSVG, pipeline.FormatMinimap},
//	})
//
// Persist a snapshot:
//
//	st := store.Instrument(store.NewMemoryStore())
//	_ = st.Put(ctx, store.NewSnapshot("crypt of ash", 42, g))
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/dungeon/...      # Specific package
//	go test -run Example           # Examples only
//
// [dungeon]: https://pkg.go.dev/github.com/delvemap/delvemap/pkg/dungeon
// [dungeon/gen]: https://pkg.go.dev/github.com/delvemap/delvemap/pkg/dungeon/gen
// [graphio]: https://pkg.go.dev/github.com/delvemap/delvemap/pkg/graphio
// [layout]: https://pkg.go.dev/github.com/delvemap/delvemap/pkg/layout
// [render]: https://pkg.go.dev/github.com/delvemap/delvemap/pkg/render
// [cache]: https://pkg.go.dev/github.com/delvemap/delvemap/pkg/cache
// [store]: https://pkg.go.dev/github.com/delvemap/delvemap/pkg/store
// [store.Instrument]: https://pkg.go.dev/github.com/delvemap/delvemap/pkg/store#Instrument
// [observability]: https://pkg.go.dev/github.com/delvemap/delvemap/pkg/observability
// [config]: https://pkg.go.dev/github.com/delvemap/delvemap/pkg/config
// [errors]: https://pkg.go.dev/github.com/delvemap/delvemap/pkg/errors
// [pipeline]: https://pkg.go.dev/github.com/delvemap/delvemap/pkg/pipeline
package pkg
