// Package layout computes 2D positions for dungeon rooms.
//
// # Overview
//
// Rendering a dungeon map needs coordinates for every room. This package
// turns a [dungeon.Graph] into [Positions]: room IDs mapped to points in
// the unit square. Renderers scale those points to whatever frame they
// draw into.
//
// Two providers are included:
//
//   - [Graphviz]: force-directed placement via the neato engine. Produces
//     organic-looking maps where connected rooms sit near each other.
//   - [Circular]: rooms evenly spaced on a ring, ordered by ID with the
//     start room at angle zero. No external tooling, fully deterministic.
//
// # Fallback Chain
//
// Providers are usually consumed through a [Chain], which tries each in
// order and downgrades with a logged warning when one is unavailable or
// fails:
//
//	chain := layout.Default(logger) // graphviz, then circular
//	pos, provider, err := chain.LayoutWith(ctx, g)
//
// [Default] ends in [Circular], which cannot fail, so a default chain
// always yields positions.
//
// # Coordinates
//
// Positions are normalized: X and Y lie in [0, 1], with (0,0) the top-left
// corner. Aspect ratio of the underlying layout is preserved by fitting
// the longer axis and centering the shorter one.
package layout
