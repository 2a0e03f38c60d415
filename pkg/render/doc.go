// Package render turns dungeon graphs into visual artifacts.
//
// # Overview
//
// This package produces every visual output of delvemap:
//
//   - Graphviz DOT source ([ToDOT])
//   - Full SVG and PNG maps rendered in-process ([RenderSVG], [RenderPNG])
//   - A compact iconographic minimap ([Minimap])
//   - Square raster thumbnails ([SquarePNG])
//
// # DOT and Full Maps
//
// [ToDOT] emits an undirected DOT graph with per-type node shapes and
// colors. When layout positions are supplied they are pinned, so the full
// map and the minimap agree on geometry:
//
//	dot := render.ToDOT(g, render.DOTOptions{Positions: pos})
//	svg, err := render.RenderSVG(ctx, dot)
//	png, err := render.RenderPNG(ctx, dot, 2.0) // 2x resolution
//
// Rendering runs through the embedded Graphviz engine
// ([github.com/goccy/go-graphviz]); no external binaries are required.
//
// # Minimap
//
// [Minimap] draws a small fixed-square SVG by hand: connection lines
// first, then a glyph per room (circle, star, box, diamond depending on
// type). It needs nothing but precomputed positions, so it works even
// where the Graphviz engine does not.
//
// # Preview
//
// [Preview] bundles the artifacts a viewer needs, and [PreviewHolder]
// publishes them atomically: readers always observe a complete preview,
// never a half-written one.
package render
