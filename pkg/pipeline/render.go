package pipeline

import (
	"context"

	"github.com/delvemap/delvemap/pkg/dungeon"
	"github.com/delvemap/delvemap/pkg/graphio"
	"github.com/delvemap/delvemap/pkg/layout"
	"github.com/delvemap/delvemap/pkg/render"
)

// =============================================================================
// Artifact Rendering
// =============================================================================

// renderArtifacts renders every requested format from the dungeon and its
// positions. DOT is generated once and shared by the svg, png, and dot
// formats; the minimap and JSON formats bypass Graphviz entirely.
func renderArtifacts(ctx context.Context, g *dungeon.Graph, pos layout.Positions, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dot string
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG, FormatPNG, FormatDOT:
			if dot == "" {
				dot = render.ToDOT(g, dotOptions(opts, pos))
			}
		}
	}

	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}

		var data []byte
		var err error
		switch format {
		case FormatSVG:
			data, err = render.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = render.RenderPNG(ctx, dot, opts.Scale)
		case FormatDOT:
			data = []byte(dot)
		case FormatJSON:
			data, err = graphio.Marshal(g)
		case FormatMinimap:
			data = render.Minimap(g, pos, render.WithSize(opts.MinimapSize))
		}
		if err != nil {
			return nil, err
		}

		artifacts[format] = data
		opts.Logger.Debug("rendered artifact", "format", format, "bytes", len(data))
	}

	return artifacts, nil
}

// dotOptions maps pipeline options onto DOT generation options.
func dotOptions(opts Options, pos layout.Positions) render.DOTOptions {
	return render.DOTOptions{
		Detailed:  opts.Detailed,
		Positions: pos,
		Width:     opts.Width,
		Height:    opts.Height,
	}
}
