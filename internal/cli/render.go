package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/delvemap/delvemap/pkg/graphio"
	"github.com/delvemap/delvemap/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // output file (single format) or base path (multiple)
	formats     string  // comma-separated formats: svg, png, dot, json, minimap
	detailed    bool    // include room metadata in dot and json output
	width       float64 // viewport width in pixels
	height      float64 // viewport height in pixels
	scale       float64 // png rasterization scale
	minimapSize int     // minimap edge length in pixels
	noCache     bool    // bypass layout and artifact caches
}

// renderCommand creates the render command for producing dungeon map
// artifacts from a graph file.
//
// Default settings:
//   - format: svg
//   - width: 800px, height: 600px
//   - scale: 1.0, minimap: 256px
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		width:       pipeline.DefaultWidth,
		height:      pipeline.DefaultHeight,
		scale:       pipeline.DefaultScale,
		minimapSize: pipeline.DefaultMinimapSize,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a dungeon map to SVG and friends",
		Long: `Render a dungeon graph to one or more artifact formats.

Formats:
  svg      full map with room shapes and passages
  png      rasterized map
  dot      Graphviz DOT source for the layout
  json     canonical graph JSON
  minimap  small square overview

Examples:
  delvemap render crypt.json                          # crypt.svg
  delvemap render crypt.json -f svg,minimap -o out/map
  delvemap render crypt.json -f png --scale 2.0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "formats", "f", "", "output format(s): svg (default), png, dot, json, minimap (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include room metadata in dot and json output")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "frame width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "frame height")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "png rasterization scale")
	cmd.Flags().IntVar(&opts.minimapSize, "minimap-size", opts.minimapSize, "minimap edge length in pixels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass layout and artifact caches")

	return cmd
}

// runRender loads the graph from input and renders it to the requested formats.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	formats := parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	g, err := graphio.ReadFile(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering dungeon map...")
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		Graph:       g,
		Formats:     formats,
		Detailed:    opts.detailed,
		Width:       opts.width,
		Height:      opts.height,
		Scale:       opts.scale,
		MinimapSize: opts.minimapSize,
		NoCache:     opts.noCache,
		Logger:      c.Logger,
	})
	if err != nil {
		if spinner.Cancelled() {
			spinner.StopWithError("Render cancelled")
		} else {
			spinner.StopWithError("Render failed")
		}
		return err
	}

	total := result.Stats.SourceTime + result.Stats.LayoutTime + result.Stats.RenderTime
	spinner.StopWithSuccess(fmt.Sprintf("Rendered dungeon map (%s)", total.Round(time.Millisecond)))
	printStats(result.Stats.RoomCount, result.Stats.ConnectionCount, result.CacheInfo.RenderHit)

	return writeArtifacts(result.Artifacts, formats, basePath(opts.output, input), opts.output, input)
}

// writeArtifacts writes rendered artifacts to per-format files derived from
// base. With a single format and an explicit output path the artifact goes
// exactly there.
func writeArtifacts(artifacts map[string][]byte, formats []string, base, output, input string) error {
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}

		path := artifactPath(base, format)
		if len(formats) == 1 && output != "" {
			path = output
		}
		if path == input {
			// keep the source graph intact
			path = base + "_out." + format
		}

		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// artifactPath returns the output path for a single format. The minimap is
// an SVG artifact, so it gets a suffix instead of its own extension.
func artifactPath(base, format string) string {
	if format == pipeline.FormatMinimap {
		return base + "_minimap.svg"
	}
	return base + "." + format
}

// artifactExts are file extensions stripped when deriving a base path.
var artifactExts = map[string]bool{".svg": true, ".png": true, ".dot": true, ".json": true}

// basePath derives the base output path from the output and input paths.
// If output is empty the input's extension is stripped; a known artifact
// extension on output is stripped so per-format suffixes can be appended.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	if ext := filepath.Ext(output); artifactExts[ext] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// nopCloser wraps an io.Writer with a no-op Close method so os.Stdout can
// stand in for a file.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path, or stdout when the
// path is empty. An existing file is overwritten.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
