// Package pipeline runs the source → layout → render chain behind every
// delvemap entry point. The CLI's render and generate commands, the HTTP
// server's preview endpoints, and the tests all execute the same Runner,
// so a dungeon renders identically no matter which door it came in through.
//
// A run has three stages. Source either accepts a caller-supplied graph or
// generates one; supplied graphs pass the connectivity gate here, generated
// graphs are gated inside the generator. Layout asks the provider chain for
// room positions. Render turns graph plus positions into the requested
// artifact formats. Layout and render results are cached under content-hash
// keys, so re-rendering an unchanged dungeon is a pair of cache reads.
//
// The usual entry point is Execute:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Generate: gen.Options{Rooms: 12, Seed: 99},
//	    Formats:  []string{"svg", "minimap"},
//	})
//
// Callers that already hold a dungeon or positions can run single stages
// with [Runner.ComputeLayout] and [Runner.Render].
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/delvemap/delvemap/pkg/cache"
	"github.com/delvemap/delvemap/pkg/dungeon"
	"github.com/delvemap/delvemap/pkg/dungeon/gen"
	apperrors "github.com/delvemap/delvemap/pkg/errors"
	"github.com/delvemap/delvemap/pkg/layout"
	"github.com/delvemap/delvemap/pkg/render"
)

// =============================================================================
// Defaults and Formats
// =============================================================================

// Render defaults, shared by the CLI flags and the config file so both
// surfaces agree on what "unset" means.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0

	// DefaultScale leaves PNG output at its natural size.
	DefaultScale = 1.0

	DefaultMinimapSize = render.DefaultMinimapSize
)

// Artifact format names accepted in Options.Formats.
const (
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatDOT     = "dot"
	FormatJSON    = "json"
	FormatMinimap = "minimap"
)

// ValidFormats enumerates the accepted format names.
var ValidFormats = map[string]bool{
	FormatSVG:     true,
	FormatPNG:     true,
	FormatDOT:     true,
	FormatJSON:    true,
	FormatMinimap: true,
}

// =============================================================================
// Options and Results
// =============================================================================

// Options configures a pipeline run. The JSON form doubles as the API
// request body for server-side rendering.
type Options struct {
	// Source options. A supplied Graph takes precedence; otherwise a
	// dungeon is generated from the Generate options.
	Graph    *dungeon.Graph `json:"-"`
	Generate gen.Options    `json:"generate"`

	// Artifact selection and dimensions.
	Formats     []string `json:"formats,omitempty"`
	Detailed    bool     `json:"detailed,omitempty"`
	Width       float64  `json:"width,omitempty"`
	Height      float64  `json:"height,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	MinimapSize int      `json:"minimap_size,omitempty"`

	// NoCache bypasses the layout and artifact caches entirely.
	NoCache bool `json:"no_cache,omitempty"`

	// Logger is never serialized; each entry point injects its own.
	Logger *log.Logger `json:"-"`

	// validated makes ValidateAndSetDefaults idempotent.
	validated bool `json:"-"`
}

// Result is everything a pipeline run produces.
type Result struct {
	// Dungeon is the graph the artifacts were rendered from.
	Dungeon *dungeon.Graph

	// DungeonID is the instance ID from the graph metadata, if present.
	DungeonID string

	// GraphHash is the content hash the cache keys were derived from.
	GraphHash string

	// Positions holds the computed room positions in the unit square, and
	// Provider names the layout provider that produced them.
	Positions layout.Positions
	Provider  string

	// Artifacts holds the rendered outputs, keyed by format name.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats carries the timing and size figures reported after a run.
type Stats struct {
	RoomCount       int
	ConnectionCount int
	SourceTime      time.Duration
	LayoutTime      time.Duration
	RenderTime      time.Duration
}

// CacheInfo reports which stages were served from cache. RenderHit is set
// only when every requested artifact was cached.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat rejects format names outside ValidFormats.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, dot, json, minimap)", format)
	}
	return nil
}

// ValidateFormats rejects a format list containing any unknown name.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults prepares the options for a full pipeline run:
// generator options are validated when no graph was supplied, then the
// render options. Calling it again is a no-op.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Graph == nil {
		if err := o.Generate.ValidateAndSetDefaults(); err != nil {
			return err
		}
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults fills unset render options with the package defaults
// and gives the logger an io.Discard fallback.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.MinimapSize == 0 {
		o.MinimapSize = DefaultMinimapSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender prepares just the render options, for callers that
// bring their own graph and positions.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Width < 0 || o.Height < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "frame dimensions must not be negative")
	}
	if o.Scale < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "scale must not be negative")
	}
	if o.MinimapSize < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "minimap size must not be negative")
	}
	return nil
}

// =============================================================================
// Cache Key Projections
// =============================================================================

// LayoutKeyOpts projects the options onto the layout cache key.
func (o *Options) LayoutKeyOpts(provider string) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Provider: provider,
	}
}

// ArtifactKeyOpts projects the options onto the artifact cache key. Every
// field that changes the rendered bytes must appear here, or stale
// artifacts would survive option changes.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Width:       o.Width,
		Height:      o.Height,
		Detailed:    o.Detailed,
		MinimapSize: o.MinimapSize,
		Scale:       o.Scale,
	}
}
