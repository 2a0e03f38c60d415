package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/delvemap/delvemap/pkg/cache"
	"github.com/delvemap/delvemap/pkg/dungeon"
	"github.com/delvemap/delvemap/pkg/dungeon/gen"
	apperrors "github.com/delvemap/delvemap/pkg/errors"
	"github.com/delvemap/delvemap/pkg/graphio"
	"github.com/delvemap/delvemap/pkg/layout"
	"github.com/delvemap/delvemap/pkg/observability"
)

// Runner executes pipeline stages against one cache, keyer, and layout
// chain. It holds no per-run state, so one Runner serves concurrent
// requests with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Layout *layout.Chain
	Logger *log.Logger
}

// NewRunner builds a runner. A nil keyer falls back to the DefaultKeyer,
// a nil cache to the NullCache, and a nil logger to log.Default, so
// NewRunner(nil, nil, nil) yields a working uncached runner.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Layout: layout.Default(logger), Logger: logger}
}

// Execute runs the complete source → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{Artifacts: make(map[string][]byte)}

	// Source stage
	sourceStart := time.Now()
	g, err := r.Source(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Dungeon = g
	result.Stats.SourceTime = time.Since(sourceStart)
	result.Stats.RoomCount = g.RoomCount()
	result.Stats.ConnectionCount = g.ConnectionCount()
	if id, ok := g.Meta()[gen.MetaID].(string); ok {
		result.DungeonID = id
	}

	// The graph hash feeds cache keys and is reported back to API clients.
	if graphData, err := graphio.Marshal(g); err == nil {
		result.GraphHash = cache.Hash(graphData)
	}

	r.Logger.Info("dungeon ready",
		"rooms", g.RoomCount(),
		"connections", g.ConnectionCount(),
		"duration", result.Stats.SourceTime)

	// Layout stage
	layoutStart := time.Now()
	pos, provider, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Positions = pos
	result.Provider = provider
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("layout ready",
		"provider", provider,
		"duration", result.Stats.LayoutTime)

	// Render stage
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, pos, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("artifacts ready",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes room positions with caching and
// returns the provider name and cache hit info.
//
// Cached positions are looked up under the first available provider's key:
// a lower-priority provider's cached layout must not shadow a provider that
// has since become available, so a miss there means recompute.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, g *dungeon.Graph, opts Options) (layout.Positions, string, bool, error) {
	r.applyLogger(&opts)

	graphData, err := graphio.Marshal(g)
	if err != nil {
		return nil, "", false, apperrors.Wrap(apperrors.ErrCodeInternal, err, "serialize dungeon for cache key")
	}
	graphHash := cache.Hash(graphData)

	if !opts.NoCache {
		for _, p := range r.Layout.Providers() {
			if !p.Available() {
				continue
			}
			key := r.Keyer.LayoutKey(graphHash, opts.LayoutKeyOpts(p.Name()))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				var pos layout.Positions
				if json.Unmarshal(data, &pos) == nil {
					observability.Cache().OnCacheHit(ctx, "layout")
					return pos, p.Name(), true, nil
				}
				// Undecodable entry; recompute below.
			}
			observability.Cache().OnCacheMiss(ctx, "layout")
			break
		}
	}

	observability.Pipeline().OnLayoutStart(ctx, r.Layout.Name(), g.RoomCount())
	start := time.Now()
	pos, provider, err := r.Layout.LayoutWith(ctx, g)
	observability.Pipeline().OnLayoutComplete(ctx, provider, time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	if !opts.NoCache {
		if data, err := json.Marshal(pos); err == nil {
			key := r.Keyer.LayoutKey(graphHash, opts.LayoutKeyOpts(provider))
			if r.Cache.Set(ctx, key, data, cache.TTLLayout) == nil {
				observability.Cache().OnCacheSet(ctx, "layout", len(data))
			}
		}
	}

	return pos, provider, false, nil
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo
// and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, g *dungeon.Graph, opts Options) (layout.Positions, string, error) {
	pos, provider, _, err := r.ComputeLayoutWithCacheInfo(ctx, g, opts)
	return pos, provider, err
}

// RenderWithCacheInfo produces the requested artifacts and reports whether
// every one of them came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *dungeon.Graph, pos layout.Positions, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// The artifact key covers graph content and positions: rooms carry the
	// labels and states, positions carry the geometry.
	graphData, err := graphio.Marshal(g)
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrCodeInternal, err, "serialize dungeon for cache key")
	}
	posData, err := json.Marshal(pos)
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrCodeInternal, err, "serialize positions for cache key")
	}
	renderHash := cache.Hash(append(graphData, posData...))

	// A cached run must cover every requested format; a partial set means
	// the renderer runs anyway, so stop probing on the first miss.
	if !opts.NoCache {
		allCached := true
		artifacts := make(map[string][]byte)

		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(renderHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
		}

		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := renderArtifacts(ctx, g, pos, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if !opts.NoCache {
		for format, data := range rendered {
			key := r.Keyer.ArtifactKey(renderHash, opts.ArtifactKeyOpts(format))
			if r.Cache.Set(ctx, key, data, cache.TTLArtifact) == nil {
				observability.Cache().OnCacheSet(ctx, "artifact", len(data))
			}
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *dungeon.Graph, pos layout.Positions, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, pos, opts)
	return artifacts, err
}

// Close releases the cache connection. The runner itself holds nothing else.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger gives option-less callers the runner's logger.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
