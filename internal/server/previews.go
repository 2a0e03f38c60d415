package server

import (
	"context"
	"sync"

	"github.com/delvemap/delvemap/pkg/graphio"
	"github.com/delvemap/delvemap/pkg/pipeline"
	"github.com/delvemap/delvemap/pkg/render"
	"github.com/delvemap/delvemap/pkg/store"
)

// previewPNGSize is the edge of the square PNG thumbnail, in pixels.
const previewPNGSize = 512

// previewRegistry holds one preview holder per dungeon ID.
type previewRegistry struct {
	mu      sync.Mutex
	holders map[string]*render.PreviewHolder
}

func newPreviewRegistry() *previewRegistry {
	return &previewRegistry{holders: make(map[string]*render.PreviewHolder)}
}

// holder returns the holder for a dungeon, creating it on first use.
func (p *previewRegistry) holder(id string) *render.PreviewHolder {
	p.mu.Lock()
	defer p.mu.Unlock()
	h, ok := p.holders[id]
	if !ok {
		h = &render.PreviewHolder{}
		p.holders[id] = h
	}
	return h
}

// invalidate flags a dungeon's current preview stale. Dungeons that never
// rendered one have no holder, and none is created for them.
func (p *previewRegistry) invalidate(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if h, ok := p.holders[id]; ok {
		h.Invalidate()
	}
}

// drop discards the holder for a deleted dungeon. The preview is cleared
// first so a request that already fetched the holder stops serving it.
func (p *previewRegistry) drop(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if h, ok := p.holders[id]; ok {
		h.Clear()
		delete(p.holders, id)
	}
}

// preview returns the current preview for a snapshot, rendering and
// publishing a fresh one when none exists or the held one is stale.
// Overlapping requests for the same dungeon may render concurrently; the
// holder publishes whole artifacts, so readers never observe a partial one.
func (s *Server) preview(ctx context.Context, snap *store.Snapshot) (*render.Preview, error) {
	h := s.previews.holder(snap.ID)
	if p := h.Load(); p != nil && !p.Stale {
		return p, nil
	}

	g, err := graphio.ToDungeon(snap.Graph)
	if err != nil {
		return nil, err
	}

	opts := pipeline.Options{
		Formats:     []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatMinimap},
		Width:       s.cfg.Width,
		Height:      s.cfg.Height,
		MinimapSize: s.cfg.MinimapSize,
		Logger:      s.logger,
	}

	pos, provider, err := s.runner.ComputeLayout(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	artifacts, err := s.runner.Render(ctx, g, pos, opts)
	if err != nil {
		return nil, err
	}
	thumb, err := render.SquarePNG(artifacts[pipeline.FormatPNG], previewPNGSize)
	if err != nil {
		return nil, err
	}

	p := &render.Preview{
		SVG:            artifacts[pipeline.FormatSVG],
		PNG:            thumb,
		Minimap:        artifacts[pipeline.FormatMinimap],
		LayoutProvider: provider,
	}
	h.Publish(p)
	s.logger.Debug("preview published", "dungeon", snap.ID, "provider", provider)
	return p, nil
}
