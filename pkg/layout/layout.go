package layout

import (
	"context"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/delvemap/delvemap/pkg/dungeon"
	apperrors "github.com/delvemap/delvemap/pkg/errors"
)

// Point is a room position normalized to the unit square. (0,0) is the
// top-left corner of the frame, (1,1) the bottom-right.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Positions maps room IDs to their placed coordinates.
type Positions map[string]Point

// Provider computes positions for a dungeon graph.
type Provider interface {
	// Name identifies the provider in logs, cache keys, and previews.
	Name() string

	// Available reports whether the provider can run in this environment.
	Available() bool

	// Layout places every room of g. The result contains exactly one entry
	// per room, normalized to the unit square.
	Layout(ctx context.Context, g *dungeon.Graph) (Positions, error)
}

// ====== Provider chain ======

// Chain tries providers in order and serves the first one that succeeds.
// A failed or unavailable provider downgrades to the next with a logged
// warning, so callers always get positions as long as one provider works.
type Chain struct {
	providers []Provider
	logger    *log.Logger
}

// NewChain creates a chain over the given providers. A nil logger discards
// downgrade warnings.
func NewChain(logger *log.Logger, providers ...Provider) *Chain {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Chain{providers: providers, logger: logger}
}

// Default returns the standard chain: Graphviz when the engine is available,
// with the deterministic Circular fallback behind it.
func Default(logger *log.Logger) *Chain {
	return NewChain(logger, NewGraphviz(), NewCircular())
}

// Name identifies the chain itself. The name of the provider that actually
// produced positions is reported by [Chain.LayoutWith].
func (c *Chain) Name() string { return "chain" }

// Available reports whether any provider in the chain can run.
func (c *Chain) Available() bool {
	for _, p := range c.providers {
		if p.Available() {
			return true
		}
	}
	return false
}

// Providers returns the chain members in fallback order.
func (c *Chain) Providers() []Provider {
	return c.providers
}

// Layout runs the chain and returns the first successful result.
func (c *Chain) Layout(ctx context.Context, g *dungeon.Graph) (Positions, error) {
	pos, _, err := c.LayoutWith(ctx, g)
	return pos, err
}

// LayoutWith runs the chain and additionally reports the name of the
// provider that produced the positions.
func (c *Chain) LayoutWith(ctx context.Context, g *dungeon.Graph) (Positions, string, error) {
	var lastErr error
	for _, p := range c.providers {
		if !p.Available() {
			c.logger.Debug("layout provider unavailable", "provider", p.Name())
			continue
		}
		pos, err := p.Layout(ctx, g)
		if err != nil {
			lastErr = err
			c.logger.Warn("layout provider failed, trying next", "provider", p.Name(), "error", err)
			continue
		}
		return pos, p.Name(), nil
	}
	if lastErr != nil {
		return nil, "", lastErr
	}
	return nil, "", apperrors.New(apperrors.ErrCodeLayoutUnavailable, "no layout provider available")
}

// Ensure Chain implements Provider.
var _ Provider = (*Chain)(nil)

// ====== Normalization ======

// normalize fits raw coordinates into the unit square, preserving aspect
// ratio and centering the shorter axis. Y grows downward in the result so
// positions map directly onto screen space.
func normalize(raw Positions) Positions {
	if len(raw) == 0 {
		return Positions{}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range raw {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		// All rooms at one point: park everything in the center.
		out := make(Positions, len(raw))
		for id := range raw {
			out[id] = Point{X: 0.5, Y: 0.5}
		}
		return out
	}

	offX := (1 - (maxX-minX)/span) / 2
	offY := (1 - (maxY-minY)/span) / 2

	out := make(Positions, len(raw))
	for id, p := range raw {
		out[id] = Point{
			X: offX + (p.X-minX)/span,
			Y: offY + (maxY-p.Y)/span, // flip: graphviz Y grows upward
		}
	}
	return out
}
