package pipeline

import (
	"context"
	"time"

	"github.com/delvemap/delvemap/pkg/dungeon"
	"github.com/delvemap/delvemap/pkg/dungeon/gen"
	apperrors "github.com/delvemap/delvemap/pkg/errors"
	"github.com/delvemap/delvemap/pkg/observability"
)

// =============================================================================
// Source Stage
// =============================================================================

// Source returns the dungeon the pipeline will run over. A supplied graph
// must pass the connectivity gate; otherwise a fresh dungeon is generated,
// which gates internally.
func (r *Runner) Source(ctx context.Context, opts Options) (*dungeon.Graph, error) {
	r.applyLogger(&opts)

	if opts.Graph != nil {
		if !opts.Graph.IsConnected() {
			return nil, apperrors.New(apperrors.ErrCodeNotConnected,
				"dungeon splits into %d components", len(opts.Graph.Components()))
		}
		return opts.Graph, nil
	}

	genOpts := opts.Generate
	if genOpts.Logger == nil {
		genOpts.Logger = opts.Logger
	}

	observability.Pipeline().OnGenerateStart(ctx, genOpts.Rooms, genOpts.Seed)
	start := time.Now()
	g, err := gen.Generate(genOpts)

	rooms, attempts := 0, 0
	if g != nil {
		rooms = g.RoomCount()
		if n, ok := g.Meta()[gen.MetaAttempts].(int); ok {
			attempts = n
		}
	}
	observability.Pipeline().OnGenerateComplete(ctx, rooms, attempts, time.Since(start), err)

	return g, err
}
