package layout

import (
	"context"
	"math"
	"slices"

	"github.com/delvemap/delvemap/pkg/dungeon"
)

// circleRadius keeps the ring inside the unit square with a small border.
const circleRadius = 0.45

// Circular places rooms evenly on a circle. It needs no external tooling,
// always succeeds, and is fully deterministic: rooms are ordered by ID and
// the ring is rotated so the start room (when present) sits at angle zero.
// It is the fallback at the end of [Default].
type Circular struct{}

// NewCircular creates the circular provider.
func NewCircular() *Circular {
	return &Circular{}
}

// Name identifies the provider.
func (p *Circular) Name() string { return "circular" }

// Available always reports true.
func (p *Circular) Available() bool { return true }

// Layout places rooms on the ring.
func (p *Circular) Layout(ctx context.Context, g *dungeon.Graph) (Positions, error) {
	ids := dungeon.RoomIDs(g.Rooms())
	n := len(ids)

	switch n {
	case 0:
		return Positions{}, nil
	case 1:
		return Positions{ids[0]: {X: 0.5, Y: 0.5}}, nil
	}

	// Rotate the sorted order so the start room leads.
	if start, ok := g.StartRoom(); ok {
		if i := slices.Index(ids, start.ID); i > 0 {
			rotated := make([]string, 0, n)
			rotated = append(rotated, ids[i:]...)
			rotated = append(rotated, ids[:i]...)
			ids = rotated
		}
	}

	pos := make(Positions, n)
	for i, id := range ids {
		angle := 2.0 * math.Pi * float64(i) / float64(n)
		pos[id] = Point{
			X: 0.5 + circleRadius*math.Cos(angle),
			Y: 0.5 + circleRadius*math.Sin(angle),
		}
	}
	return pos, nil
}

// Ensure Circular implements Provider.
var _ Provider = (*Circular)(nil)
