package graphio

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/delvemap/delvemap/pkg/dungeon"
	apperrors "github.com/delvemap/delvemap/pkg/errors"
)

// Graph is the canonical serialization format for dungeon graphs.
// Used for API requests and responses, storage, caching, and tool
// interchange.
//
// The format is human-readable and designed for round-trip fidelity:
// import → mutate → export → re-import produces an equivalent dungeon.
// Connections are stored once per passage with endpoints in ascending
// order, so two exports of the same dungeon are byte-identical.
type Graph struct {
	Rooms       []Room       `json:"rooms" bson:"rooms"`
	Connections []Connection `json:"connections" bson:"connections"`
}

// Room is the wire form of a dungeon room.
type Room struct {
	ID    string         `json:"id" bson:"id"`
	Type  string         `json:"type,omitempty" bson:"type,omitempty"`
	State string         `json:"state,omitempty" bson:"state,omitempty"`
	Meta  map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// Connection is the wire form of a bidirectional passage. A and B are
// interchangeable; the canonical form orders them ascending.
type Connection struct {
	A string `json:"a" bson:"a"`
	B string `json:"b" bson:"b"`
}

// Stats is the wire form of dungeon statistics.
type Stats struct {
	Rooms          int            `json:"rooms" bson:"rooms"`
	Connections    int            `json:"connections" bson:"connections"`
	AvgConnections float64        `json:"avg_connections" bson:"avg_connections"`
	Connected      bool           `json:"connected" bson:"connected"`
	ByType         map[string]int `json:"by_type,omitempty" bson:"by_type,omitempty"`
}

// FromStats converts core statistics to their wire form.
func FromStats(s dungeon.Stats) Stats {
	out := Stats{
		Rooms:          s.Rooms,
		Connections:    s.Connections,
		AvgConnections: s.AvgConnections,
		Connected:      s.Connected,
	}
	if len(s.ByType) > 0 {
		out.ByType = make(map[string]int, len(s.ByType))
		for t, n := range s.ByType {
			out.ByType[string(t)] = n
		}
	}
	return out
}

// FromDungeon converts a dungeon graph to its serialization format.
// Rooms are sorted by ID and each passage appears exactly once with
// endpoints in ascending order, so the output is deterministic.
func FromDungeon(g *dungeon.Graph) Graph {
	rooms := g.Rooms()

	out := Graph{
		Rooms: make([]Room, len(rooms)),
	}

	for i, r := range rooms {
		out.Rooms[i] = Room{
			ID:    r.ID,
			Type:  string(r.Type),
			State: string(r.State),
			Meta:  copyMeta(r.Meta),
		}
	}

	for _, r := range rooms {
		for _, n := range g.NeighborIDs(r.ID) {
			if r.ID < n {
				out.Connections = append(out.Connections, Connection{A: r.ID, B: n})
			}
		}
	}
	slices.SortFunc(out.Connections, func(a, b Connection) int {
		if c := cmp.Compare(a.A, b.A); c != 0 {
			return c
		}
		return cmp.Compare(a.B, b.B)
	})

	return out
}

// ToDungeon converts a serialized graph to a dungeon graph.
// Unlike the core's tolerant mutations, ingest is strict: duplicate room
// IDs, connections to unknown rooms, and self-connections are errors, so a
// malformed file is rejected rather than silently thinned out. Room IDs
// are also screened here because ingested IDs end up in DOT sources,
// cache keys, and URL paths.
func ToDungeon(gj Graph) (*dungeon.Graph, error) {
	g := dungeon.New(nil)

	for _, rj := range gj.Rooms {
		if err := apperrors.ValidateRoomID(rj.ID); err != nil {
			return nil, err
		}
		r := dungeon.Room{
			ID:    rj.ID,
			Type:  dungeon.RoomType(rj.Type),
			State: dungeon.RoomState(rj.State),
			Meta:  copyMeta(rj.Meta),
		}
		if err := g.AddRoomChecked(r); err != nil {
			return nil, fmt.Errorf("add room %s: %w", rj.ID, err)
		}
	}

	for _, cj := range gj.Connections {
		if err := g.ConnectChecked(cj.A, cj.B); err != nil {
			return nil, fmt.Errorf("connect %s-%s: %w", cj.A, cj.B, err)
		}
	}

	return g, nil
}

// copyMeta creates a shallow copy of metadata to avoid mutation.
func copyMeta(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
