package dungeon

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidRoomID is returned by [Graph.AddRoomChecked] when the room ID
	// is empty. All rooms must have non-empty identifiers.
	ErrInvalidRoomID = errors.New("room ID must not be empty")

	// ErrDuplicateRoomID is returned by [Graph.AddRoomChecked] when a room
	// with the same ID already exists in the graph. Room IDs must be unique.
	ErrDuplicateRoomID = errors.New("duplicate room ID")

	// ErrUnknownRoom is returned by [Graph.ConnectChecked] and
	// [Graph.DisconnectChecked] when an endpoint does not exist in the graph.
	ErrUnknownRoom = errors.New("unknown room")

	// ErrSelfConnection is returned by [Graph.ConnectChecked] when both
	// endpoints name the same room. Rooms never connect to themselves.
	ErrSelfConnection = errors.New("room cannot connect to itself")
)

// Graph is an undirected room-connectivity graph for a single dungeon.
// Rooms are vertices; bidirectional passages between them are edges, stored
// as symmetric adjacency sets. The graph never contains self-loops, and every
// adjacency entry refers to a room that exists.
//
// Mutations are tolerant: operations referring to unknown rooms, duplicate
// IDs, or self-connections are silent no-ops, so generation code can speak
// optimistically while the graph keeps itself consistent. Use the Checked
// variants when a caller wants those conditions surfaced.
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent mutation. Once building is done, any
// number of goroutines may read it concurrently.
type Graph struct {
	rooms map[string]*Room
	adj   map[string]map[string]struct{}
	meta  Metadata
}

// New creates an empty dungeon graph with optional graph-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
// Graph-level metadata is typically used to store generator parameters.
func New(meta Metadata) *Graph {
	if meta == nil {
		meta = Metadata{}
	}
	return &Graph{
		rooms: make(map[string]*Room),
		adj:   make(map[string]map[string]struct{}),
		meta:  meta,
	}
}

// Meta returns the graph-level metadata map.
// The returned map is never nil and can be safely modified.
func (g *Graph) Meta() Metadata { return g.meta }

// ====== Mutations ======

// AddRoom adds a room to the graph. Rooms with an empty ID are ignored, and
// when a room with the same ID already exists the first insertion wins - the
// existing record is left untouched. The room's Meta field is initialized to
// an empty map if nil, and empty Type/State default to RoomNormal/StateUnlocked.
func (g *Graph) AddRoom(r Room) {
	_ = g.AddRoomChecked(r)
}

// AddRoomChecked adds a room to the graph and reports why insertion was
// refused. Returns ErrInvalidRoomID if the room ID is empty, or
// ErrDuplicateRoomID if a room with the same ID already exists (the existing
// record is left untouched either way).
func (g *Graph) AddRoomChecked(r Room) error {
	if r.ID == "" {
		return ErrInvalidRoomID
	}
	if _, exists := g.rooms[r.ID]; exists {
		return ErrDuplicateRoomID
	}
	if r.Type == "" {
		r.Type = RoomNormal
	}
	if r.State == "" {
		r.State = StateUnlocked
	}
	if r.Meta == nil {
		r.Meta = Metadata{}
	}
	room := &r
	g.rooms[room.ID] = room
	g.adj[room.ID] = make(map[string]struct{})
	return nil
}

// Connect creates a bidirectional passage between two rooms. The connection
// is recorded symmetrically in both adjacency sets. Unknown endpoints and
// self-connections are silently ignored; connecting two already-connected
// rooms is a no-op.
func (g *Graph) Connect(a, b string) {
	_ = g.ConnectChecked(a, b)
}

// ConnectChecked creates a bidirectional passage between two rooms and
// reports why the connection was refused. Returns ErrUnknownRoom if either
// endpoint does not exist, or ErrSelfConnection if both endpoints name the
// same room. Connecting two already-connected rooms is idempotent success.
func (g *Graph) ConnectChecked(a, b string) error {
	if a == b {
		return ErrSelfConnection
	}
	if _, ok := g.rooms[a]; !ok {
		return ErrUnknownRoom
	}
	if _, ok := g.rooms[b]; !ok {
		return ErrUnknownRoom
	}
	g.adj[a][b] = struct{}{}
	g.adj[b][a] = struct{}{}
	return nil
}

// Disconnect removes the passage between two rooms from both adjacency sets.
// Unknown endpoints and absent connections are silently ignored.
func (g *Graph) Disconnect(a, b string) {
	_ = g.DisconnectChecked(a, b)
}

// DisconnectChecked removes the passage between two rooms and reports why
// removal was refused. Returns ErrUnknownRoom if either endpoint does not
// exist. Removing an absent connection between known rooms is idempotent
// success.
func (g *Graph) DisconnectChecked(a, b string) error {
	if _, ok := g.rooms[a]; !ok {
		return ErrUnknownRoom
	}
	if _, ok := g.rooms[b]; !ok {
		return ErrUnknownRoom
	}
	delete(g.adj[a], b)
	delete(g.adj[b], a)
	return nil
}

// Clear removes all rooms and connections, resetting the graph to empty.
// Graph-level metadata is preserved. Typically used when a generated layout
// fails the connectivity gate and the attempt is discarded for a retry.
func (g *Graph) Clear() {
	g.rooms = make(map[string]*Room)
	g.adj = make(map[string]map[string]struct{})
}

// ====== Queries ======

// Room returns the room with the given ID and true, or nil and false if not
// found. The returned pointer refers to the actual room in the graph, so
// State and Meta modifications affect the graph.
func (g *Graph) Room(id string) (*Room, bool) {
	r, ok := g.rooms[id]
	return r, ok
}

// Rooms returns all rooms in the graph sorted by ID.
// The returned slice contains pointers to the actual room structs, so
// modifications affect the graph.
func (g *Graph) Rooms() []*Room {
	ids := slices.Sorted(maps.Keys(g.rooms))
	rooms := make([]*Room, len(ids))
	for i, id := range ids {
		rooms[i] = g.rooms[id]
	}
	return rooms
}

// RoomCount returns the number of rooms in the graph.
func (g *Graph) RoomCount() int { return len(g.rooms) }

// ConnectionCount returns the number of distinct passages in the graph.
// Each bidirectional connection is counted once, so this is half the sum
// of all adjacency set sizes.
func (g *Graph) ConnectionCount() int {
	total := 0
	for _, neighbors := range g.adj {
		total += len(neighbors)
	}
	return total / 2
}

// NeighborIDs returns the IDs of rooms directly connected to the given room,
// sorted ascending. Returns an empty slice if the room has no neighbors or
// doesn't exist.
func (g *Graph) NeighborIDs(id string) []string {
	return slices.Sorted(maps.Keys(g.adj[id]))
}

// Neighbors returns the rooms directly connected to the given room, sorted
// by ID. Returns an empty slice if the room has no neighbors or doesn't
// exist. The returned slice contains pointers to the actual room structs.
func (g *Graph) Neighbors(id string) []*Room {
	ids := g.NeighborIDs(id)
	rooms := make([]*Room, len(ids))
	for i, nid := range ids {
		rooms[i] = g.rooms[nid]
	}
	return rooms
}

// Connected reports whether a direct passage exists between the two rooms.
// Returns false if either room doesn't exist.
func (g *Graph) Connected(a, b string) bool {
	_, ok := g.adj[a][b]
	return ok
}

// Degree returns the number of passages attached to the room.
// Returns 0 if the room doesn't exist.
func (g *Graph) Degree(id string) int { return len(g.adj[id]) }

// RoomsByType returns all rooms of the given type, sorted by ID.
// Returns an empty slice if no rooms match.
func (g *Graph) RoomsByType(t RoomType) []*Room {
	var rooms []*Room
	for _, r := range g.Rooms() {
		if r.Type == t {
			rooms = append(rooms, r)
		}
	}
	return rooms
}

// RoomsByState returns all rooms in the given state, sorted by ID.
// Returns an empty slice if no rooms match.
func (g *Graph) RoomsByState(s RoomState) []*Room {
	var rooms []*Room
	for _, r := range g.Rooms() {
		if r.State == s {
			rooms = append(rooms, r)
		}
	}
	return rooms
}

// StartRoom returns the dungeon's entry room and true, or nil and false if
// no start room exists. If the graph holds more than one start room the
// choice between them is arbitrary.
func (g *Graph) StartRoom() (*Room, bool) { return g.firstOfType(RoomStart) }

// BossRoom returns the dungeon's boss room and true, or nil and false if no
// boss room exists. If the graph holds more than one boss room the choice
// between them is arbitrary.
func (g *Graph) BossRoom() (*Room, bool) { return g.firstOfType(RoomBoss) }

func (g *Graph) firstOfType(t RoomType) (*Room, bool) {
	for _, r := range g.rooms {
		if r.Type == t {
			return r, true
		}
	}
	return nil, false
}

// RoomIDs extracts the ID from each room in a slice.
// Returns a new slice containing the IDs in the same order as the input.
// Returns an empty slice for a nil or empty input.
func RoomIDs(rooms []*Room) []string {
	ids := make([]string, len(rooms))
	for i, r := range rooms {
		ids[i] = r.ID
	}
	return ids
}
