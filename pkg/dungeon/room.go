package dungeon

import "slices"

// Metadata stores arbitrary key-value pairs attached to rooms or the graph.
// It is commonly used to carry generator annotations (seed, depth, loot table)
// or rendering hints. Metadata maps are never nil after insertion - they are
// automatically initialized to empty maps when needed.
type Metadata map[string]any

// RoomType classifies a room's role in the dungeon. The set is closed:
// generators and renderers switch over it exhaustively.
type RoomType string

const (
	// RoomStart is the room the party enters through. Consumers expect
	// exactly one per dungeon; the graph itself does not enforce cardinality.
	RoomStart RoomType = "start"
	// RoomNormal is a plain room with no special role.
	RoomNormal RoomType = "normal"
	// RoomTreasure holds loot.
	RoomTreasure RoomType = "treasure"
	// RoomShop holds a vendor.
	RoomShop RoomType = "shop"
	// RoomSecret is hidden until discovered.
	RoomSecret RoomType = "secret"
	// RoomBoss holds the boss encounter. Consumers expect at most one.
	RoomBoss RoomType = "boss"
)

// RoomTypes returns all known room types in display order.
func RoomTypes() []RoomType {
	return []RoomType{RoomStart, RoomNormal, RoomTreasure, RoomShop, RoomSecret, RoomBoss}
}

// Valid reports whether the type is a member of the closed set.
func (t RoomType) Valid() bool {
	return slices.Contains(RoomTypes(), t)
}

// RoomState tracks a room's gameplay progression. State is owned by
// generation and gameplay logic; the graph only stores and filters it.
type RoomState string

const (
	// StateLocked means the room cannot be entered yet.
	StateLocked RoomState = "locked"
	// StateUnlocked means the room can be entered but has not been cleared.
	StateUnlocked RoomState = "unlocked"
	// StateCleared means the room's content has been resolved.
	StateCleared RoomState = "cleared"
)

// RoomStates returns all known room states in progression order.
func RoomStates() []RoomState {
	return []RoomState{StateLocked, StateUnlocked, StateCleared}
}

// Valid reports whether the state is a member of the closed set.
func (s RoomState) Valid() bool {
	return slices.Contains(RoomStates(), s)
}

// Room represents a single room in the dungeon graph.
//
// The zero value is not usable - ID must be set before adding to a Graph.
// Type and State default to RoomNormal and StateUnlocked on insertion when
// left empty.
type Room struct {
	ID    string    // Unique identifier (also used as display label)
	Type  RoomType  // Role classification (never empty after AddRoom)
	State RoomState // Gameplay progression (never empty after AddRoom)
	Meta  Metadata  // Arbitrary key-value metadata (never nil after AddRoom)
}
