// Package store persists accepted dungeon snapshots.
//
// A [Snapshot] is a dungeon frozen at save time: the serialized graph, the
// statistics computed from it, and bookkeeping fields. Two backends
// implement the [Store] interface:
//
//   - memory: in-process map for CLI runs and tests
//   - mongo: MongoDB-backed storage for service deployments
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Production
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{
//	    URI:      "mongodb://localhost:27017",
//	    Database: "delvemap",
//	})
//
// Persist and retrieve:
//
//	snap := store.NewSnapshot("catacombs", seed, g)
//	if err := st.Put(ctx, snap); err != nil {
//	    return err
//	}
//	snap, err := st.Get(ctx, snap.ID)
//	if errors.Is(err, store.ErrNotFound) {
//	    // no such dungeon
//	}
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/delvemap/delvemap/pkg/dungeon"
	"github.com/delvemap/delvemap/pkg/graphio"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when no snapshot exists under the given ID.
	ErrNotFound = errors.New("snapshot not found")

	// ErrInvalidID is returned when a snapshot carries an empty ID.
	ErrInvalidID = errors.New("snapshot ID must not be empty")
)

// Snapshot is a stored dungeon. The same struct is the JSON API body and
// the MongoDB document, so fields carry both tag sets.
type Snapshot struct {
	ID        string        `json:"id" bson:"_id"`
	Name      string        `json:"name,omitempty" bson:"name,omitempty"`
	Seed      int64         `json:"seed,omitempty" bson:"seed,omitempty"`
	Graph     graphio.Graph `json:"graph" bson:"graph"`
	Stats     graphio.Stats `json:"stats" bson:"stats"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}

// NewSnapshot freezes a dungeon into a snapshot with a fresh UUID and the
// current timestamp.
func NewSnapshot(name string, seed int64, g *dungeon.Graph) *Snapshot {
	return &Snapshot{
		ID:        uuid.NewString(),
		Name:      name,
		Seed:      seed,
		Graph:     graphio.FromDungeon(g),
		Stats:     graphio.FromStats(g.Stats()),
		CreatedAt: time.Now().UTC(),
	}
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Put inserts or replaces a snapshot under its ID. A zero CreatedAt
	// is stamped with the current time.
	Put(ctx context.Context, s *Snapshot) error

	// Get retrieves a snapshot by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Snapshot, error)

	// Delete removes a snapshot. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// List returns all snapshots, newest first.
	List(ctx context.Context) ([]*Snapshot, error)

	// Close releases backend resources.
	Close() error
}
