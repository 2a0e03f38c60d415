// Package gen provides seeded procedural generation of dungeon graphs.
//
// The generator builds a random spanning tree over the requested number of
// rooms (so every layout starts connected), adds loop passages for
// non-linearity, then assigns roles: the first room becomes the start, the
// room farthest from it becomes the boss lair, and treasure, shop, and
// secret rooms are sprinkled over the rest. Secret rooms are trimmed to a
// single passage so they read as hidden dead ends.
//
// Trimming can strand rooms whose only route passed through a secret room,
// so every candidate layout is checked with the connectivity gate before it
// is accepted. Rejected layouts are cleared and regenerated; the random
// source persists across attempts, so a fixed seed still converges while
// remaining fully reproducible.
//
//	g, err := gen.Generate(gen.Options{Rooms: 12, Seed: 99})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(g.Stats())
package gen

import (
	"fmt"
	"io"
	"math/rand"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/delvemap/delvemap/pkg/dungeon"
	apperrors "github.com/delvemap/delvemap/pkg/errors"
)

// Default values for generator options.
const (
	// DefaultRooms is the default room count for a generated dungeon.
	DefaultRooms = 12

	// DefaultExtraLoops is the default number of loop passages added on top
	// of the spanning tree.
	DefaultExtraLoops = 2

	// DefaultMaxAttempts bounds how many candidate layouts are tried before
	// generation gives up. Secret-room trimming rarely disconnects more than
	// one attempt in a row.
	DefaultMaxAttempts = 8

	// MaxRooms caps dungeon size. Larger requests are rejected rather than
	// silently truncated.
	MaxRooms = 1000
)

// Metadata keys written onto generated graphs.
const (
	// MetaID holds the generated dungeon's UUID.
	MetaID = "id"
	// MetaSeed holds the seed the layout was generated from, as int64.
	MetaSeed = "seed"
	// MetaAttempts holds how many candidate layouts were tried, as int.
	MetaAttempts = "attempts"
)

// Options configures dungeon generation.
// This struct supports JSON serialization for API requests.
type Options struct {
	Rooms      int   `json:"rooms,omitempty"`       // Total room count (default 12)
	ExtraLoops int   `json:"extra_loops,omitempty"` // Loop passages beyond the spanning tree (default 2)
	Treasures  int   `json:"treasures,omitempty"`   // Treasure room count (default scales with size)
	Shops      int   `json:"shops,omitempty"`       // Shop room count (default 1 for larger dungeons)
	Secrets    int   `json:"secrets,omitempty"`     // Secret room count (default scales with size)
	Seed       int64 `json:"seed,omitempty"`        // Random seed (0 = derive from clock)

	// MaxAttempts bounds the accept-or-retry loop (default 8).
	MaxAttempts int `json:"max_attempts,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once. A zero Seed is replaced with a clock-derived one, so
// the effective seed is always recorded on the generated graph.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Rooms < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "rooms must not be negative")
	}
	if o.Rooms > MaxRooms {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "rooms must not exceed %d", MaxRooms)
	}
	if o.ExtraLoops < 0 || o.Treasures < 0 || o.Shops < 0 || o.Secrets < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "counts must not be negative")
	}
	if o.Rooms == 0 {
		o.Rooms = DefaultRooms
	}
	if o.ExtraLoops == 0 {
		o.ExtraLoops = DefaultExtraLoops
	}
	if o.Treasures == 0 {
		o.Treasures = o.Rooms / 6
	}
	if o.Shops == 0 && o.Rooms >= 10 {
		o.Shops = 1
	}
	if o.Secrets == 0 {
		o.Secrets = o.Rooms / 8
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if specials := 2 + o.Treasures + o.Shops + o.Secrets; specials > o.Rooms {
		return apperrors.New(apperrors.ErrCodeInvalidInput,
			"dungeon too small: %d rooms cannot hold %d special rooms", o.Rooms, specials)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Generate builds a dungeon graph from the options. The returned graph is
// always connected and carries its ID, seed, and attempt count in the
// graph-level metadata. Returns an error when options are invalid or no
// acceptable layout was found within MaxAttempts.
func Generate(opts Options) (*dungeon.Graph, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	g := dungeon.New(dungeon.Metadata{
		MetaID:   uuid.NewString(),
		MetaSeed: opts.Seed,
	})

	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		build(g, rng, opts)
		if g.IsConnected() {
			g.Meta()[MetaAttempts] = attempt
			opts.Logger.Debug("dungeon accepted",
				"rooms", g.RoomCount(), "connections", g.ConnectionCount(),
				"seed", opts.Seed, "attempt", attempt)
			return g, nil
		}
		opts.Logger.Debug("layout rejected by connectivity gate",
			"attempt", attempt, "components", len(g.Components()))
		g.Clear()
	}

	return nil, apperrors.New(apperrors.ErrCodeGenerationFailed,
		"no connected layout in %d attempts (seed %d)", opts.MaxAttempts, opts.Seed)
}

// build carves one candidate layout into g. The caller owns acceptance.
func build(g *dungeon.Graph, rng *rand.Rand, opts Options) {
	ids := roomIDs(opts.Rooms)

	for _, id := range ids {
		g.AddRoom(dungeon.Room{ID: id})
	}

	// Random attachment tree: every room links to an earlier one, which
	// guarantees the pre-trim layout is connected.
	for i := 1; i < len(ids); i++ {
		g.Connect(ids[i], ids[rng.Intn(i)])
	}

	// Loop passages break up the tree shape. Dense dungeons may not have
	// room for all of them; a handful of draws per loop is enough.
	for range opts.ExtraLoops {
		for range 10 {
			a, b := ids[rng.Intn(len(ids))], ids[rng.Intn(len(ids))]
			if a != b && !g.Connected(a, b) {
				g.Connect(a, b)
				break
			}
		}
	}

	// Secrets are placed and trimmed before the boss is chosen: trimming
	// reroutes paths, and the boss distance must hold in the final layout.
	pool := slices.Clone(ids[1:])
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	for _, id := range pool[:opts.Secrets] {
		if r, ok := g.Room(id); ok {
			r.Type = dungeon.RoomSecret
		}
	}
	trimSecrets(g, rng)

	if r, ok := g.Room(ids[0]); ok {
		r.Type = dungeon.RoomStart
		r.State = dungeon.StateCleared
	}

	// The boss lairs in the room farthest from the entrance, behind a lock.
	// Secret dead ends are not eligible: the boss must be on the open map.
	bossID := farthestEligible(g, ids[0])
	if r, ok := g.Room(bossID); ok {
		r.Type = dungeon.RoomBoss
		r.State = dungeon.StateLocked
	}

	rest := pool[opts.Secrets:]
	assign := func(n int, t dungeon.RoomType) {
		for ; n > 0 && len(rest) > 0; rest = rest[1:] {
			if rest[0] == bossID {
				continue
			}
			if r, ok := g.Room(rest[0]); ok {
				r.Type = t
				n--
			}
		}
	}
	assign(opts.Treasures, dungeon.RoomTreasure)
	assign(opts.Shops, dungeon.RoomShop)
}

// farthestEligible returns the plain room at the greatest distance from
// start, ties broken by ID order. Returns "" when no plain room is
// reachable, in which case the layout is about to fail the gate anyway.
func farthestEligible(g *dungeon.Graph, start string) string {
	bossID, bossDist := "", 0
	for _, r := range g.Rooms() {
		if r.ID == start || r.Type == dungeon.RoomSecret {
			continue
		}
		if d := g.Distance(start, r.ID); d > bossDist {
			bossID, bossDist = r.ID, d
		}
	}
	return bossID
}

// trimSecrets reduces each secret room to a single passage so it reads as a
// hidden dead end. Trimming can orphan rooms that routed through a secret
// room - the connectivity gate catches that.
func trimSecrets(g *dungeon.Graph, rng *rand.Rand) {
	for _, r := range g.RoomsByType(dungeon.RoomSecret) {
		neighbors := g.NeighborIDs(r.ID)
		if len(neighbors) <= 1 {
			continue
		}
		keep := neighbors[rng.Intn(len(neighbors))]
		for _, n := range neighbors {
			if n != keep {
				g.Disconnect(r.ID, n)
			}
		}
	}
}

// roomIDs returns zero-padded identifiers so lexicographic and numeric
// order agree in listings and renders.
func roomIDs(n int) []string {
	width := len(strconv.Itoa(n))
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("room-%0*d", width, i+1)
	}
	return ids
}
