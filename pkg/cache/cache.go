// Package cache provides caching for layout and render results.
//
// Layout computation and rendering are the slow parts of the preview
// pipeline, and both are pure functions of the dungeon graph plus options.
// Results are therefore cached under content-hash keys: the same dungeon
// rendered twice costs one layout and one render.
//
// Three backends implement the [Cache] interface:
//
//   - [FileCache]: persistent on-disk cache for CLI usage
//   - [RedisCache]: shared cache for service deployments
//   - [NullCache]: no-op cache for tests and --no-cache runs
//
// Keys are built by a [Keyer] so every component derives them identically.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// TTL values for cached entries. Layouts and artifacts are content-addressed,
// so expiry exists only to bound disk usage, not for correctness.
const (
	// DefaultTTL is applied when callers pass no explicit TTL policy.
	DefaultTTL = 30 * 24 * time.Hour

	// TTLLayout is the lifetime of cached layout positions.
	TTLLayout = DefaultTTL

	// TTLArtifact is the lifetime of cached rendered artifacts.
	TTLArtifact = DefaultTTL
)

// Cache is the interface all cache backends implement.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present; absence is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the option fields that influence layout positions.
// Any field that changes the computed positions must appear here, or stale
// layouts will be served. Positions are normalized to the unit square, so
// frame dimensions do not belong here.
type LayoutKeyOpts struct {
	Provider string // Layout provider name ("graphviz", "circular")
}

// ArtifactKeyOpts are the option fields that influence rendered output.
type ArtifactKeyOpts struct {
	Format      string  // Output format ("svg", "png", "minimap", "dot")
	Width       float64 // Frame width in pixels
	Height      float64 // Frame height in pixels
	Detailed    bool    // Whether labels carry degree and state
	MinimapSize int     // Square minimap edge length in pixels
	Scale       float64 // Raster scale factor
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey generates a key for layout positions derived from the
	// graph content hash and layout options.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact derived from the
	// layout hash and render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)

// Hash returns the hex SHA-256 of data. The pipeline hashes a dungeon's
// canonical JSON to obtain its content address, so equal dungeons share
// cache entries no matter where they came from.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey derives a namespaced key of the form "prefix:hex". The parts are
// JSON-encoded before hashing, which keeps struct option sets order-stable.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// NullCache discards writes and misses every read. It stands in wherever
// caching is turned off: --no-cache runs, the "none" backend, and tests
// that need cold-path behavior.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return &NullCache{} }

func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (c *NullCache) Delete(ctx context.Context, key string) error { return nil }

func (c *NullCache) Close() error { return nil }

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
