// Package observability lets a binary watch the pipeline, the caches, and
// the snapshot store without coupling the libraries to any metrics backend.
//
// The libraries emit events through small hook interfaces that default to
// no-ops. A binary that wants metrics registers implementations once at
// startup:
//
//	observability.SetPipelineHooks(&promPipelineHooks{})
//	observability.SetCacheHooks(&promCacheHooks{})
//
// and the emit sites stay unconditional:
//
//	observability.Pipeline().OnLayoutStart(ctx, provider, rooms)
//
// Registration flows from main toward the libraries, never the other way,
// so pkg/pipeline and friends carry no backend imports and no cycles.
// Embed the Noop types to implement only the events you care about.
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks observes the three pipeline stages. Each stage emits a
// start event and a completion event carrying the elapsed time and the
// error, if any.
type PipelineHooks interface {
	OnGenerateStart(ctx context.Context, rooms int, seed int64)
	OnGenerateComplete(ctx context.Context, rooms, attempts int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, provider string, roomCount int)
	OnLayoutComplete(ctx context.Context, provider string, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks observes cache traffic. keyType distinguishes the layout
// cache from the artifact cache.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// StoreHooks observes snapshot store operations, emitted by the
// instrumented store wrapper.
type StoreHooks interface {
	OnStorePut(ctx context.Context, id string, duration time.Duration, err error)
	OnStoreGet(ctx context.Context, id string, found bool, duration time.Duration)
	OnStoreDelete(ctx context.Context, id string, err error)
}

// NoopPipelineHooks discards all pipeline events. Embed it to implement
// PipelineHooks partially.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnGenerateStart(context.Context, int, int64)                        {}
func (NoopPipelineHooks) OnGenerateComplete(context.Context, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                         {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error)     {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                            {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)   {}

// NoopCacheHooks discards all cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopStoreHooks discards all store events.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnStorePut(context.Context, string, time.Duration, error) {}
func (NoopStoreHooks) OnStoreGet(context.Context, string, bool, time.Duration)  {}
func (NoopStoreHooks) OnStoreDelete(context.Context, string, error)             {}

// registry holds the active hooks. Reads vastly outnumber writes, so a
// single RWMutex over the whole set is enough.
type registry struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	store    StoreHooks
}

var reg = registry{
	pipeline: NoopPipelineHooks{},
	cache:    NoopCacheHooks{},
	store:    NoopStoreHooks{},
}

// SetPipelineHooks registers pipeline hooks. Call once at startup, before
// the first pipeline run; nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	reg.mu.Lock()
	reg.pipeline = h
	reg.mu.Unlock()
}

// SetCacheHooks registers cache hooks. Call once at startup; nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	reg.mu.Lock()
	reg.cache = h
	reg.mu.Unlock()
}

// SetStoreHooks registers store hooks. Call once at startup; nil is ignored.
func SetStoreHooks(h StoreHooks) {
	if h == nil {
		return
	}
	reg.mu.Lock()
	reg.store = h
	reg.mu.Unlock()
}

// Pipeline returns the active pipeline hooks.
func Pipeline() PipelineHooks {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.pipeline
}

// Cache returns the active cache hooks.
func Cache() CacheHooks {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.cache
}

// StoreObserver returns the active store hooks.
func StoreObserver() StoreHooks {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.store
}

// Reset restores the no-op defaults. Tests use it to unregister hooks.
func Reset() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.pipeline = NoopPipelineHooks{}
	reg.cache = NoopCacheHooks{}
	reg.store = NoopStoreHooks{}
}
