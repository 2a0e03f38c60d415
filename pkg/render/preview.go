package render

import (
	"sync/atomic"
	"time"
)

// Preview bundles the rendered artifacts a viewer needs for one dungeon.
type Preview struct {
	SVG            []byte    `json:"-"`
	PNG            []byte    `json:"-"`
	Minimap        []byte    `json:"-"`
	GeneratedAt    time.Time `json:"generated_at"`
	LayoutProvider string    `json:"layout_provider"`

	// Stale marks a preview whose dungeon has mutated since rendering.
	// Stale previews are still served; they are simply flagged so clients
	// can request a refresh.
	Stale bool `json:"stale"`
}

// PreviewHolder publishes previews atomically. A single writer calls
// [PreviewHolder.Publish] after rendering; any number of readers call
// [PreviewHolder.Load] concurrently and observe either the previous or the
// new preview, never a partial one. The zero value is ready to use.
type PreviewHolder struct {
	p atomic.Pointer[Preview]
}

// Publish replaces the current preview. The preview must not be modified
// after publishing. A zero GeneratedAt is stamped with the current time.
func (h *PreviewHolder) Publish(p *Preview) {
	if p != nil && p.GeneratedAt.IsZero() {
		p.GeneratedAt = time.Now()
	}
	h.p.Store(p)
}

// Load returns the current preview, or nil when none has been published.
func (h *PreviewHolder) Load() *Preview {
	return h.p.Load()
}

// Invalidate flags the current preview as stale without discarding it.
// Readers keep getting the old artifact until a new one is published.
// Racing with a concurrent Publish never resurrects an older preview.
func (h *PreviewHolder) Invalidate() {
	for {
		cur := h.p.Load()
		if cur == nil || cur.Stale {
			return
		}
		stale := *cur
		stale.Stale = true
		if h.p.CompareAndSwap(cur, &stale) {
			return
		}
	}
}

// Clear drops the current preview entirely.
func (h *PreviewHolder) Clear() {
	h.p.Store(nil)
}
