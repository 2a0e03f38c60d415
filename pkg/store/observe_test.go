package store

import (
	"context"
	"testing"
	"time"

	"github.com/delvemap/delvemap/pkg/observability"
)

// recordingStoreHooks captures store events for assertions.
type recordingStoreHooks struct {
	observability.NoopStoreHooks
	puts    []string
	gets    map[string]bool
	deletes []string
}

func (h *recordingStoreHooks) OnStorePut(_ context.Context, id string, _ time.Duration, _ error) {
	h.puts = append(h.puts, id)
}

func (h *recordingStoreHooks) OnStoreGet(_ context.Context, id string, found bool, _ time.Duration) {
	h.gets[id] = found
}

func (h *recordingStoreHooks) OnStoreDelete(_ context.Context, id string, _ error) {
	h.deletes = append(h.deletes, id)
}

func TestInstrumentedStore(t *testing.T) {
	hooks := &recordingStoreHooks{gets: make(map[string]bool)}
	observability.SetStoreHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	s := Instrument(NewMemoryStore())

	snap := NewSnapshot("observed", 7, testDungeon())
	if err := s.Put(ctx, snap); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, err := s.Get(ctx, snap.ID); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if _, err := s.Get(ctx, "missing"); err == nil {
		t.Fatal("Get(missing) should fail")
	}
	if err := s.Delete(ctx, snap.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if len(hooks.puts) != 1 || hooks.puts[0] != snap.ID {
		t.Errorf("puts = %v, want [%s]", hooks.puts, snap.ID)
	}
	if !hooks.gets[snap.ID] {
		t.Error("found Get not recorded")
	}
	if hooks.gets["missing"] {
		t.Error("missing Get recorded as found")
	}
	if len(hooks.deletes) != 1 || hooks.deletes[0] != snap.ID {
		t.Errorf("deletes = %v, want [%s]", hooks.deletes, snap.ID)
	}
}

func TestInstrumentNil(t *testing.T) {
	if Instrument(nil) != nil {
		t.Error("Instrument(nil) should return nil")
	}
}
