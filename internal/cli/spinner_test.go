package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("working...")
	s.Start()
	time.Sleep(20 * time.Millisecond)
	s.Stop()
	s.Stop() // second call must not panic or block

	if s.Cancelled() {
		t.Error("Cancelled() = true after plain Stop, want false")
	}
}

func TestSpinnerStopBeforeFirstTick(t *testing.T) {
	s := newSpinner("quick")
	s.Start()
	s.Stop() // must join the render goroutine without waiting for a tick
}

func TestSpinnerCancelledByParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "working...")
	s.Start()
	cancel()
	s.Stop()

	if !s.Cancelled() {
		t.Error("Cancelled() = false after parent cancellation, want true")
	}
}

func TestSpinnerCancelledByParentTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "working...")
	s.Start()
	<-ctx.Done()
	s.Stop()

	if !s.Cancelled() {
		t.Error("Cancelled() = false after parent timeout, want true")
	}
}
