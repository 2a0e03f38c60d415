package store

import (
	"context"
	"time"

	"github.com/delvemap/delvemap/pkg/observability"
)

// instrumented decorates a Store with observability hook calls.
type instrumented struct {
	inner Store
}

// Instrument wraps a store so puts, gets, and deletes report to the
// registered observability hooks. List and Close pass through untouched.
func Instrument(s Store) Store {
	if s == nil {
		return nil
	}
	return &instrumented{inner: s}
}

func (w *instrumented) Put(ctx context.Context, s *Snapshot) error {
	start := time.Now()
	err := w.inner.Put(ctx, s)
	id := ""
	if s != nil {
		id = s.ID
	}
	observability.StoreObserver().OnStorePut(ctx, id, time.Since(start), err)
	return err
}

func (w *instrumented) Get(ctx context.Context, id string) (*Snapshot, error) {
	start := time.Now()
	snap, err := w.inner.Get(ctx, id)
	observability.StoreObserver().OnStoreGet(ctx, id, err == nil, time.Since(start))
	return snap, err
}

func (w *instrumented) Delete(ctx context.Context, id string) error {
	err := w.inner.Delete(ctx, id)
	observability.StoreObserver().OnStoreDelete(ctx, id, err)
	return err
}

func (w *instrumented) List(ctx context.Context) ([]*Snapshot, error) {
	return w.inner.List(ctx)
}

func (w *instrumented) Close() error { return w.inner.Close() }

var _ Store = (*instrumented)(nil)
