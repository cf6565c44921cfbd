package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"kasa/internal/core"
)

type countingSource struct {
	fetches atomic.Int64
	err     error
}

func (s *countingSource) Fetch(_ context.Context) (core.RawSnapshot, error) {
	s.fetches.Add(1)
	if s.err != nil {
		return core.RawSnapshot{}, s.err
	}
	return core.RawSnapshot{
		Transactions: [][]any{{"2024-01-01", "10", "Витрата", "Mono", "Їжа"}},
		Accounts:     [][]any{{"Mono"}},
	}, nil
}

func TestSnapshotCacheServesWithinTTL(t *testing.T) {
	src := &countingSource{}
	c := New(src, time.Minute)

	for i := 0; i < 3; i++ {
		snap, err := c.Snapshot(context.Background())
		if err != nil {
			t.Fatalf("snapshot: %v", err)
		}
		if len(snap.Transactions) != 1 {
			t.Fatalf("normalized snapshot wrong: %+v", snap)
		}
	}
	if got := src.fetches.Load(); got != 1 {
		t.Fatalf("expected 1 fetch, got %d", got)
	}
}

func TestSnapshotCacheRefreshesAfterTTL(t *testing.T) {
	src := &countingSource{}
	c := New(src, time.Minute)

	now := time.Unix(0, 0)
	c.clock = func() time.Time { return now }

	if _, err := c.Snapshot(context.Background()); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := c.Snapshot(context.Background()); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if got := src.fetches.Load(); got != 2 {
		t.Fatalf("expected refresh after TTL, got %d fetches", got)
	}
}

func TestSnapshotCacheInvalidate(t *testing.T) {
	src := &countingSource{}
	c := New(src, time.Hour)

	_, _ = c.Snapshot(context.Background())
	c.Invalidate()
	_, _ = c.Snapshot(context.Background())
	if got := src.fetches.Load(); got != 2 {
		t.Fatalf("invalidate must force a refetch, got %d fetches", got)
	}
}

func TestSnapshotCachePropagatesFetchError(t *testing.T) {
	src := &countingSource{err: errors.New("boom")}
	c := New(src, time.Minute)

	if _, err := c.Snapshot(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	// A failed fetch leaves nothing cached; the next call tries again.
	src.err = nil
	if _, err := c.Snapshot(context.Background()); err != nil {
		t.Fatalf("recovery fetch failed: %v", err)
	}
}

func TestSnapshotCacheCollapsesConcurrentFetches(t *testing.T) {
	src := &countingSource{}
	c := New(src, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Snapshot(context.Background())
		}()
	}
	wg.Wait()
	if got := src.fetches.Load(); got != 1 {
		t.Fatalf("expected singleflight to collapse fetches, got %d", got)
	}
}

func TestRawAndSnapshotShareOneFetch(t *testing.T) {
	src := &countingSource{}
	c := New(src, time.Minute)

	if _, err := c.Raw(context.Background()); err != nil {
		t.Fatalf("raw: %v", err)
	}
	if _, err := c.Snapshot(context.Background()); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if got := src.fetches.Load(); got != 1 {
		t.Fatalf("raw and normalized views must share the fetch, got %d", got)
	}
}
