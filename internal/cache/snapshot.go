package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"kasa/internal/core"
	"kasa/internal/sheets"
)

// SnapshotCache holds the most recent full read of the spreadsheet —
// both the raw ranges and their normalized form — and refreshes it
// from the source once the TTL lapses. Concurrent refreshes collapse
// into a single fetch. Correctness never depends on the cache:
// derivation over a snapshot is pure, so serving a snapshot twice is
// indistinguishable from recomputing it.
type SnapshotCache struct {
	source sheets.SnapshotSource
	ttl    time.Duration
	clock  func() time.Time

	group singleflight.Group

	mu        sync.Mutex
	entry     *entry
	fetchedAt time.Time
}

type entry struct {
	raw  core.RawSnapshot
	snap core.Snapshot
}

// New creates a cache over the given source.
func New(source sheets.SnapshotSource, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
	}
}

// Snapshot returns the current normalized snapshot, fetching a fresh
// one when none is cached or the TTL has lapsed. A failed fetch
// returns the error as-is and leaves no partial state behind.
func (c *SnapshotCache) Snapshot(ctx context.Context) (core.Snapshot, error) {
	e, err := c.get(ctx)
	if err != nil {
		return core.Snapshot{}, err
	}
	return e.snap, nil
}

// Raw returns the current raw snapshot under the same refresh policy.
func (c *SnapshotCache) Raw(ctx context.Context) (core.RawSnapshot, error) {
	e, err := c.get(ctx)
	if err != nil {
		return core.RawSnapshot{}, err
	}
	return e.raw, nil
}

// Invalidate forces the next read to hit the source.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
}

func (c *SnapshotCache) get(ctx context.Context) (*entry, error) {
	if e := c.fresh(); e != nil {
		return e, nil
	}

	v, err, _ := c.group.Do("snapshot", func() (any, error) {
		// A concurrent flight may have refreshed while this caller
		// waited on the group lock.
		if e := c.fresh(); e != nil {
			return e, nil
		}
		raw, err := c.source.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		e := &entry{raw: raw, snap: core.Normalize(raw)}
		c.mu.Lock()
		c.entry = e
		c.fetchedAt = c.clock()
		c.mu.Unlock()
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*entry), nil
}

func (c *SnapshotCache) fresh() *entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entry == nil || c.clock().Sub(c.fetchedAt) >= c.ttl {
		return nil
	}
	return c.entry
}
