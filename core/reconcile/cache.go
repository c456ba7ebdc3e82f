package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// SnapshotCache holds loaded snapshots keyed by store, for serve mode.
type SnapshotCache struct {
	ttl       time.Duration
	mu        sync.RWMutex
	snapshots map[string]*Snapshot
	sf        singleflight.Group
}

// NewSnapshotCache creates a cache whose entries live for ttl.
// A zero ttl disables caching: every call rebuilds.
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		ttl:       ttl,
		snapshots: make(map[string]*Snapshot),
	}
}

// GetOrBuild returns the cached snapshot for key, or builds a new one if it
// doesn't exist or has expired. Uses singleflight to prevent stampedes.
// The build ignores ctx cancellation but keeps its values.
func (c *SnapshotCache) GetOrBuild(ctx context.Context, key string, build func(context.Context) (*Snapshot, error)) (*Snapshot, error) {
	// Fast path: check if snapshot exists and is fresh
	if snapshot, ok := c.fresh(key); ok {
		return snapshot, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		if snapshot, ok := c.fresh(key); ok {
			return snapshot, nil
		}

		// Shared by every waiter; one caller going away must not cancel it
		snapshot, err := build(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		snapshot.TTL = c.ttl

		c.mu.Lock()
		c.snapshots[key] = snapshot
		c.mu.Unlock()

		return snapshot, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Snapshot), nil
}

// Invalidate removes the snapshot for key.
func (c *SnapshotCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.snapshots, key)
	c.mu.Unlock()
}

func (c *SnapshotCache) fresh(key string) (*Snapshot, bool) {
	c.mu.RLock()
	snapshot, exists := c.snapshots[key]
	c.mu.RUnlock()

	if exists && !snapshot.IsExpired() {
		return snapshot, true
	}
	return nil, false
}
