package core

import (
	"context"
	"sync"
	"time"

	"github.com/carverauto/netweave/pkg/db"
	"github.com/carverauto/netweave/pkg/models"
	"github.com/carverauto/netweave/pkg/topology"
)

const defaultSnapshotTTL = 15 * time.Second

// snapshotCache serves one resolved topology snapshot until it expires,
// then rebuilds it from the current edge set. Readers inside the TTL all
// see the same snapshot, so concurrent queries stay consistent with each
// other; writers never block on readers.
type snapshotCache struct {
	mu        sync.RWMutex
	db        db.Service
	ttl       time.Duration
	current   *topology.Snapshot
	expiresAt time.Time
	nowFn     func() time.Time
}

func newSnapshotCache(database db.Service, ttl time.Duration) *snapshotCache {
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}

	return &snapshotCache{
		db:    database,
		ttl:   ttl,
		nowFn: time.Now,
	}
}

func (c *snapshotCache) get(ctx context.Context) (*topology.Snapshot, error) {
	c.mu.RLock()
	snap := c.current
	fresh := snap != nil && c.expiresAt.After(c.nowFn())
	c.mu.RUnlock()

	if fresh {
		return snap, nil
	}

	return c.rebuild(ctx)
}

func (c *snapshotCache) rebuild(ctx context.Context) (*topology.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.nowFn()

	// Another reader may have rebuilt while we waited for the lock.
	if c.current != nil && c.expiresAt.After(now) {
		return c.current, nil
	}

	edges, err := c.db.ListEdges(ctx, models.EdgeFilter{})
	if err != nil {
		return nil, err
	}

	snapshotRebuilds.Inc()

	c.current = topology.BuildSnapshot(edges, now)
	c.expiresAt = now.Add(c.ttl)

	return c.current, nil
}

// invalidate drops the cached snapshot so the next query rebuilds.
func (c *snapshotCache) invalidate() {
	c.mu.Lock()
	c.expiresAt = time.Time{}
	c.mu.Unlock()
}
