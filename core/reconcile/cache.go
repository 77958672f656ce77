package reconcile

import (
	"context"
	"sync"
	"time"

	"testset-sync/core/testrepo"

	"golang.org/x/sync/singleflight"
)

// lookupEntry holds the test sets found for one (path, name) lookup.
type lookupEntry struct {
	sets  []testrepo.TestSet
	built time.Time
}

// CachedRepository caches FindTestSets lookups for a TTL.
// When every file resolves to the same test-set name, each run otherwise repeats the
// same query per file. Connect drops the cache since the session may change project.
type CachedRepository struct {
	Repository

	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]lookupEntry
	sf      singleflight.Group
}

// NewCachedRepository wraps repo. A zero ttl disables caching.
func NewCachedRepository(repo Repository, ttl time.Duration) *CachedRepository {
	return &CachedRepository{
		Repository: repo,
		ttl:        ttl,
		now:        time.Now,
		entries:    make(map[string]lookupEntry),
	}
}

// Connect opens a new session and invalidates cached lookups.
func (c *CachedRepository) Connect(ctx context.Context, creds testrepo.Credentials) error {
	c.Invalidate()
	return c.Repository.Connect(ctx, creds)
}

// FindTestSets serves fresh cached lookups and collapses concurrent misses.
func (c *CachedRepository) FindTestSets(ctx context.Context, path, name string) ([]testrepo.TestSet, error) {
	if c.ttl <= 0 {
		return c.Repository.FindTestSets(ctx, path, name)
	}

	key := path + "|" + name

	// Fast path
	if sets, ok := c.lookup(key); ok {
		return sets, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		if sets, ok := c.lookup(key); ok {
			return sets, nil
		}

		sets, err := c.Repository.FindTestSets(ctx, path, name)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = lookupEntry{sets: sets, built: c.now()}
		c.mu.Unlock()
		return sets, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]testrepo.TestSet), nil
}

// Invalidate drops every cached lookup.
func (c *CachedRepository) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]lookupEntry)
	c.mu.Unlock()
}

func (c *CachedRepository) lookup(key string) ([]testrepo.TestSet, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(entry.built) > c.ttl {
		return nil, false
	}
	return entry.sets, true
}
