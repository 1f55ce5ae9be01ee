package policy

import (
	"context"
	"sync"
	"time"

	"github.com/diewo77/techfix/internal/models"
)

// CachedResolver wraps a ProfileResolver with TTL-based caching.
// Only found profiles are cached, so a profile inserted out-of-band is
// picked up on the next request. Within the TTL a deleted profile is
// still honoured.
type CachedResolver struct {
	inner ProfileResolver
	cache map[string]*cacheEntry
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
}

type cacheEntry struct {
	profile   *models.AdminProfile
	expiresAt time.Time
}

// NewCachedResolver wraps a resolver with caching.
func NewCachedResolver(inner ProfileResolver, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		inner: inner,
		cache: make(map[string]*cacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Resolve returns the profile for the given user, using cache if available.
func (r *CachedResolver) Resolve(ctx context.Context, userID string) (*models.AdminProfile, error) {
	r.mu.RLock()
	entry, ok := r.cache[userID]
	r.mu.RUnlock()

	if ok && r.now().Before(entry.expiresAt) {
		return entry.profile, nil
	}

	profile, err := r.inner.Resolve(ctx, userID)
	if err != nil || profile == nil {
		return profile, err
	}

	r.mu.Lock()
	r.cache[userID] = &cacheEntry{profile: profile, expiresAt: r.now().Add(r.ttl)}
	r.mu.Unlock()
	return profile, nil
}

// Invalidate removes a user from the cache.
func (r *CachedResolver) Invalidate(userID string) {
	r.mu.Lock()
	delete(r.cache, userID)
	r.mu.Unlock()
}

// InvalidateAll clears the entire cache.
func (r *CachedResolver) InvalidateAll() {
	r.mu.Lock()
	r.cache = make(map[string]*cacheEntry)
	r.mu.Unlock()
}
