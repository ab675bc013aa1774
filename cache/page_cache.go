package cache

import (
	"context"
	"time"
)

// PageCache caches the rendered body of a route for a fixed TTL. Writes
// never invalidate it: readers see the cached body until it expires or
// someone calls Invalidate. Only the global index route uses it.
type PageCache struct {
	store Store
	ttl   time.Duration
}

func NewPageCache(store Store, ttl time.Duration) *PageCache {
	return &PageCache{store: store, ttl: ttl}
}

func (p *PageCache) key(uri string) string {
	return "page:" + uri
}

func (p *PageCache) Get(ctx context.Context, uri string) ([]byte, bool, error) {
	return p.store.Get(ctx, p.key(uri))
}

func (p *PageCache) Set(ctx context.Context, uri string, body []byte) error {
	return p.store.Set(ctx, p.key(uri), body, p.ttl)
}

func (p *PageCache) Invalidate(ctx context.Context, uri string) error {
	return p.store.Clear(ctx, p.key(uri))
}

// InvalidateRoute drops every cached page of a route: the bare URI and
// all query-string variants ("/api/posts", "/api/posts?page=2", ...).
func (p *PageCache) InvalidateRoute(ctx context.Context, path string) error {
	return p.store.ClearPrefix(ctx, p.key(path))
}
