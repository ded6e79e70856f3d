package session

import "context"

type ctxKey struct{}

// WithCache scopes a cache to the given context, mirroring a provider
// mounting around its subtree.
func WithCache(ctx context.Context, c *Cache) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the cache installed by WithCache.
func FromContext(ctx context.Context) (*Cache, bool) {
	c, ok := ctx.Value(ctxKey{}).(*Cache)
	return c, ok
}

// MustFromContext is FromContext for call sites that cannot proceed without
// a cache; it panics with a descriptive message when used outside a
// WithCache scope.
func MustFromContext(ctx context.Context) *Cache {
	c, ok := FromContext(ctx)
	if !ok {
		panic("session: cache accessed outside WithCache scope")
	}
	return c
}
