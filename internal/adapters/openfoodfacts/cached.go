// internal/adapters/openfoodfacts/cached.go
package openfoodfacts

import (
	"context"
	"errors"
	"log/slog"
	"time"

	redis_a "github.com/ammerola/stockscan/internal/adapters/redis_adapter"
	"github.com/ammerola/stockscan/internal/core/ports"
)

// CachedLookup remembers lookup answers, including misses. Failed lookups
// are never cached.
type CachedLookup struct {
	next   ports.ProductLookup
	cache  ports.CacheRepository
	ttl    time.Duration
	logger *slog.Logger
}

var _ ports.ProductLookup = (*CachedLookup)(nil)

// NewCachedLookup wraps next with cache
func NewCachedLookup(next ports.ProductLookup, cache ports.CacheRepository, ttl time.Duration, logger *slog.Logger) *CachedLookup {
	return &CachedLookup{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "lookup_cache")),
	}
}

type cachedName struct {
	Name  string `json:"name"`
	Found bool   `json:"found"`
}

// CacheKey returns the cache key of the lookup answer for code
func CacheKey(code string) string {
	return redis_a.BuildKey(redis_a.PrefixLookup, "off", code)
}

// LookupName answers from the cache or asks the wrapped lookup
func (l *CachedLookup) LookupName(ctx context.Context, code string) (string, bool, error) {
	key := CacheKey(code)

	var entry cachedName
	err := l.cache.GetOrSet(ctx, key, &entry, func() (interface{}, error) {
		name, found, err := l.next.LookupName(ctx, code)
		if err != nil {
			return nil, err
		}
		return cachedName{Name: name, Found: found}, nil
	}, l.ttl)
	if err == nil {
		return entry.Name, entry.Found, nil
	}

	var cacheErr *redis_a.CacheError
	if !errors.As(err, &cacheErr) {
		return "", false, err
	}

	l.logger.WarnContext(ctx, "lookup cache unavailable",
		slog.String("code", code),
		slog.Any("error", err))
	return l.next.LookupName(ctx, code)
}

// Forget drops the cached answers for codes, or every cached answer when no
// code is given. It returns how many entries were removed.
func Forget(ctx context.Context, cache ports.CacheRepository, codes ...string) (int, error) {
	if len(codes) == 0 {
		return cache.DeletePattern(ctx, CacheKey("*"))
	}

	keys := make([]string, len(codes))
	for i, code := range codes {
		keys[i] = CacheKey(code)
	}
	if err := cache.Delete(ctx, keys...); err != nil {
		return 0, err
	}
	return len(keys), nil
}
