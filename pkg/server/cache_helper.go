package server

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

const (
	searchCache   = "search"
	resourceCache = "resource"
)

// CacheHelper reads T from the cache and falls back to fn on a miss. A nil
// cache always calls fn.
type CacheHelper[T any] struct {
	Cache  *Cache
	Name   string
	Logger *zap.Logger
}

func NewCacheHelper[T any](cache *Cache, name string, logger *zap.Logger) *CacheHelper[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheHelper[T]{Cache: cache, Name: name, Logger: logger}
}

func (c *CacheHelper[T]) Handle(ctx context.Context, key string, fn func() (T, error), expiration time.Duration) (T, error) {
	var out T
	if c.Cache == nil {
		return fn()
	}
	err := c.Cache.Get(ctx, key, &out)
	if err == nil {
		cacheLookups.WithLabelValues(c.Name, "hit").Inc()
		return out, nil
	}
	cacheLookups.WithLabelValues(c.Name, "miss").Inc()
	if !errors.Is(err, ErrCacheMiss) {
		c.Logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	out, err = fn()
	if err != nil {
		return out, err
	}
	if err = c.Cache.Set(ctx, key, out, expiration); err != nil {
		c.Logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return out, nil
}
