package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/matst80/learn-finder/pkg/common/jsoncompat"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// redisStore is the part of *redis.Client the cache uses.
type redisStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

type LocalEntry struct {
	Expires time.Time
	Data    []byte
}

// Cache is a redis cache with a short lived in-process copy in front of it.
type Cache struct {
	mu       sync.Mutex
	client   redisStore
	memCache map[string]LocalEntry
	localTTL time.Duration
	now      func() time.Time
}

func NewCache(addr, password string, db int) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return newCache(rdb)
}

func newCache(client redisStore) *Cache {
	return &Cache{
		client:   client,
		memCache: make(map[string]LocalEntry),
		localTTL: time.Minute,
		now:      time.Now,
	}
}

func (c *Cache) local(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, found := c.memCache[key]
	if !found {
		return nil, false
	}
	if entry.Expires.Before(c.now()) {
		delete(c.memCache, key)
		return nil, false
	}
	return entry.Data, true
}

func (c *Cache) remember(key string, data []byte, expiration time.Duration) {
	ttl := min(expiration, c.localTTL)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.memCache[key] = LocalEntry{Expires: c.now().Add(ttl), Data: data}
}

func (c *Cache) GetRaw(ctx context.Context, key string) ([]byte, error) {
	if data, ok := c.local(key); ok {
		return data, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	c.remember(key, data, c.localTTL)
	return data, nil
}

func (c *Cache) SetRaw(ctx context.Context, key string, data []byte, expiration time.Duration) error {
	c.remember(key, data, expiration)
	return c.client.Set(ctx, key, data, expiration).Err()
}

func (c *Cache) Get(ctx context.Context, key string, out any) error {
	data, err := c.GetRaw(ctx, key)
	if err != nil {
		return err
	}
	return jsoncompat.Unmarshal(data, out)
}

func (c *Cache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := jsoncompat.Marshal(value)
	if err != nil {
		return err
	}
	return c.SetRaw(ctx, key, data, expiration)
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	for _, key := range keys {
		delete(c.memCache, key)
	}
	c.mu.Unlock()
	return c.client.Del(ctx, keys...).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
