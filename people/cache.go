package people

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/vortex-fintech/people/person"
)

const (
	DefaultCacheTTL = 5 * time.Minute
	cacheKeyPrefix  = "people:person:"
)

// Cache stores single records fetched by Client.Get.
type Cache interface {
	Get(ctx context.Context, id string) (person.Person, bool, error)
	Set(ctx context.Context, p person.Person) error
	Delete(ctx context.Context, id string) error
}

// RedisStore is the subset of go-redis commands the cache uses.
// goredis.UniversalClient satisfies it.
type RedisStore interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

var (
	_ RedisStore = (goredis.UniversalClient)(nil)
	_ Cache      = (*RedisCache)(nil)
)

type RedisCache struct {
	rdb RedisStore
	ttl time.Duration
}

// NewRedisCache stores records as JSON under people:person:{id}.
// A ttl <= 0 falls back to DefaultCacheTTL.
func NewRedisCache(rdb RedisStore, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func CacheKey(id string) string { return cacheKeyPrefix + id }

func (c *RedisCache) Get(ctx context.Context, id string) (person.Person, bool, error) {
	b, err := c.rdb.Get(ctx, CacheKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return person.Person{}, false, nil
	}
	if err != nil {
		return person.Person{}, false, err
	}
	var p person.Person
	if err := json.Unmarshal(b, &p); err != nil {
		return person.Person{}, false, err
	}
	return p, true, nil
}

func (c *RedisCache) Set(ctx context.Context, p person.Person) error {
	if p.ID == "" {
		return nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, CacheKey(p.ID), b, c.ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, CacheKey(id)).Err()
}
