package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"savings-route-service/internal/domain"
	"savings-route-service/internal/platform/obs"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "solve:result:"

// RedisResultCache keeps construction results in Redis with a TTL.
type RedisResultCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisResultCache connects using a redis:// URL. A ttl of zero keeps
// entries until evicted.
func NewRedisResultCache(url string, ttl time.Duration) (*RedisResultCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis result cache: parse url: %w", err)
	}
	return &RedisResultCache{rdb: redis.NewClient(opt), ttl: ttl}, nil
}

func NewRedisResultCacheFromClient(rdb *redis.Client, ttl time.Duration) *RedisResultCache {
	return &RedisResultCache{rdb: rdb, ttl: ttl}
}

func (c *RedisResultCache) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis result cache: ping: %w", err)
	}
	return nil
}

func (c *RedisResultCache) Close() error { return c.rdb.Close() }

func (c *RedisResultCache) Get(ctx context.Context, key string) (_ *domain.Result, ok bool, err error) {
	defer obs.Time(ctx, "result.cache.redis.Get")(&err)

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, errors.New("get result cache: key must not be empty")
	}

	data, err := c.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get result cache key=%q: %w", key, err)
	}

	var res domain.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, false, fmt.Errorf("get result cache key=%q: decode payload: %w", key, err)
	}
	return &res, true, nil
}

func (c *RedisResultCache) Put(ctx context.Context, key string, res *domain.Result) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert result cache: key must not be empty")
	}
	if res == nil {
		return errors.New("insert result cache: result must be non-nil")
	}

	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("insert result cache key=%q: encode payload: %w", key, err)
	}
	if err := c.rdb.Set(ctx, redisKeyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert result cache key=%q: %w", key, err)
	}
	return nil
}
