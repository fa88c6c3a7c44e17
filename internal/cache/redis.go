package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/oggyb/duo-match/internal/config"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

// RedisCache holds per-couple read caches for the feed.
//
// Every cached value is keyed under the couple's generation number. A write
// that changes a decision record bumps the generation, which orphans all
// older entries at once; they expire on their own TTL.
type RedisCache struct {
	Client *redis.Client
	ttl    time.Duration
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return NewWithClient(redis.NewClient(opts), cfg.Match.HiddenCacheTTL)
}

// NewWithClient wraps an existing client. ttl <= 0 means one hour.
func NewWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisCache{Client: client, ttl: ttl}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

// InstrumentTracing adds a span per Redis command, exported through the
// global tracer provider.
func (c *RedisCache) InstrumentTracing() error {
	return redisotel.InstrumentTracing(c.Client)
}

func (c *RedisCache) Close() error {
	return c.Client.Close()
}

func KeyForGeneration(coupleID string) string {
	return fmt.Sprintf("hidden:gen:%s", coupleID)
}

func KeyForHidden(coupleID, memberID string, gen int64) string {
	return fmt.Sprintf("hidden:%s:%s:%d", coupleID, memberID, gen)
}

func KeyForMatchCount(coupleID string, gen int64) string {
	return fmt.Sprintf("matches:count:%s:%d", coupleID, gen)
}

// Generation returns the couple's current cache generation, 0 if never bumped.
func (c *RedisCache) Generation(ctx context.Context, coupleID string) (int64, error) {
	val, err := c.Client.Get(ctx, KeyForGeneration(coupleID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

// Invalidate bumps the couple's generation and returns the new value.
func (c *RedisCache) Invalidate(ctx context.Context, coupleID string) (int64, error) {
	return c.Client.Incr(ctx, KeyForGeneration(coupleID)).Result()
}

// Hidden returns the cached hide list for memberID at generation gen.
// ok is false on a cache miss.
func (c *RedisCache) Hidden(ctx context.Context, coupleID, memberID string, gen int64) (ids []string, ok bool, err error) {
	raw, ok, err := c.getAndTouch(ctx, KeyForHidden(coupleID, memberID, gen))
	if err != nil || !ok {
		return nil, false, err
	}
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, false, fmt.Errorf("decode hidden list: %w", err)
	}
	return ids, true, nil
}

// SetHidden stores ids under gen. gen must be the generation read before
// the source data was loaded, so a concurrent write is never masked.
func (c *RedisCache) SetHidden(ctx context.Context, coupleID, memberID string, gen int64, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, KeyForHidden(coupleID, memberID, gen), b, c.ttl).Err()
}

// MatchCount returns the cached mutual match count at generation gen.
func (c *RedisCache) MatchCount(ctx context.Context, coupleID string, gen int64) (int64, bool, error) {
	raw, ok, err := c.getAndTouch(ctx, KeyForMatchCount(coupleID, gen))
	if err != nil || !ok {
		return 0, false, err
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func (c *RedisCache) SetMatchCount(ctx context.Context, coupleID string, gen, count int64) error {
	return c.Client.Set(ctx, KeyForMatchCount(coupleID, gen), count, c.ttl).Err()
}

// getAndTouch reads key and refreshes its TTL in one round trip.
func (c *RedisCache) getAndTouch(ctx context.Context, key string) (string, bool, error) {
	var get *redis.StringCmd
	_, err := c.Client.Pipelined(ctx, func(p redis.Pipeliner) error {
		get = p.Get(ctx, key)
		p.Expire(ctx, key, c.ttl)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", false, err
	}

	val, err := get.Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil // cache miss
	} else if err != nil {
		return "", false, err
	}
	return val, true, nil
}
