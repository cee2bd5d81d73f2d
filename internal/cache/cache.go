// Package cache stores compile results in Redis keyed by score hash
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "compile:"

// Entry is one cached compile result
type Entry struct {
	Result    json.RawMessage `json:"result"`
	CachedAt  int64           `json:"cached_at"`
	ExpiresAt int64           `json:"expires_at"`
}

// Stats are the process-local hit counters
type Stats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// Cache is a Redis-backed compile cache. A nil *Cache is a valid, always
// missing cache, so callers do not need to branch on configuration.
type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	hits   int64
	misses int64
}

// New wraps an existing client
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Connect parses a redis:// URL and checks the server is reachable
func Connect(ctx context.Context, url string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}
	log.Printf("✅ Connected to Redis at %s (TTL=%v)", opts.Addr, ttl)
	return New(rdb, ttl), nil
}

func key(hash string) string {
	return keyPrefix + hash
}

// Get decodes the cached result for hash into out. It reports false on a miss.
func (c *Cache) Get(ctx context.Context, hash string, out any) (bool, error) {
	if c == nil {
		return false, nil
	}

	data, err := c.rdb.Get(ctx, key(hash)).Bytes()
	if err == redis.Nil {
		atomic.AddInt64(&c.misses, 1)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis error: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return false, fmt.Errorf("failed to parse cache entry: %w", err)
	}
	if err := json.Unmarshal(entry.Result, out); err != nil {
		return false, fmt.Errorf("failed to parse cached result: %w", err)
	}
	atomic.AddInt64(&c.hits, 1)
	return true, nil
}

// Put stores result under hash for the cache TTL
func (c *Cache) Put(ctx context.Context, hash string, result any) error {
	if c == nil {
		return nil
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}
	now := time.Now().Unix()
	data, err := json.Marshal(Entry{
		Result:    raw,
		CachedAt:  now,
		ExpiresAt: now + int64(c.ttl.Seconds()),
	})
	if err != nil {
		return fmt.Errorf("failed to serialize entry: %w", err)
	}

	if err := c.rdb.Set(ctx, key(hash), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache: %w", err)
	}
	log.Printf("💾 Cached compile: %s (TTL=%v)", shortHash(hash), c.ttl)
	return nil
}

// Invalidate drops the entry for hash and reports whether one existed
func (c *Cache) Invalidate(ctx context.Context, hash string) (bool, error) {
	if c == nil {
		return false, nil
	}
	deleted, err := c.rdb.Del(ctx, key(hash)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to invalidate: %w", err)
	}
	return deleted > 0, nil
}

// Stats returns hit and miss counts since startup
func (c *Cache) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	hits := atomic.LoadInt64(&c.hits)
	misses := atomic.LoadInt64(&c.misses)
	s := Stats{Hits: hits, Misses: misses}
	if total := hits + misses; total > 0 {
		s.HitRate = float64(hits) / float64(total)
	}
	return s
}

// Enabled reports whether a Redis client is configured
func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Ping checks the server is still reachable
func (c *Cache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// Close releases the Redis connection
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

func shortHash(hash string) string {
	if len(hash) > 16 {
		return hash[:16]
	}
	return hash
}
