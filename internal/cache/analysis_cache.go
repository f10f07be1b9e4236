package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/BaronguyenVinasu/riftcounter/internal/metrics"
	"github.com/BaronguyenVinasu/riftcounter/internal/models"
	"github.com/BaronguyenVinasu/riftcounter/internal/telemetry"
)

// DefaultPrefix namespaces analysis keys in Redis.
const DefaultPrefix = "analysis:"

// Stats tracks cache performance counters.
type Stats struct {
	Backend       string  `json:"backend"`
	Hits          int64   `json:"hits"`
	Misses        int64   `json:"misses"`
	Sets          int64   `json:"sets"`
	Errors        int64   `json:"errors"`
	Invalidations int64   `json:"invalidations"`
	Entries       int64   `json:"entries"`
	HitRate       float64 `json:"hitRate"`
}

type counters struct {
	mu            sync.Mutex
	hits          int64
	misses        int64
	sets          int64
	errors        int64
	invalidations int64
}

func (c *counters) hit() {
	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
	metrics.RecordCacheOperation("get", "hit")
}

func (c *counters) miss() {
	c.mu.Lock()
	c.misses++
	c.mu.Unlock()
	metrics.RecordCacheOperation("get", "miss")
}

func (c *counters) set() {
	c.mu.Lock()
	c.sets++
	c.mu.Unlock()
	metrics.RecordCacheOperation("set", "ok")
}

func (c *counters) fail(op string) {
	c.mu.Lock()
	c.errors++
	c.mu.Unlock()
	metrics.RecordCacheOperation(op, "error")
}

func (c *counters) invalidated() {
	c.mu.Lock()
	c.invalidations++
	c.mu.Unlock()
	metrics.RecordCacheOperation("invalidate", "ok")
}

func (c *counters) snapshot(backend string, entries int64) Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Stats{
		Backend:       backend,
		Hits:          c.hits,
		Misses:        c.misses,
		Sets:          c.sets,
		Errors:        c.errors,
		Invalidations: c.invalidations,
		Entries:       entries,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total) * 100
	}
	return s
}

// RedisAnalysisCache stores analysis responses as JSON in Redis.
type RedisAnalysisCache struct {
	redis  *redis.Client
	prefix string
	logger *logrus.Logger
	stats  counters
}

func NewRedisAnalysisCache(client *redis.Client, prefix string, logger *logrus.Logger) *RedisAnalysisCache {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &RedisAnalysisCache{redis: client, prefix: prefix, logger: logger}
}

// Get returns a cached analysis. Redis and decode errors count as misses.
func (c *RedisAnalysisCache) Get(ctx context.Context, key string) (*models.AnalysisResponse, bool) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.GetCacheTracer(), "cache.get")
	defer span.End()

	data, err := c.redis.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.stats.miss()
		return nil, false
	}
	if err != nil {
		telemetry.RecordError(span, err)
		c.logger.WithError(err).WithField("key", key).Warn("Redis error reading analysis")
		c.stats.fail("get")
		c.stats.miss()
		return nil, false
	}

	var resp models.AnalysisResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Discarding undecodable cached analysis")
		c.stats.fail("get")
		c.stats.miss()
		return nil, false
	}
	c.stats.hit()
	return &resp, true
}

func (c *RedisAnalysisCache) Set(ctx context.Context, key string, resp *models.AnalysisResponse, ttl time.Duration) error {
	ctx, span := telemetry.StartSpan(ctx, telemetry.GetCacheTracer(), "cache.set")
	defer span.End()

	data, err := json.Marshal(resp)
	if err != nil {
		c.stats.fail("set")
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	if err := c.redis.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		telemetry.RecordError(span, err)
		c.stats.fail("set")
		return fmt.Errorf("failed to cache analysis: %w", err)
	}
	c.stats.set()
	return nil
}

// InvalidateAll deletes every key under the prefix.
func (c *RedisAnalysisCache) InvalidateAll(ctx context.Context) error {
	keys, err := c.keys(ctx)
	if err != nil {
		c.stats.fail("invalidate")
		return err
	}
	if len(keys) > 0 {
		if err := c.redis.Del(ctx, keys...).Err(); err != nil {
			c.stats.fail("invalidate")
			return fmt.Errorf("error clearing cache: %w", err)
		}
	}
	c.stats.invalidated()
	c.logger.WithField("entries", len(keys)).Info("Analysis cache invalidated")
	return nil
}

func (c *RedisAnalysisCache) keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := c.redis.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("error scanning cache keys: %w", err)
	}
	return keys, nil
}

// Stats reports counters and the current number of cached analyses.
func (c *RedisAnalysisCache) Stats(ctx context.Context) Stats {
	var entries int64
	if keys, err := c.keys(ctx); err == nil {
		entries = int64(len(keys))
	}
	return c.stats.snapshot("redis", entries)
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryAnalysisCache is the in-process fallback used when Redis is unavailable.
// Entries are stored encoded so callers never share mutable responses.
type MemoryAnalysisCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
	stats   counters
}

func NewMemoryAnalysisCache() *MemoryAnalysisCache {
	return &MemoryAnalysisCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryAnalysisCache) Get(_ context.Context, key string) (*models.AnalysisResponse, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expiresAt) {
		c.stats.miss()
		return nil, false
	}
	var resp models.AnalysisResponse
	if err := json.Unmarshal(entry.data, &resp); err != nil {
		c.stats.fail("get")
		c.stats.miss()
		return nil, false
	}
	c.stats.hit()
	return &resp, true
}

func (c *MemoryAnalysisCache) Set(_ context.Context, key string, resp *models.AnalysisResponse, ttl time.Duration) error {
	data, err := json.Marshal(resp)
	if err != nil {
		c.stats.fail("set")
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	c.mu.Lock()
	c.entries[key] = memoryEntry{data: data, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	c.stats.set()
	return nil
}

func (c *MemoryAnalysisCache) InvalidateAll(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	c.stats.invalidated()
	return nil
}

// Stats counts only unexpired entries.
func (c *MemoryAnalysisCache) Stats(_ context.Context) Stats {
	now := c.now()
	var live int64
	c.mu.RLock()
	for _, e := range c.entries {
		if !now.After(e.expiresAt) {
			live++
		}
	}
	c.mu.RUnlock()
	return c.stats.snapshot("memory", live)
}
