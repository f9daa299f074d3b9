// Package searchcache stores search result pages in a key-value store.
package searchcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/postquery/internal/db"
	"github.com/kailas-cloud/postquery/internal/domain/search/result"
)

// Default TTLs for non-empty and empty pages.
const (
	DefaultTTL      = 60 * time.Second
	DefaultEmptyTTL = 300 * time.Second
)

// store is the consumer interface for the result cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Options tunes key naming and expiry.
type Options struct {
	KeyPrefix string
	TTL       time.Duration
	EmptyTTL  time.Duration
}

// Cache stores result pages as JSON under hashed request keys.
type Cache struct {
	store      store
	opts       Options
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a result cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(s store, opts Options, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.EmptyTTL <= 0 {
		opts.EmptyTTL = DefaultEmptyTTL
	}
	return &Cache{store: s, opts: opts, cacheTotal: cacheTotal, logger: logger}
}

// Get returns the cached page for key. Store and decode failures count as a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]result.Post, bool) {
	k := c.cacheKey(key)

	data, err := c.store.Get(ctx, k)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached search page", zap.String("key", k), zap.Error(err))
		}
		c.incCache("miss")
		return nil, false
	}

	var posts []result.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		c.logger.Warn("Failed to parse cached search page", zap.String("key", k), zap.Error(err))
		c.incCache("miss")
		return nil, false
	}

	c.incCache("hit")
	return posts, true
}

// Put caches posts under key.
func (c *Cache) Put(ctx context.Context, key string, posts []result.Post) {
	k := c.cacheKey(key)
	if posts == nil {
		posts = []result.Post{}
	}

	data, err := json.Marshal(posts)
	if err != nil {
		c.logger.Warn("Failed to encode search page", zap.String("key", k), zap.Error(err))
		return
	}

	if err := c.store.SetWithTTL(ctx, k, data, c.ttlFor(posts)); err != nil {
		c.logger.Warn("Failed to cache search page", zap.String("key", k), zap.Error(err))
	}
}

func (c *Cache) ttlFor(posts []result.Post) time.Duration {
	if len(posts) == 0 {
		return c.opts.EmptyTTL
	}
	return c.opts.TTL
}

func (c *Cache) incCache(outcome string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(outcome).Inc()
	}
}

func (c *Cache) cacheKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return c.opts.KeyPrefix + hex.EncodeToString(h[:])
}
