package postquery

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/postquery/internal/db/gormdb"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver string // "postgres" or "mysql"
	dsn    string

	cacheAddrs    []string
	cachePassword string
	cacheTTL      time.Duration
	cacheEmptyTTL time.Duration

	queryTimeout time.Duration
	maxLimit     int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithPostgres reads posts from a PostgreSQL database.
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = gormdb.DriverPostgres
		c.dsn = dsn
	})
}

// WithMySQL reads posts from a MySQL database.
func WithMySQL(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = gormdb.DriverMySQL
		c.dsn = dsn
	})
}

// WithRedisCache caches result pages in Redis. Disabled by default.
func WithRedisCache(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheAddrs = []string{addr}
		c.cachePassword = password
	})
}

// WithCacheTTL overrides the expiry of cached pages.
// Defaults: 60s for pages with posts, 300s for empty pages.
func WithCacheTTL(ttl, emptyTTL time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
		c.cacheEmptyTTL = emptyTTL
	})
}

// WithQueryTimeout bounds a single database query. Default: 5s.
func WithQueryTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.queryTimeout = d
	})
}

// WithMaxLimit caps the page size. Default: 100.
func WithMaxLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxLimit = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
