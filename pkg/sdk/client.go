package postquery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/postquery/internal/db/gormdb"
	dbRedis "github.com/kailas-cloud/postquery/internal/db/redis"
	"github.com/kailas-cloud/postquery/internal/domain/search/request"
	"github.com/kailas-cloud/postquery/internal/domain/search/result"
	postrepo "github.com/kailas-cloud/postquery/internal/repository/post"
	"github.com/kailas-cloud/postquery/internal/repository/searchcache"
	healthuc "github.com/kailas-cloud/postquery/internal/usecase/health"
	searchuc "github.com/kailas-cloud/postquery/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	cacheKeyPrefix          = "postquery:search:"
)

// Internal interfaces, replaced by mocks in tests.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) ([]result.Post, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Client is the postquery SDK entry point.
type Client struct {
	database  pinger
	searchSvc searchUseCase
	healthSvc healthUseCase
	maxLimit  int
	closers   []func()
	obs       *observer
}

// New creates a Client and connects to the post database (and cache, if configured).
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.dsn == "" {
		return nil, errors.New("postquery: database dsn required (use WithPostgres or WithMySQL)")
	}

	database, err := gormdb.Open(gormdb.Config{Driver: cfg.driver, DSN: cfg.dsn, LogLevel: "silent"}, zap.NewNop())
	if err != nil {
		return nil, fmt.Errorf("postquery: open database: %w", err)
	}
	if err := database.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("postquery: database not ready: %w", err)
	}
	closers := []func(){func() { _ = database.Close() }}

	// Pass nil interfaces (not typed nil pointers) when the cache is off.
	var (
		cache       searchuc.Cache
		cachePinger healthuc.Pinger
	)
	if len(cfg.cacheAddrs) > 0 {
		store, err := dbRedis.NewStore(dbRedis.Config{Addrs: cfg.cacheAddrs, Password: cfg.cachePassword})
		if err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("postquery: create redis store: %w", err)
		}
		closers = append(closers, store.Close)
		cache = searchcache.New(store, searchcache.Options{
			KeyPrefix: cacheKeyPrefix,
			TTL:       cfg.cacheTTL,
			EmptyTTL:  cfg.cacheEmptyTTL,
		}, nil, zap.NewNop())
		cachePinger = store
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		for _, c := range closers {
			c()
		}
		return nil, err
	}

	repo := postrepo.New(database, cfg.queryTimeout, nil)
	return wireClient(
		database,
		searchuc.New(repo, cache, nil),
		healthuc.New(database, cachePinger),
		cfg, closers, obs,
	), nil
}

func wireClient(
	database pinger,
	search searchUseCase,
	health healthUseCase,
	cfg *clientConfig,
	closers []func(),
	obs *observer,
) *Client {
	maxLimit := cfg.maxLimit
	if maxLimit <= 0 {
		maxLimit = request.MaxLimit
	}
	return &Client{
		database:  database,
		searchSvc: search,
		healthSvc: health,
		maxLimit:  maxLimit,
		closers:   closers,
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "ping", "", start, err) }()

	if err = c.database.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
