package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kailas-cloud/postquery/internal/config"
	"github.com/kailas-cloud/postquery/internal/db/gormdb"
	dbRedis "github.com/kailas-cloud/postquery/internal/db/redis"
	logpkg "github.com/kailas-cloud/postquery/internal/logger"
	"github.com/kailas-cloud/postquery/internal/metrics"
	postrepo "github.com/kailas-cloud/postquery/internal/repository/post"
	"github.com/kailas-cloud/postquery/internal/repository/searchcache"
	"github.com/kailas-cloud/postquery/internal/telemetry"
	chiTransport "github.com/kailas-cloud/postquery/internal/transport/chi"
	healthuc "github.com/kailas-cloud/postquery/internal/usecase/health"
	searchuc "github.com/kailas-cloud/postquery/internal/usecase/search"
	"github.com/kailas-cloud/postquery/internal/version"
)

func main() {
	env := pflag.String("env", config.GetEnv(), "Config environment: local, dev, prod")
	showVersion := pflag.Bool("version", false, "Print version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg, err := config.Load(*env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	var logFile *logpkg.FileOutput
	if cfg.Logging.File.Path != "" {
		logFile = &logpkg.FileOutput{
			Path:       cfg.Logging.File.Path,
			MaxSizeMB:  cfg.Logging.File.MaxSizeMB,
			MaxBackups: cfg.Logging.File.MaxBackups,
			MaxAgeDays: cfg.Logging.File.MaxAgeDays,
			Compress:   cfg.Logging.File.Compress,
		}
	}
	logger, err := logpkg.NewLogger(*env, cfg.Logging.Level, logFile)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting postquery API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", *env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	metrics.RegisterSearchMetrics()

	ctx := context.Background()
	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:     cfg.Tracing.Enabled,
		SampleRatio: cfg.Tracing.SampleRatio,
		StdoutFile:  cfg.Tracing.StdoutFile,
		Pretty:      cfg.Tracing.Pretty,
	}, "postquery", version.Version, logger)
	if err != nil {
		logger.Fatal("Failed to set up tracing", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("Failed to flush spans", zap.Error(err))
		}
	}()

	database, err := gormdb.Open(gormdb.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetimeSec) * time.Second,
		LogLevel:        cfg.Database.LogLevel,
		SlowThreshold:   time.Duration(cfg.Database.SlowThresholdMs) * time.Millisecond,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to open post database", zap.Error(err))
	}
	defer func() { _ = database.Close() }()

	if err := database.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Post database not ready", zap.Error(err))
	}
	logger.Info("Connected to post database")

	// Pass nil interfaces (not typed nil pointers) when the cache is disabled.
	var (
		cache       searchuc.Cache
		cachePinger healthuc.Pinger
	)
	if cfg.Cache.Enabled {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			// Health reports degraded until the cache answers.
			logger.Warn("Cache not ready", zap.Error(err))
		}

		cache = searchcache.New(store, searchcache.Options{
			KeyPrefix: cfg.Cache.KeyPrefix,
			TTL:       time.Duration(cfg.Cache.TTLSec) * time.Second,
			EmptyTTL:  time.Duration(cfg.Cache.EmptyTTLSec) * time.Second,
		}, metrics.SearchCacheTotal, logger)
		cachePinger = store
	}

	posts := postrepo.New(database, time.Duration(cfg.Database.QueryTimeoutSec)*time.Second,
		metrics.StorageQueryDuration)
	searchSvc := searchuc.New(posts, cache, metrics.QueryRejectedTotal)
	healthSvc := healthuc.New(database, cachePinger)

	server := chiTransport.NewServer(searchSvc, healthSvc, chiTransport.Limits{
		DefaultLimit: cfg.Search.DefaultLimit,
		MaxLimit:     cfg.Search.MaxLimit,
	}, metrics.SearchRequestsTotal, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
