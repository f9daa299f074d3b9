package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/postquery/internal/domain"
	"github.com/kailas-cloud/postquery/internal/domain/search/filter"
	"github.com/kailas-cloud/postquery/internal/domain/search/query"
	"github.com/kailas-cloud/postquery/internal/domain/search/request"
	"github.com/kailas-cloud/postquery/internal/domain/search/result"
	"github.com/kailas-cloud/postquery/internal/logger"
)

var tracer = otel.Tracer("github.com/kailas-cloud/postquery/internal/usecase/search")

// Service compiles search queries and serves result pages, cache first.
type Service struct {
	repo     Repository
	cache    Cache
	group    singleflight.Group
	rejected *prometheus.CounterVec
}

// New creates a search service. cache may be nil (no caching).
// rejected is a counter vec with label "reason", passed explicitly; may be nil.
func New(repo Repository, cache Cache, rejected *prometheus.CounterVec) *Service {
	return &Service{repo: repo, cache: cache, rejected: rejected}
}

// Search returns one page of posts matching req.
// Query errors wrap the query package sentinels; store failures wrap domain.ErrStorage.
func (s *Service) Search(ctx context.Context, req *request.Request) (posts []result.Post, err error) {
	ctx, span := tracer.Start(ctx, "search.Search", trace.WithAttributes(
		attribute.String("search.query", req.Query()),
		attribute.Int("search.limit", req.Limit()),
		attribute.Int("search.page_number", req.PageNumber()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "search failed")
		}
		span.End()
	}()

	compiled, err := filter.CompileQuery(req.Query(), req.Page())
	if err != nil {
		s.incRejected(rejectReason(err))
		logger.FromContext(ctx).Debug("Query rejected",
			zap.String("query", req.Query()), zap.Error(err))
		return nil, fmt.Errorf("compile query: %w", err)
	}

	key := req.CacheKey()
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			span.SetAttributes(attribute.Bool("search.cache_hit", true))
			return cached, nil
		}
	}

	// One store query per key; waiters share the result. The shared fetch is
	// detached from the first caller's cancellation.
	ch := s.group.DoChan(key, func() (any, error) {
		return s.fetch(context.WithoutCancel(ctx), key, compiled)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("search: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		posts, _ = res.Val.([]result.Post)
		return posts, nil
	}
}

func (s *Service) fetch(ctx context.Context, key string, compiled filter.Compiled) ([]result.Post, error) {
	posts, err := s.repo.Find(ctx, compiled)
	if err != nil {
		return nil, fmt.Errorf("%w: find posts: %w", domain.ErrStorage, err)
	}
	if s.cache != nil {
		s.cache.Put(ctx, key, posts)
	}
	return posts, nil
}

func (s *Service) incRejected(reason string) {
	if s.rejected != nil {
		s.rejected.WithLabelValues(reason).Inc()
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, query.ErrMalformedToken):
		return "malformed_token"
	case errors.Is(err, query.ErrUnknownField):
		return "unknown_field"
	case errors.Is(err, query.ErrAmbiguousOrMissingOperator):
		return "ambiguous_or_missing_operator"
	case errors.Is(err, query.ErrInvalidValue):
		return "invalid_value"
	case errors.Is(err, query.ErrEmptyQuery):
		return "empty_query"
	default:
		return "other"
	}
}
