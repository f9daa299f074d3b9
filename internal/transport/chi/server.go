package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/postquery/internal/domain"
	"github.com/kailas-cloud/postquery/internal/domain/search/filter"
	"github.com/kailas-cloud/postquery/internal/domain/search/query"
	"github.com/kailas-cloud/postquery/internal/domain/search/request"
	"github.com/kailas-cloud/postquery/internal/domain/search/result"
	"github.com/kailas-cloud/postquery/internal/logger"
	healthuc "github.com/kailas-cloud/postquery/internal/usecase/health"
)

// statusClientClosedRequest follows the nginx convention for a client that disconnected.
const statusClientClosedRequest = 499

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

type searcher interface {
	Search(ctx context.Context, req *request.Request) ([]result.Post, error)
}

type healthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Limits bounds the page size accepted from clients.
type Limits struct {
	DefaultLimit int
	MaxLimit     int
}

// Server serves the post search HTTP API.
type Server struct {
	search        searcher
	health        healthChecker
	limits        Limits
	requests      *prometheus.CounterVec
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
// requests is a counter vec with label "status" ("ok"/"rejected"/"canceled"/"error"); may be nil.
func NewServer(
	search searcher,
	health healthChecker,
	limits Limits,
	requests *prometheus.CounterVec,
	logger *zap.Logger,
) *Server {
	if limits.MaxLimit <= 0 {
		limits.MaxLimit = request.MaxLimit
	}
	if limits.DefaultLimit <= 0 {
		limits.DefaultLimit = request.DefaultLimit
	}
	s := &Server{
		search:   search,
		health:   health,
		limits:   limits,
		requests: requests,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(query.ErrEmptyQuery, http.StatusBadRequest, ErrorCodeEmptyQuery),
		sentinelHandler(query.ErrMalformedToken, http.StatusBadRequest, ErrorCodeMalformedToken),
		sentinelHandler(query.ErrUnknownField, http.StatusBadRequest, ErrorCodeUnknownField),
		sentinelHandler(query.ErrAmbiguousOrMissingOperator,
			http.StatusBadRequest, ErrorCodeAmbiguousOrMissingOperator),
		sentinelHandler(query.ErrInvalidValue, http.StatusBadRequest, ErrorCodeInvalidValue),
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(filter.ErrInvalidPage, http.StatusBadRequest, ErrorCodeValidationFailed),
	}
	return s
}

// SearchPosts handles GET /api/v1/search/posts.
func (s *Server) SearchPosts(w http.ResponseWriter, r *http.Request) {
	req, err := s.searchRequestFromQuery(r.URL.Query())
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}

	posts, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}
	s.incRequests("ok")

	if posts == nil {
		posts = []result.Post{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{
		Posts:      posts,
		Limit:      req.Limit(),
		PageNumber: req.PageNumber(),
		OrderBy:    string(req.OrderBy()),
		Ascending:  req.Ascending(),
	})
}

func (s *Server) searchRequestFromQuery(q url.Values) (request.Request, error) {
	limit, err := intParam(q, "limit")
	if err != nil {
		return request.Request{}, err
	}
	if limit == 0 {
		limit = s.limits.DefaultLimit
	}
	pageNumber, err := intParam(q, "pageNumber")
	if err != nil {
		return request.Request{}, err
	}
	ascending, err := request.ParseAscending(q.Get("ascending"))
	if err != nil {
		return request.Request{}, err
	}
	return request.New(
		q.Get("query"), limit, pageNumber,
		filter.OrderColumn(q.Get("orderBy")), ascending, s.limits.MaxLimit,
	)
}

func intParam(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return n, nil
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) incRequests(status string) {
	if s.requests != nil {
		s.requests.WithLabelValues(status).Inc()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-facing message without exposing internals.
// Parse and validation errors only echo the caller's own input.
func safeDomainMessage(err error) string {
	var pe *query.ParseError
	if errors.As(err, &pe) {
		return pe.Error()
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	sentinels := []error{
		query.ErrEmptyQuery,
		filter.ErrInvalidPage,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	log := s.requestLogger(ctx)
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		log.Debug("request canceled by client", zap.Error(err))
		s.incRequests("canceled")
		writeError(w, statusClientClosedRequest, ErrorCodeRequestCanceled, "request canceled")
		return
	}
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Debug("request rejected", zap.Error(err))
			s.incRequests("rejected")
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	s.incRequests("error")
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

// requestLogger prefers the per-request logger set by wideEventMiddleware.
func (s *Server) requestLogger(ctx context.Context) *zap.Logger {
	if l := logger.FromContext(ctx); l.Core().Enabled(zap.ErrorLevel) {
		return l
	}
	return s.logger
}
