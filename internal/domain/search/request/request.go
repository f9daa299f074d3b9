// Package request validates and normalizes post search parameters.
package request

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/postquery/internal/domain"
	"github.com/kailas-cloud/postquery/internal/domain/search/filter"
	"github.com/kailas-cloud/postquery/internal/domain/search/query"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultLimit   = 27
	MaxLimit       = 100
)

// DefaultOrderBy is used when no order column is given.
const DefaultOrderBy = filter.OrderCreatedAt

// Request is a validated search query.
type Request struct {
	query string
	page  filter.Page
}

// New validates and normalizes search parameters.
// Defaults: limit=27, orderBy=createdAt. limit is clamped to maxLimit
// (MaxLimit when maxLimit <= 0). The query's space-separated tokens are sorted
// so that permutations of the same query share one cache entry.
func New(raw string, limit, pageNumber int, orderBy filter.OrderColumn, ascending bool, maxLimit int) (Request, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Request{}, query.ErrEmptyQuery
	}
	if len(trimmed) > MaxQueryLength {
		return Request{}, domain.NewValidationError("query", fmt.Sprintf("too long (max %d chars)", MaxQueryLength))
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	switch {
	case limit < 0:
		return Request{}, domain.NewValidationError("limit", fmt.Sprintf("must not be negative, got %d", limit))
	case limit == 0:
		limit = DefaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if orderBy == "" {
		orderBy = DefaultOrderBy
	}

	page, err := filter.NewPage(limit, pageNumber, orderBy, ascending)
	if err != nil {
		return Request{}, domain.NewValidationError("page", err.Error())
	}

	return Request{query: Normalize(trimmed), page: page}, nil
}

// Normalize sorts the space-separated tokens of raw. Empty chunks are kept:
// they tokenize to empty free words.
func Normalize(raw string) string {
	tokens := strings.Split(raw, " ")
	slices.Sort(tokens)
	return strings.Join(tokens, " ")
}

// ParseAscending accepts true/false/on/off; empty means descending.
func ParseAscending(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "", "false", "off":
		return false, nil
	case "true", "on":
		return true, nil
	}
	return false, domain.NewValidationError("ascending", fmt.Sprintf("%q is not one of true, false, on, off", s))
}

// Query returns the normalized query text.
func (r *Request) Query() string { return r.query }

// Page returns the paging parameters.
func (r *Request) Page() filter.Page { return r.page }

// Limit returns the page size.
func (r *Request) Limit() int { return r.page.Limit() }

// PageNumber returns the zero-based page index.
func (r *Request) PageNumber() int { return r.page.PageNumber() }

// OrderBy returns the sort column.
func (r *Request) OrderBy() filter.OrderColumn { return r.page.OrderBy() }

// Ascending reports the sort direction.
func (r *Request) Ascending() bool { return r.page.Ascending() }

// CacheKey identifies the result page of this request.
func (r *Request) CacheKey() string {
	return fmt.Sprintf("%s-%d-%d-%s-%t",
		r.query, r.page.Limit(), r.page.PageNumber(), r.page.OrderBy(), r.page.Ascending())
}
