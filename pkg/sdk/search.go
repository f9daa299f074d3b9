package postquery

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/postquery/internal/domain/search/filter"
	"github.com/kailas-cloud/postquery/internal/domain/search/request"
	"github.com/kailas-cloud/postquery/internal/domain/search/result"
)

// Post is a search hit.
type Post = result.Post

// Author is the uploader of a post.
type Author = result.Author

// Name is a tag or artist name.
type Name = result.Name

// OrderColumn is a sortable post attribute.
type OrderColumn = filter.OrderColumn

// Sortable columns.
const (
	OrderCreatedAt    = filter.OrderCreatedAt
	OrderUpdatedAt    = filter.OrderUpdatedAt
	OrderLikes        = filter.OrderLikes
	OrderViews        = filter.OrderViews
	OrderCommentCount = filter.OrderCommentCount
)

type searchConfig struct {
	limit      int
	pageNumber int
	orderBy    OrderColumn
	ascending  bool
}

// SearchOption configures paging and ordering of a search.
type SearchOption func(*searchConfig)

// WithLimit sets the page size. Default: 27, capped by WithMaxLimit.
func WithLimit(n int) SearchOption {
	return func(c *searchConfig) { c.limit = n }
}

// WithPage selects the zero-based page.
func WithPage(n int) SearchOption {
	return func(c *searchConfig) { c.pageNumber = n }
}

// WithOrderBy sets the sort column. Default: OrderCreatedAt.
func WithOrderBy(col OrderColumn) SearchOption {
	return func(c *searchConfig) { c.orderBy = col }
}

// WithAscending sorts oldest/smallest first. Default is descending.
func WithAscending() SearchOption {
	return func(c *searchConfig) { c.ascending = true }
}

func newRequest(q string, maxLimit int, opts []SearchOption) (request.Request, error) {
	var sc searchConfig
	for _, o := range opts {
		o(&sc)
	}
	req, err := request.New(q, sc.limit, sc.pageNumber, sc.orderBy, sc.ascending, maxLimit)
	if err != nil {
		return request.Request{}, fmt.Errorf("search request: %w", err)
	}
	return req, nil
}

// Search runs an advanced search query and returns one page of posts.
func (c *Client) Search(ctx context.Context, q string, opts ...SearchOption) (posts []Post, err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "search", q, start, err) }()

	req, err := newRequest(q, c.maxLimit, opts)
	if err != nil {
		return nil, err
	}
	posts, err = c.searchSvc.Search(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return posts, nil
}

// Plan is a compiled query: the filter expression plus the page window.
type Plan struct {
	Filter    string
	Skip      int
	Take      int
	OrderBy   OrderColumn
	Ascending bool
}

// Explain compiles q without running it.
func Explain(q string, opts ...SearchOption) (Plan, error) {
	req, err := newRequest(q, request.MaxLimit, opts)
	if err != nil {
		return Plan{}, err
	}
	compiled, err := filter.CompileQuery(req.Query(), req.Page())
	if err != nil {
		return Plan{}, fmt.Errorf("explain: %w", err)
	}
	return Plan{
		Filter:    compiled.Filter().String(),
		Skip:      compiled.Skip(),
		Take:      compiled.Take(),
		OrderBy:   compiled.OrderBy(),
		Ascending: compiled.Ascending(),
	}, nil
}
