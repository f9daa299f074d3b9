package filter

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidPage is returned for out-of-range paging or ordering parameters.
var ErrInvalidPage = errors.New("invalid page")

// OrderColumn is a sortable post attribute.
type OrderColumn string

// Sortable columns.
const (
	OrderCreatedAt    OrderColumn = "createdAt"
	OrderUpdatedAt    OrderColumn = "updatedAt"
	OrderLikes        OrderColumn = "likes"
	OrderViews        OrderColumn = "views"
	OrderCommentCount OrderColumn = "commentCount"
)

// IsValid reports whether o is a sortable column.
func (o OrderColumn) IsValid() bool {
	switch o {
	case OrderCreatedAt, OrderUpdatedAt, OrderLikes, OrderViews, OrderCommentCount:
		return true
	}
	return false
}

// Page holds the paging and ordering parameters of a search.
type Page struct {
	limit      int
	pageNumber int
	orderBy    OrderColumn
	ascending  bool
}

// NewPage validates paging parameters: limit > 0, pageNumber >= 0 and a sortable orderBy.
// pageNumber*limit must fit in an int.
func NewPage(limit, pageNumber int, orderBy OrderColumn, ascending bool) (Page, error) {
	if limit <= 0 {
		return Page{}, fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidPage, limit)
	}
	if pageNumber < 0 {
		return Page{}, fmt.Errorf("%w: pageNumber must not be negative, got %d", ErrInvalidPage, pageNumber)
	}
	if pageNumber > math.MaxInt/limit {
		return Page{}, fmt.Errorf("%w: pageNumber %d is out of range for limit %d", ErrInvalidPage, pageNumber, limit)
	}
	if !orderBy.IsValid() {
		return Page{}, fmt.Errorf("%w: cannot order by %q", ErrInvalidPage, orderBy)
	}
	return Page{limit: limit, pageNumber: pageNumber, orderBy: orderBy, ascending: ascending}, nil
}

// Limit returns the page size.
func (p Page) Limit() int { return p.limit }

// PageNumber returns the zero-based page index.
func (p Page) PageNumber() int { return p.pageNumber }

// OrderBy returns the sort column.
func (p Page) OrderBy() OrderColumn { return p.orderBy }

// Ascending reports the sort direction.
func (p Page) Ascending() bool { return p.ascending }

// Skip returns the number of rows before the page.
func (p Page) Skip() int { return p.pageNumber * p.limit }

// Take returns the number of rows in the page.
func (p Page) Take() int { return p.limit }
