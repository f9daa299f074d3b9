package postquery

import (
	"github.com/kailas-cloud/postquery/internal/domain"
	"github.com/kailas-cloud/postquery/internal/domain/search/query"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrMalformedToken             = query.ErrMalformedToken
	ErrUnknownField               = query.ErrUnknownField
	ErrAmbiguousOrMissingOperator = query.ErrAmbiguousOrMissingOperator
	ErrInvalidValue               = query.ErrInvalidValue
	ErrEmptyQuery                 = query.ErrEmptyQuery
	ErrValidation                 = domain.ErrValidation
	ErrStorage                    = domain.ErrStorage
)

// ParseError names the query chunk that failed to parse. Use errors.As() to extract it.
type ParseError = query.ParseError
