package query

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedToken signals a chunk with more than one ':' separator.
	ErrMalformedToken = errors.New("malformed token")
	// ErrUnknownField signals a prefix outside the recognized field set.
	ErrUnknownField = errors.New("unknown field")
	// ErrAmbiguousOrMissingOperator signals zero or several operators in a field value.
	ErrAmbiguousOrMissingOperator = errors.New("ambiguous or missing operator")
	// ErrInvalidValue signals a value that fails the field's type coercion.
	ErrInvalidValue = errors.New("invalid value")
	// ErrEmptyQuery signals a query made only of whitespace.
	ErrEmptyQuery = errors.New("empty query")
)

// ParseError wraps one of the sentinel errors with the offending chunk.
type ParseError struct {
	Kind   error
	Chunk  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %q", e.Kind.Error(), e.Chunk)
	}
	return fmt.Sprintf("%s: %q: %s", e.Kind.Error(), e.Chunk, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Kind }

func newParseError(kind error, chunk, reason string) error {
	return &ParseError{Kind: kind, Chunk: chunk, Reason: reason}
}
