package chi

import "github.com/kailas-cloud/postquery/internal/domain/search/result"

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.Code.
const (
	ErrorCodeBadRequest                 ErrorCode = "bad_request"
	ErrorCodeUnauthorized               ErrorCode = "unauthorized"
	ErrorCodeMalformedToken             ErrorCode = "malformed_token"
	ErrorCodeUnknownField               ErrorCode = "unknown_field"
	ErrorCodeAmbiguousOrMissingOperator ErrorCode = "ambiguous_or_missing_operator"
	ErrorCodeInvalidValue               ErrorCode = "invalid_value"
	ErrorCodeEmptyQuery                 ErrorCode = "empty_query"
	ErrorCodeValidationFailed           ErrorCode = "validation_failed"
	ErrorCodeInternalError              ErrorCode = "internal_error"
	ErrorCodeRequestCanceled            ErrorCode = "request_canceled"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SearchResponse is the body of GET /api/v1/search/posts.
type SearchResponse struct {
	Posts      []result.Post `json:"posts"`
	Limit      int           `json:"limit"`
	PageNumber int           `json:"pageNumber"`
	OrderBy    string        `json:"orderBy"`
	Ascending  bool          `json:"ascending"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
