package dto

import "net/http"

// Result statuses as they appear in the envelope
const (
	StatusSuccess         = "SUCCESS"
	StatusUnauthorized    = "UNAUTHORIZED"
	StatusForbidden       = "FORBIDDEN"
	StatusValidationError = "VALIDATION_ERROR"
	StatusNotFound        = "NOT_FOUND"
	StatusConflict        = "CONFLICT"
	StatusError           = "ERROR"
)

// Transport error codes, raised before a request reaches an action
const (
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeInvalidID       = "INVALID_ID"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeRouteNotFound   = "ROUTE_NOT_FOUND"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "INVALID_TOKEN"
	ErrCodeTokenRevoked = "TOKEN_REVOKED"
)

// statusHTTP maps result statuses to HTTP status codes
var statusHTTP = map[string]int{
	StatusSuccess:         http.StatusOK,
	StatusUnauthorized:    http.StatusUnauthorized,
	StatusForbidden:       http.StatusForbidden,
	StatusValidationError: http.StatusBadRequest,
	StatusNotFound:        http.StatusNotFound,
	StatusConflict:        http.StatusConflict,
	StatusError:           http.StatusInternalServerError,
}

// HTTPStatus returns the HTTP status code for a result status.
// Unknown statuses are reported as 500.
func HTTPStatus(status string) int {
	if code, ok := statusHTTP[status]; ok {
		return code
	}
	return http.StatusInternalServerError
}
