package dto

import (
	"net/http"
	"strings"
)

// Error codes surfaced by the HTTP layer itself
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidJSON  = "INVALID_JSON"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// domainErrorStatus maps domain error codes to HTTP status codes.
// UPGRADE_REQUIRED is 403: the request is understood and the caller is
// authenticated, the subscription tier simply does not allow it.
var domainErrorStatus = map[string]int{
	"BAD_REQUEST":  http.StatusBadRequest,
	"INVALID_JSON": http.StatusBadRequest,

	"UNAUTHORIZED":     http.StatusUnauthorized,
	"TOKEN_EXPIRED":    http.StatusUnauthorized,
	"TOKEN_INVALID":    http.StatusUnauthorized,
	"FORBIDDEN":        http.StatusForbidden,
	"UPGRADE_REQUIRED": http.StatusForbidden,

	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"DUPLICATE_REQUEST":    http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"INVALID_INPUT":        http.StatusBadRequest,
	"VALIDATION_ERROR":     http.StatusBadRequest,
	"INVALID_CURRENCY":     http.StatusBadRequest,
	"INVALID_AMOUNT":       http.StatusBadRequest,
	"INVALID_PERIOD":       http.StatusBadRequest,
	"INVALID_REPORT_TYPE":  http.StatusBadRequest,
	"INVALID_GRANULARITY":  http.StatusBadRequest,
	"INVALID_ROLE":         http.StatusBadRequest,
	"INVALID_TIER":         http.StatusBadRequest,
	"INVALID_CATEGORY":     http.StatusBadRequest,
	"INVALID_METHOD":       http.StatusBadRequest,
	"WEAK_PASSWORD":        http.StatusBadRequest,
	"MISSING_CLIENT_EMAIL": http.StatusBadRequest,
	"IMPORT_INVALID_FILE":  http.StatusBadRequest,
	"IMPORT_TOO_LARGE":     http.StatusRequestEntityTooLarge,

	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"IMMUTABLE_RECORD":     http.StatusUnprocessableEntity,
	"CURRENCY_MISMATCH":    http.StatusUnprocessableEntity,
	"OVERPAYMENT":          http.StatusUnprocessableEntity,
	"HAS_PAYMENTS":         http.StatusUnprocessableEntity,
	"VOID_REASON_REQUIRED": http.StatusUnprocessableEntity,
	"ACCOUNT_ARCHIVED":     http.StatusUnprocessableEntity,
	"PRIMARY_IMMUTABLE":    http.StatusUnprocessableEntity,
	"LAST_OWNER":           http.StatusUnprocessableEntity,
	"CHAIN_BROKEN":         http.StatusUnprocessableEntity,

	"INVALID_CREDENTIALS": http.StatusUnauthorized,

	"RATE_LIMITED": http.StatusTooManyRequests,

	"INTERNAL_ERROR":      http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR": http.StatusInternalServerError,
	"ENCODE_FAILED":  http.StatusInternalServerError,
	"RENDER_FAILED":  http.StatusInternalServerError,
	"SEND_FAILED":    http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status for a domain error code.
// Codes not in the table fall back on naming conventions: INVALID_*
// is a malformed request, ALREADY_* and *_EXISTS are conflicts, and
// everything else is a business rule violation.
func GetHTTPStatus(code string) int {
	if status, ok := domainErrorStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	case strings.HasPrefix(code, "ALREADY_"), strings.HasSuffix(code, "_EXISTS"):
		return http.StatusConflict
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	}
	return http.StatusUnprocessableEntity
}
