package errors

import "net/http"

// ErrorCode represents the type of error
type ErrorCode string

const (
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrForbidden          ErrorCode = "FORBIDDEN"
	ErrConflict           ErrorCode = "CONFLICT"
	ErrValidation         ErrorCode = "VALIDATION_ERROR"
	ErrBadRequest         ErrorCode = "BAD_REQUEST"
	ErrInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrEmptyWord          ErrorCode = "EMPTY_WORD"
	ErrDuplicateWord      ErrorCode = "DUPLICATE_WORD"
	ErrPersistenceFailure ErrorCode = "PERSISTENCE_FAILURE"
	ErrUserBanned         ErrorCode = "USER_BANNED"
	ErrRateLimited        ErrorCode = "RATE_LIMITED"
)

// StatusCodeMap maps ErrorCode to HTTP status code
var StatusCodeMap = map[ErrorCode]int{
	ErrNotFound:           http.StatusNotFound,
	ErrUnauthorized:       http.StatusUnauthorized,
	ErrForbidden:          http.StatusForbidden,
	ErrConflict:           http.StatusConflict,
	ErrValidation:         http.StatusUnprocessableEntity,
	ErrBadRequest:         http.StatusBadRequest,
	ErrInternalError:      http.StatusInternalServerError,
	ErrEmptyWord:          http.StatusBadRequest,
	ErrDuplicateWord:      http.StatusConflict,
	ErrPersistenceFailure: http.StatusInternalServerError,
	ErrUserBanned:         http.StatusForbidden,
	ErrRateLimited:        http.StatusTooManyRequests,
}

// StatusCode returns the HTTP status code for this error code
func (e ErrorCode) StatusCode() int {
	if code, ok := StatusCodeMap[e]; ok {
		return code
	}
	return http.StatusInternalServerError
}
