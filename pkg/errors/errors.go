package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
	CodeTimeout      = "TIMEOUT"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"
	CodeInvalidInput = "INVALID_INPUT"
	CodeLocked       = "RESOURCE_LOCKED"
	CodeRateLimited  = "RATE_LIMITED"
	CodeTooLarge     = "PAYLOAD_TOO_LARGE"
	CodeMediaType    = "UNSUPPORTED_MEDIA_TYPE"
)

var statusByCode = map[string]int{
	CodeNotFound:     http.StatusNotFound,
	CodeValidation:   http.StatusUnprocessableEntity,
	CodeConflict:     http.StatusConflict,
	CodeInternal:     http.StatusInternalServerError,
	CodeTimeout:      http.StatusGatewayTimeout,
	CodeUnavailable:  http.StatusServiceUnavailable,
	CodeInvalidInput: http.StatusBadRequest,
	CodeLocked:       http.StatusLocked,
	CodeRateLimited:  http.StatusTooManyRequests,
	CodeTooLarge:     http.StatusRequestEntityTooLarge,
	CodeMediaType:    http.StatusUnsupportedMediaType,
}

// StatusFor returns the HTTP status for code. Unknown codes are 500.
func StatusFor(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// AppError is an error that knows how it should be reported to a client.
// Err is never serialized.
type AppError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Code + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) StatusCode() int { return StatusFor(e.Code) }

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

func NotFoundWithID(resource, id string) *AppError {
	return New(CodeNotFound, resource+" not found").
		WithDetails(map[string]any{"resource": resource, "id": id})
}

func Validation(message string, details map[string]any) *AppError {
	return New(CodeValidation, message).WithDetails(details)
}

func InvalidInput(message string) *AppError { return New(CodeInvalidInput, message) }

func Conflict(message string) *AppError { return New(CodeConflict, message) }

// Locked reports a resource momentarily held by another request. Unlike
// Conflict, the same request may succeed shortly.
func Locked(message string) *AppError { return New(CodeLocked, message) }

func Internal(message string, err error) *AppError {
	return New(CodeInternal, message).WithCause(err)
}

func Timeout(message string) *AppError { return New(CodeTimeout, message) }

func Unavailable(service string) *AppError {
	return New(CodeUnavailable, service+" is temporarily unavailable")
}

func UnavailableWithCause(service string, err error) *AppError {
	return Unavailable(service).WithCause(err)
}

func RateLimited(message string) *AppError { return New(CodeRateLimited, message) }

func TooLarge(limit int64) *AppError {
	return New(CodeTooLarge, fmt.Sprintf("Request body exceeds %d bytes", limit))
}

func UnsupportedMediaType(message string) *AppError { return New(CodeMediaType, message) }

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError unwraps err to an AppError. Anything else becomes an opaque
// internal error.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}

func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
