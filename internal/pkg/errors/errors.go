package errors

import (
	"fmt"
	"net/http"
)

// AppError represents an application error with additional context
type AppError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	StatusCode int         `json:"-"`
	Internal   error       `json:"-"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}
	return e.Message
}

// Unwrap returns the internal error for errors.Is and errors.As
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is reports whether target is an AppError of the same kind.
// Sentinels below carry only a code, so errors.Is(err, ErrEmptyData) works
// no matter which message or cause the concrete error holds.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Common error codes
const (
	ErrCodeInternal    = "INTERNAL_ERROR"
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeRateLimited = "RATE_LIMITED"

	// User data accessor error kinds
	ErrCodeLoad            = "LOAD_ERROR"
	ErrCodeEmptyData       = "EMPTY_DATA"
	ErrCodeInvalidArgument = "INVALID_ARGUMENT"
	ErrCodeNoMatch         = "NO_MATCH"
)

// Messages callers match on. They are part of the public contract and are
// kept verbatim, spelling included.
const (
	MsgLoadFailed     = "Failed to load users data"
	MsgEmptyData      = "No users loaded!"
	MsgNoSearchParams = "No search parameters provoded!"
	MsgNoMatch        = "No matching users found!"
)

// Sentinels for errors.Is
var (
	ErrLoad            = &AppError{Code: ErrCodeLoad}
	ErrEmptyData       = &AppError{Code: ErrCodeEmptyData}
	ErrInvalidArgument = &AppError{Code: ErrCodeInvalidArgument}
	ErrNoMatch         = &AppError{Code: ErrCodeNoMatch}
)

// New creates a new AppError
func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap wraps an error with an AppError
func Wrap(err error, code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Internal:   err,
	}
}

// WithDetails adds details to an AppError
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// LoadError reports a failed fetch of the users snapshot. The rendered
// message is "Failed to load users data: {cause}", where cause is the text
// of the transport error and may be empty.
func LoadError(cause error) *AppError {
	if cause == nil {
		cause = emptyCause{}
	}
	return Wrap(cause, ErrCodeLoad, MsgLoadFailed, http.StatusBadGateway)
}

// EmptyData reports a query against an empty snapshot
func EmptyData() *AppError {
	return New(ErrCodeEmptyData, MsgEmptyData, http.StatusConflict)
}

// InvalidArgument reports a rejected caller argument
func InvalidArgument(message string) *AppError {
	return New(ErrCodeInvalidArgument, message, http.StatusBadRequest)
}

// NoSearchParams reports a search invoked without parameters
func NoSearchParams() *AppError {
	return InvalidArgument(MsgNoSearchParams)
}

// NoMatch reports a search that matched nothing
func NoMatch() *AppError {
	return New(ErrCodeNoMatch, MsgNoMatch, http.StatusNotFound)
}

// Internal creates an internal server error
func Internal(message string, err error) *AppError {
	return Wrap(err, ErrCodeInternal, message, http.StatusInternalServerError)
}

// BadRequest creates a bad request error
func BadRequest(message string) *AppError {
	return New(ErrCodeBadRequest, message, http.StatusBadRequest)
}

// NotFound creates a not found error
func NotFound(resource string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// ValidationError creates a validation error
func ValidationError(message string, details interface{}) *AppError {
	return New(ErrCodeValidation, message, http.StatusBadRequest).WithDetails(details)
}

// RateLimited creates a rate limited error
func RateLimited(message string) *AppError {
	return New(ErrCodeRateLimited, message, http.StatusTooManyRequests)
}

// emptyCause stands in for a failure that carried no description.
type emptyCause struct{}

func (emptyCause) Error() string { return "" }
