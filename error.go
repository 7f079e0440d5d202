package mediakeep

import (
	"errors"
	"fmt"
)

// Domain error codes - transport layer maps these to HTTP status codes.
const (
	ECONFLICT        = "conflict"            // 409 - Key already exists, caller must resolve
	EINTERNAL        = "internal"            // 500 - Internal server error
	EINVALID         = "invalid"             // 400 - Invalid input
	EMISSINGFIELD    = "missing_field"       // 400 - Required upload field absent
	EINVALIDCATEGORY = "invalid_category"    // 400 - Unknown category
	ETYPENOTALLOWED  = "type_not_allowed"    // 400 - Content type outside the category allow-list
	ENOTFOUND        = "not_found"           // 404 - Resource not found
	EUNAUTHORIZED    = "unauthorized"        // 401 - Authentication required
	EUNAVAILABLE     = "storage_unavailable" // 503 - Storage backend failure, caller may retry
)

// Error represents an application-specific error.
type Error struct {
	// Code is a machine-readable error code.
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// Err is the underlying error (not exposed to clients).
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf creates a new application error with a formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError wraps an underlying error with application context.
func WrapError(code string, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ErrorCode extracts the error code from an error.
// Returns EINTERNAL if the error is not an *Error.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage extracts the user-safe message from an error.
// Returns a generic message if the error is not an *Error.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "An internal error occurred."
}

// IsErrorCode checks if an error has the specified error code.
func IsErrorCode(err error, code string) bool {
	return ErrorCode(err) == code
}

// NotFound creates a not found error.
func NotFound(format string, args ...any) *Error {
	return Errorf(ENOTFOUND, format, args...)
}

// Invalid creates a validation error.
func Invalid(format string, args ...any) *Error {
	return Errorf(EINVALID, format, args...)
}

// MissingField creates an error for an absent required upload field.
func MissingField(field string) *Error {
	return Errorf(EMISSINGFIELD, "%s is required", field)
}

// InvalidCategory creates an error for an unknown category name.
func InvalidCategory(name string) *Error {
	return Errorf(EINVALIDCATEGORY, "unknown category %q", name)
}

// TypeNotAllowed creates an error for a content type outside a category's allow-list.
func TypeNotAllowed(contentType string, cat Category) *Error {
	return Errorf(ETYPENOTALLOWED, "content type %q is not allowed for category %s", contentType, cat)
}

// Conflict creates a duplicate-key error. This is an expected outcome of the
// upload protocol rather than a failure: the caller resolves it by renaming,
// replacing, or cancelling.
func Conflict(format string, args ...any) *Error {
	return Errorf(ECONFLICT, format, args...)
}

// Unauthorized creates an authentication error.
func Unauthorized(format string, args ...any) *Error {
	return Errorf(EUNAUTHORIZED, format, args...)
}

// Unavailable wraps a storage backend failure. The backend's own message
// travels in err; the gateway never retries on its own.
func Unavailable(message string, err error) *Error {
	return WrapError(EUNAVAILABLE, message, err)
}

// Internal creates an internal error, wrapping the underlying cause.
func Internal(message string, err error) *Error {
	return WrapError(EINTERNAL, message, err)
}
