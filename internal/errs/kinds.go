package errs

import "fmt"

// Connection creates a KindConnection error wrapping a pool or store
// failure. The underlying error text is kept for logs but the client
// message stays generic.
func Connection(err error) *Error {
	msg := "database unavailable"
	if err != nil {
		msg = fmt.Sprintf("database unavailable: %v", err)
	}
	return &Error{
		Kind:    KindConnection,
		Code:    "CONNECTION_ERROR",
		Message: msg,
	}
}

// Validation creates a KindValidation error with optional field-level
// details.
func Validation(message string, fields ...FieldError) *Error {
	return &Error{
		Kind:    KindValidation,
		Code:    "VALIDATION_ERROR",
		Message: message,
		Errors:  fields,
	}
}

// Auth creates a KindAuth error. Callers must pass a message that does
// not disclose whether the email or the password was wrong.
func Auth(message string) *Error {
	return &Error{
		Kind:    KindAuth,
		Code:    "UNAUTHORIZED",
		Message: message,
	}
}

// NotFound creates a KindNotFound error.
func NotFound(message string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    "NOT_FOUND",
		Message: message,
	}
}

// NotFoundf creates a KindNotFound error with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return NotFound(fmt.Sprintf(format, args...))
}

// Conflict creates a KindConflict error for uniqueness violations.
func Conflict(message string) *Error {
	return &Error{
		Kind:    KindConflict,
		Code:    "CONFLICT",
		Message: message,
	}
}

// Internal creates the generic fallback error. The real cause belongs
// in logs, not in the client-facing message.
func Internal() *Error {
	return &Error{
		Kind:    KindInternal,
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
	}
}
