package errs

import (
	"errors"
	"strings"
)

// Kind classifies a failure. The set is closed: repository and service
// operations fail with exactly one of these.
type Kind string

const (
	// KindConnection means the backing store could not be reached or a
	// connection could not be acquired. Fatal to the operation, never
	// retried internally.
	KindConnection Kind = "connection"

	// KindValidation means malformed input was rejected before any
	// statement executed.
	KindValidation Kind = "validation"

	// KindAuth means bad credentials or an invalid/revoked token. The
	// message must not reveal which part of the credential was wrong.
	KindAuth Kind = "auth"

	// KindNotFound means a referenced entity does not exist.
	KindNotFound Kind = "not_found"

	// KindConflict means a uniqueness constraint was violated, e.g. a
	// duplicate email or franchise name.
	KindConflict Kind = "conflict"

	// KindInternal is the fallback for unexpected failures.
	KindInternal Kind = "internal"
)

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "email", "error": "must be a valid email address" }
type FieldError struct {
	// Field is the field name/key the error relates to (e.g. "email").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// Error is the application error type.
//
// Fields:
//   - Kind: taxonomy classification, drives transport mapping.
//   - Code: machine-friendly code (e.g. "USER_ALREADY_EXISTS").
//   - Message: human-friendly message, safe to show to clients.
//   - Errors: per-field validation details, when applicable.
type Error struct {
	Kind    Kind         `json:"kind"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Error satisfies the built-in error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is lets errors.Is match two *Error values by kind, so callers can
// write errors.Is(err, errs.NotFound("")) style checks without caring
// about message text.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// WithCode returns a copy of the error with Code replaced.
func (e *Error) WithCode(code string) *Error {
	clone := *e
	clone.Code = code
	return &clone
}

// KindOf reports the taxonomy kind of err, or KindInternal for errors
// that did not originate from this package. It walks wrapped error
// chains.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// CodeFor converts human text into an UPPER_CASE_WITH_UNDERSCORES
// machine code.
//
// Example:
//
//	"menu item" -> "MENU_ITEM"
func CodeFor(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
