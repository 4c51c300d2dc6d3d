package domainerrors

import "errors"

// Code classifies a domain failure. Transport layers map codes to wire
// responses; services branch on codes, never on message text.
type Code string

const (
	CodeInvalidInput    Code = "invalid_input"
	CodeNotFound        Code = "not_found"
	CodeExpired         Code = "expired"
	CodeMismatch        Code = "mismatch"
	CodeTooManyAttempts Code = "too_many_attempts"
	CodeAlreadyConsumed Code = "already_consumed"
	CodeWeakPassword    Code = "weak_password"
	CodeRateLimited     Code = "rate_limited"
	CodeUnauthorized    Code = "unauthorized"
	CodeInternal        Code = "internal"
)

// Error carries a code alongside a human-readable message. Messages are safe
// to log but must not leak internal state (remaining attempts, expiry times).
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that did not originate in this taxonomy.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
