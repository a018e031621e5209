// Package common defines the error taxonomy shared by all layers of the
// service. Repository and codec layers return the sentinel values; the auth
// service classifies everything into a *Error carrying a caller-visible
// status and message. Callers should use errors.Is / errors.As to match.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Token codec errors.
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// Kind enumerates the caller-visible failure classes.
type Kind int

const (
	// KindAlreadyExists: email uniqueness violated at registration.
	KindAlreadyExists Kind = iota
	// KindInvalidCredentials: unknown email or wrong password,
	// intentionally indistinguishable.
	KindInvalidCredentials
	// KindBadRequest: catch-all for unexpected store/internal failures,
	// carries the underlying message.
	KindBadRequest
	// KindUnauthorized: missing, malformed, tampered or expired token.
	KindUnauthorized
)

// Error is the classified failure that crosses the service boundary.
// No other error type may reach a caller.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is lets errors.Is match two classified errors by kind, so tests and
// handlers can compare against a constructor result without caring about
// the message of a BadRequest.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Status returns the transport-agnostic status code for the error kind.
func (e *Error) Status() int {
	if e.Kind == KindUnauthorized {
		return 401
	}
	return 400
}

// AlreadyExists reports that a user with the requested email already exists.
func AlreadyExists() *Error {
	return &Error{Kind: KindAlreadyExists, Message: "User already exists"}
}

// InvalidCredentials is returned for both unknown email and wrong password.
// The message must stay identical in both cases.
func InvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Message: "Invalid credentials"}
}

// BadRequest wraps an unexpected internal failure, keeping its message.
func BadRequest(msg string) *Error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

// Unauthorized covers every token failure with one fixed message.
func Unauthorized() *Error {
	return &Error{Kind: KindUnauthorized, Message: "Invalid token"}
}

// Classified extracts a *Error from err, if one is present in its chain.
func Classified(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
