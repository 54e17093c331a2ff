package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error into the category the HTTP boundary
// maps to a status code.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindBadRequest   Kind = "bad_request"
	KindUnavailable  Kind = "unavailable"
	KindInternal     Kind = "internal"
)

// Error is a tagged domain failure. Message is safe to return to clients;
// Cause is internal only.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is makes two errors of the same kind and message match, so sentinel-style
// comparisons work on constructed errors.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind && e.Message == other.Message
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// CreatorNotFound: the admin id authorizing a registration does not exist.
func CreatorNotFound(creatorID string) *Error {
	return newError(KindNotFound, fmt.Sprintf("Creator with id '%s' not found.", creatorID), nil)
}

// AdminNotFound: no admin with the given email.
func AdminNotFound(email string) *Error {
	return newError(KindNotFound, fmt.Sprintf("Admin with email '%s' not found.", email), nil)
}

// EmailAlreadyExists: registration attempted with a taken email.
func EmailAlreadyExists(email string) *Error {
	return newError(KindConflict, fmt.Sprintf("Admin with email '%s' already exists.", email), nil)
}

// WrongPassword: credentials did not verify.
func WrongPassword(email string) *Error {
	return newError(KindUnauthorized, fmt.Sprintf("Wrong password for admin with email '%s'.", email), nil)
}

// TokenInvalid: the bearer token failed verification. All token failure
// causes collapse here; callers must not distinguish them.
func TokenInvalid() *Error {
	return newError(KindUnauthorized, "Error getting data from token", nil)
}

// SubjectNotFound: the external authorization service does not know the user.
func SubjectNotFound(userID string) *Error {
	return newError(KindNotFound, fmt.Sprintf("User with id '%s' not found.", userID), nil)
}

// InvalidRole: a role outside the assignable set was requested.
func InvalidRole(role string) *Error {
	return newError(KindBadRequest, fmt.Sprintf("Role '%s' is not assignable.", role), nil)
}

// BadRequest: the external service rejected the payload.
func BadRequest(message string) *Error {
	return newError(KindBadRequest, message, nil)
}

// Unavailable: the external service is unreachable or timed out.
func Unavailable(service string, cause error) *Error {
	return newError(KindUnavailable, fmt.Sprintf("Service '%s' unavailable.", service), cause)
}

// Internal wraps anything unclassified.
func Internal(message string, cause error) *Error {
	return newError(KindInternal, message, cause)
}

// KindOf extracts the kind of err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf extracts the client-safe message of err.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "An unexpected error occurred"
}

// HTTPStatus maps an error kind to the status code the boundary returns.
// Unauthorized wrong-password stays 401; token failures are mapped by the
// auth middleware before reaching here.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnavailable:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
