package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind is the closed taxonomy of recoverable application failures.
type ErrorKind string

const (
	KindNotFound         ErrorKind = "NOT_FOUND"
	KindInvalidState     ErrorKind = "INVALID_STATE"
	KindLocationMismatch ErrorKind = "LOCATION_MISMATCH"
	KindConflict         ErrorKind = "CONFLICT"
	KindForbidden        ErrorKind = "FORBIDDEN"
	KindInvalidArgument  ErrorKind = "INVALID_ARGUMENT"
	KindGone             ErrorKind = "GONE"
	KindInternal         ErrorKind = "INTERNAL"
)

// AppError is a typed, recoverable error raised by the lifecycle and query
// layers and translated to a caller-facing response at the boundary.
type AppError struct {
	Kind    ErrorKind `json:"-"`
	Message string    `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// NewAppError creates an error of the given kind.
func NewAppError(kind ErrorKind, message string) error {
	return &AppError{Kind: kind, Message: message}
}

// NotFound means a referenced entity is absent or excluded by soft delete.
func NotFound(message string) error {
	return NewAppError(KindNotFound, message)
}

// InvalidState means a status precondition was violated.
func InvalidState(message string) error {
	return NewAppError(KindInvalidState, message)
}

// LocationMismatch means the cross-entity location invariant was violated.
func LocationMismatch(message string) error {
	return NewAppError(KindLocationMismatch, message)
}

// Conflict means a concurrent-modification guard tripped or a uniqueness
// invariant would be broken.
func Conflict(message string) error {
	return NewAppError(KindConflict, message)
}

// Forbidden means a role or ownership check failed.
func Forbidden(message string) error {
	return NewAppError(KindForbidden, message)
}

// InvalidArgument means the input was malformed beyond what is silently
// clamped.
func InvalidArgument(message string) error {
	return NewAppError(KindInvalidArgument, message)
}

// Gone means the target row was soft-deleted underneath the caller.
func Gone(message string) error {
	return NewAppError(KindGone, message)
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// HTTPStatus maps an error kind to the status code the transport layer uses.
func HTTPStatus(kind ErrorKind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidState, KindLocationMismatch, KindInvalidArgument:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindGone:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// WriteError sends the error response as JSON.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = &AppError{Kind: KindInternal, Message: "Internal Server Error"}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(HTTPStatus(appErr.Kind))
	fmt.Fprintf(w, `{"error": %q, "code": %q}`, appErr.Message, appErr.Kind)
}
