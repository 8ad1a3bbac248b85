package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures so the boundary layer can pick the right
// user-facing message. The string values match the errorType contract the
// web client already understands.
type ErrorKind string

const (
	KindInvalidInput ErrorKind = "invalid_input"
	KindTimeout      ErrorKind = "timeout"
	KindNotFound     ErrorKind = "not_found"
	KindAccessDenied ErrorKind = "access_denied"
	KindServerError  ErrorKind = "server_error"
	KindUpstream     ErrorKind = "upstream_error"
	KindEmptyResult  ErrorKind = "empty_result"
	KindParseError   ErrorKind = "parse_error"
	KindModelLoading ErrorKind = "model_loading"
	KindAuthError    ErrorKind = "auth_error"
	KindAllFailed    ErrorKind = "generation_failed"
)

// Error carries a classified failure across component boundaries. Status is
// the upstream HTTP status when one exists, zero otherwise.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a classified error without an upstream status.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError attaches a cause to a classified error.
func WrapError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// StatusError classifies an upstream HTTP status into the error taxonomy.
func StatusError(status int, format string, args ...any) *Error {
	return &Error{Kind: KindOfStatus(status), Status: status, Message: fmt.Sprintf(format, args...)}
}

// KindOfStatus maps an HTTP status to the taxonomy used for upstream
// failures (source sites and providers alike).
func KindOfStatus(status int) ErrorKind {
	switch {
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAccessDenied
	case status >= http.StatusInternalServerError:
		return KindServerError
	default:
		return KindUpstream
	}
}

// KindOf extracts the classification from any error; unclassified errors
// report KindUpstream so callers always have something actionable.
func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindUpstream
}

// StatusOf extracts the upstream HTTP status from a classified error, or
// zero when none was recorded.
func StatusOf(err error) int {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Status
	}
	return 0
}
