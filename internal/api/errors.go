package api

import (
	"errors"
	"fmt"
	"net/http"
)

// AuthError is a credentials failure from login or registration. The message
// is deliberately generic for login; register surfaces backend text.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// FetchError is any non-2xx response. Message carries the backend's
// best-effort explanation and may be empty.
type FetchError struct {
	Status  int
	Message string
}

func (e *FetchError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("request failed (status %d)", e.Status)
}

// ValidationError is a rejected payload: either a local required-field check
// or a backend 400/422 whose body supplied a message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsAuthStatus reports whether err is an HTTP 401 or 403, which must
// invalidate the whole session rather than surface as a page error.
func IsAuthStatus(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Status == http.StatusUnauthorized || fe.Status == http.StatusForbidden
	}
	return false
}
