package core

import (
	"errors"
	"fmt"
	"net/http"
)

// Auth contract errors
var (
	// ErrNoTokenInResponse means login succeeded at the HTTP level but the
	// server broke its contract by not returning a token. This is not a
	// credentials problem.
	ErrNoTokenInResponse = errors.New("login response did not include a token")
	ErrNotLoggedIn       = errors.New("not logged in")
)

// Config errors (client-side configuration)
var (
	ErrBaseURLRequired = errors.New("base URL is required")
)

// Cache errors
var (
	ErrCacheNotFound = errors.New("lookup not found in cache")
)

// APIError is a non-2xx response from the server. Message is taken from the
// response payload's "error" or "message" field when one is present,
// otherwise it falls back to "HTTP <status>".
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NetworkError means the request never reached a server: the connection was
// refused, DNS failed, or the transport gave up. No response body exists, so
// no API message is available.
type NetworkError struct {
	URL         string
	Unreachable bool
	Err         error
}

func (e *NetworkError) Error() string {
	if e.Unreachable {
		return fmt.Sprintf("cannot reach the server at %s - check that the backend is running and the API URL is correct", e.URL)
	}
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether err is an APIError with status 401. By the
// time a caller sees such an error the local session has already been
// cleared, so the expected follow-up is re-authentication.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
