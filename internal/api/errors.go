package api

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer from the server holding the document.
type APIError struct {
	URL        string
	StatusCode int
	Message    string // trimmed response body, may be empty
}

func (e *APIError) Error() string {
	status := fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.URL != "" {
		status = "GET " + e.URL + ": " + status
	}
	if e.Message == "" {
		return status
	}
	return status + ": " + e.Message
}

// IsNotFound reports a 404 or 410: there is no document at the URL.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusGone
}

// IsForbidden reports a 401 or 403. The document is fetched without
// credentials, so both mean the server will not serve it.
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsServerError reports a 5xx status.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// IsAPIError unwraps err to an *APIError.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
