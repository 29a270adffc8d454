package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/marmos91/sharefs/pkg/sharefs"
)

// APIError is a problem response returned by the gateway.
type APIError struct {
	Type       string `json:"type,omitempty"`
	Title      string `json:"title"`
	Detail     string `json:"detail,omitempty"`
	Instance   string `json:"instance,omitempty"`
	Code       string `json:"code,omitempty"`
	StatusCode int    `json:"status"`
}

func newAPIError(status int, body []byte) *APIError {
	var e APIError
	if json.Unmarshal(body, &e) != nil || e.Title == "" {
		e = APIError{Title: http.StatusText(status), Detail: string(body)}
	}
	e.StatusCode = status
	return &e
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Title
	if e.Detail != "" {
		msg = e.Detail
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return fmt.Sprintf("%d %s", e.StatusCode, msg)
}

// Is matches sharefs error codes carried in the response, so callers can
// test remote and local failures the same way:
//
//	errors.Is(err, sharefs.ErrDirectoryNotEmpty)
func (e *APIError) Is(target error) bool {
	code, ok := sharefs.ParseErrorCode(e.Code)
	if !ok {
		return false
	}
	return (&sharefs.Error{Code: code}).Is(target)
}

// IsAuthError reports a rejected or missing token.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsNotFound reports a missing path or route.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsConflict reports an existing target, a non-empty directory or a kind
// mismatch.
func (e *APIError) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}
