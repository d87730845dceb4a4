package client

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// ErrRefreshUnavailable is returned when a token refresh is attempted with
// no refresh token in the store. It is treated exactly like a failed
// refresh: credentials are cleared and the session-expired hook fires.
var ErrRefreshUnavailable = errors.New("no refresh token available")

// HTTPError is the normalized failure shape surfaced to callers for every
// non-2xx response and for transport-level failures.
//
// Status 0 means no response was received at all (DNS, connection,
// timeout); Body and StatusText are empty in that case.
type HTTPError struct {
	Status     int
	StatusText string
	Body       []byte
	Message    string
	cause      error
}

func (e *HTTPError) Error() string {
	if e.IsNetworkError() {
		return e.Message
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.StatusText, e.Message)
}

// Unwrap exposes the underlying transport error for network failures.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// IsNetworkError reports whether no response was received at all.
func (e *HTTPError) IsNetworkError() bool {
	return e.Status == 0
}

func newNetworkError(cause error) *HTTPError {
	return &HTTPError{
		Status:  0,
		Message: "connection failed",
		cause:   cause,
	}
}

func newHTTPError(status int, statusText string, body []byte) *HTTPError {
	return &HTTPError{
		Status:     status,
		StatusText: statusText,
		Body:       body,
		Message:    messageFromBody(body, status),
	}
}

// messageFromBody prefers a server-supplied "message" (or "error") field,
// falling back to a generic description of the status.
func messageFromBody(body []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fmt.Sprintf("request failed with status %d", status)
}
