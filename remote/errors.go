package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// Operation names used in provider errors.
const (
	OpFetchPage   = "fetch_page"
	OpFetchStats  = "fetch_stats"
	OpMutateField = "mutate_field"
)

// Error is the typed failure a provider reports. Status carries the HTTP
// status from the backend, or 0 when the request never completed. Message
// is safe to surface in the admin UI.
type Error struct {
	Op         string
	Status     int
	Message    string
	underlying error
}

// NewError builds a provider error wrapping the underlying cause.
func NewError(op string, status int, message string, err error) *Error {
	return &Error{Op: op, Status: status, Message: message, underlying: err}
}

func (e *Error) Error() string {
	if e.underlying != nil {
		return fmt.Sprintf("%s (%d): %s: %v", e.Op, e.Status, e.Message, e.underlying)
	}
	return fmt.Sprintf("%s (%d): %s", e.Op, e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.underlying
}

// Retryable reports whether the failure is transient: rate limiting, server
// errors, or a request that never reached the backend. Only idempotent
// reads may act on it; mutations are never auto-retried.
func (e *Error) Retryable() bool {
	if e.Status == 0 {
		return true
	}
	return e.Status == http.StatusTooManyRequests || e.Status >= http.StatusInternalServerError
}

// AsError unwraps err into a provider *Error when one is in the chain.
func AsError(err error) (*Error, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
