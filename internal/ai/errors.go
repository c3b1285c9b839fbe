package ai

import (
	"errors"
	"fmt"
)

// Precondition failures, checked before any network call is made.
var (
	// ErrEmptySchedule indicates a consult was attempted without parsed tasks.
	ErrEmptySchedule = errors.New("schedule has no tasks to analyze")

	// ErrMissingCredential indicates a consult was attempted without an API key.
	ErrMissingCredential = errors.New("an API key is required")
)

// UpstreamError indicates the chat service answered with a non-success status
// or an unusable body. Message carries the service-provided error text when
// the service returned one.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("chat service returned HTTP %d", e.StatusCode)
}

// TransportError indicates the request never completed at the network level.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "could not reach chat service: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }
