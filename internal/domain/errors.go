package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoActiveEditor = errors.New("no active editor found")
	ErrEmptySelection = errors.New("no text selected")
)

// ValidationError means a request or response did not have the expected shape.
type ValidationError struct {
	Stage string // "request" or "response"
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Stage, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// TransportError is a network failure or a non-2xx reply. StatusCode is 0
// when no response was received.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("API request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError is a well-formed reply with success set to false.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return "API request was not successful: " + e.Message
	}
	return "API request was not successful"
}

// FailureMessage renders err the way it is shown to the user.
func FailureMessage(err error) string {
	return FailurePrefix + err.Error()
}
