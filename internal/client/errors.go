package client

import (
	"fmt"
	"net/http"
)

// ConfigurationError reports a client that cannot be built from its Config.
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
	Cause  error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("configuration error: %s %s", e.Field, e.Reason)
	if e.Value != "" {
		msg = fmt.Sprintf("%s (got %q)", msg, e.Value)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Cause }

func (e *ConfigurationError) ErrorType() string { return "configuration" }

// ValidationError reports a malformed notification, detected before any request is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) ErrorType() string { return "validation" }

// TransportError wraps every failure between issuing the request and decoding
// the response. Cause keeps the original error for errors.Is / errors.As.
type TransportError struct {
	Op         string
	URL        string
	StatusCode int
	Cause      error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error: %s %s: status %d: %v", e.Op, e.URL, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("transport error: %s %s: %v", e.Op, e.URL, e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

func (e *TransportError) ErrorType() string { return "transport" }

// StatusError is a response outside the 2xx range.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *StatusError) ErrorType() string { return "invalid_status" }
