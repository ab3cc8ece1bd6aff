package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorKind classifies upstream failures so callers never have to match on
// provider error wording.
type ErrorKind int

const (
	ErrorKindUnknown ErrorKind = iota
	ErrorKindAuth
	ErrorKindRateLimited
	ErrorKindTimeout
	ErrorKindNetwork
	ErrorKindBadRequest
	ErrorKindUpstream
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindAuth:
		return "auth"
	case ErrorKindRateLimited:
		return "rate_limited"
	case ErrorKindTimeout:
		return "timeout"
	case ErrorKindNetwork:
		return "network"
	case ErrorKindBadRequest:
		return "bad_request"
	case ErrorKindUpstream:
		return "upstream"
	default:
		return "unknown"
	}
}

// ProviderError wraps a hosted-service failure with its classification.
type ProviderError struct {
	Kind   ErrorKind
	Status int
	Err    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider error (status %d): %v", e.Kind, e.Status, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// KindOf extracts the classification from an error chain.
func KindOf(err error) ErrorKind {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ErrorKindUnknown
}

// classifyStatus maps an HTTP status to an error kind.
func classifyStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrorKindAuth
	case status == http.StatusTooManyRequests:
		return ErrorKindRateLimited
	case status == http.StatusBadRequest:
		return ErrorKindBadRequest
	case status >= 500:
		return ErrorKindUpstream
	default:
		return ErrorKindUnknown
	}
}

// classifyTransport maps request-level failures to timeout or network.
func classifyTransport(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorKindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrorKindTimeout
	}
	return ErrorKindNetwork
}
