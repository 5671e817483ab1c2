package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks bad or disallowed user input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a page that was fetched but carried no media.
	ErrNotFound = errors.New("media not found")
	// ErrUpstream marks a failed page or asset fetch.
	ErrUpstream = errors.New("upstream fetch failed")
)

// ValidationError describes why a request was rejected.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UpstreamError is returned when an outbound request fails or answers outside 2xx.
// StatusCode is zero for transport failures.
type UpstreamError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("upstream %s: %v", e.URL, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
