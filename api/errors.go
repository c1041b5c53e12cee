package api

import (
	"errors"
	"fmt"
)

// ErrorKind tells a caller why a request failed.
type ErrorKind int

const (
	// KindNetwork covers transport failures: refused connections, timeouts, cancelled contexts.
	KindNetwork ErrorKind = iota + 1
	// KindStatus is a non-2xx answer from the API.
	KindStatus
	// KindMalformed is a 2xx answer whose body could not be decoded.
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// RequestError is returned by HTTPClient.Request for every failed call.
type RequestError struct {
	Kind       ErrorKind
	Method     string
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindStatus:
		return "unexpected status code: " + e.Status
	case KindMalformed:
		return fmt.Sprintf("malformed response from %s %s: %v", e.Method, e.URL, e.Err)
	default:
		return fmt.Sprintf("request %s %s failed: %v", e.Method, e.URL, e.Err)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// KindOf returns the ErrorKind of the first RequestError in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 or 403 answer.
func IsUnauthorized(err error) bool {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) || reqErr.Kind != KindStatus {
		return false
	}
	return reqErr.StatusCode == 401 || reqErr.StatusCode == 403
}
