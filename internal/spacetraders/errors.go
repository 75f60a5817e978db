package spacetraders

import (
	"errors"
	"fmt"
	"time"
)

//go:generate go tool stringer -type=ErrorKind -trimprefix=Kind

// ErrorKind classifies a failed API request.
type ErrorKind uint

const (
	KindUnknown   ErrorKind = iota
	KindTransport           // connection or IO failure
	KindDecode              // response does not have the expected shape
	KindAuth                // credential was rejected
	KindStatus              // unexpected HTTP status
)

// Sentinel errors for matching the kind of a [FetchError] with [errors.Is].
var (
	ErrTransport = errors.New("transport error")
	ErrDecode    = errors.New("decode error")
	ErrAuth      = errors.New("authorization error")
	ErrStatus    = errors.New("unexpected status")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindTransport:
		return ErrTransport
	case KindDecode:
		return ErrDecode
	case KindAuth:
		return ErrAuth
	case KindStatus:
		return ErrStatus
	}
	return nil
}

// FetchError is returned when an API request failed.
type FetchError struct {
	// Page is the number of the page that failed. 0 for non-paginated endpoints.
	Page int
	Kind ErrorKind
	// StatusCode is the HTTP status of the response. 0 when there was no response.
	StatusCode int
	Err        error
}

func newFetchError(page int, kind ErrorKind, statusCode int, err error) *FetchError {
	return &FetchError{Page: page, Kind: kind, StatusCode: statusCode, Err: err}
}

func (e *FetchError) Error() string {
	var kind string
	if x := e.Kind.sentinel(); x != nil {
		kind = x.Error()
	} else {
		kind = e.Kind.String()
	}
	var s string
	if e.Page > 0 {
		s = fmt.Sprintf("page %d: %s", e.Page, kind)
	} else {
		s = kind
	}
	if e.StatusCode != 0 {
		s += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel error matching the kind of e.
func (e *FetchError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && s == target
}

// rateLimitedError signals that a request must be retried after a delay.
// It is never returned to callers of the client.
type rateLimitedError struct {
	retryAfter time.Duration
}

func (e *rateLimitedError) Error() string {
	return fmt.Sprintf("rate limited: retry after %s", e.retryAfter)
}
