package domain

import (
	"errors"
	"fmt"
)

// ErrExternalAPI matches every *Error of kind KindExternalAPI via errors.Is.
var ErrExternalAPI = errors.New("external api error")

// ErrorKind classifies failures surfaced by the directory client.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindExternalAPI
)

func (k ErrorKind) String() string {
	switch k {
	case KindExternalAPI:
		return "external_api"
	default:
		return "unknown"
	}
}

// Cause refines an ErrorKind with what actually went wrong.
type Cause int

const (
	CauseTransport Cause = iota + 1
	CauseStatus
	CauseDecode
)

func (c Cause) String() string {
	switch c {
	case CauseTransport:
		return "transport"
	case CauseStatus:
		return "status"
	case CauseDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is the failure value returned by the directory client.
type Error struct {
	Kind       ErrorKind
	Cause      Cause
	Op         string
	StatusCode int
	Err        error
}

// NewExternalAPIError builds an Error of kind KindExternalAPI.
func NewExternalAPIError(cause Cause, op string, err error) *Error {
	return &Error{
		Kind:  KindExternalAPI,
		Cause: cause,
		Op:    op,
		Err:   err,
	}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports ErrExternalAPI for external API failures.
func (e *Error) Is(target error) bool {
	return target == ErrExternalAPI && e.Kind == KindExternalAPI
}

// KindOf returns the ErrorKind carried by err, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}

// StatusError reports an unexpected HTTP status from the remote API.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.StatusCode)
}
