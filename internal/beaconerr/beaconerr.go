// Package beaconerr defines the error taxonomy shared by the
// coordinator and the HTTP transport: a small, closed set of Kinds
// that every externally visible operation can fail with, so the
// transport layer can map errors to status codes without the
// coordinator knowing anything about HTTP.
package beaconerr

import (
	"errors"
	"fmt"
)

// Kind identifies one of this system's error categories.
type Kind int

const (
	// Internal covers bugs: generator misconfiguration, store
	// corruption, anything not attributable to caller input or peer
	// behavior. Never retried.
	Internal Kind = iota
	// MalformedPoint is returned when a caller-supplied group element
	// fails to decode.
	MalformedPoint
	// MalformedScalar is returned when a caller-supplied scalar fails
	// to decode.
	MalformedScalar
	// Conflict is returned by co-commit-random when a LocalRecord
	// already exists for the given commitment id.
	Conflict
	// NotFound is returned by reveal-random for an unknown or expired
	// commitment id. Idempotent: querying again still returns NotFound.
	NotFound
	// PeerUnavailable is returned when any peer invoked during dealer
	// fan-out fails, times out, or returns a non-success response.
	PeerUnavailable
)

func (k Kind) String() string {
	switch k {
	case MalformedPoint:
		return "malformed_point"
	case MalformedScalar:
		return "malformed_scalar"
	case Conflict:
		return "conflict"
	case NotFound:
		return "not_found"
	case PeerUnavailable:
		return "peer_unavailable"
	default:
		return "internal"
	}
}

// Error is the concrete error type the coordinator returns. Callers
// that need to branch on the failure category use errors.As against
// *Error and inspect Kind, rather than string-matching messages.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New constructs an Error of the given kind with a static message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an Error of the given kind that chains an
// underlying cause, preserved for logging via errors.Unwrap.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// As extracts a *Error from err, if any exists in its chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the Kind of err if it (or something it wraps) is an
// *Error, and Internal otherwise, the safe default for an
// unclassified failure.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return Internal
}
