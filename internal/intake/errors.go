package intake

import (
	"errors"
	"fmt"
)

// Kind discriminates failure categories so the transport layer can map
// them onto response status codes while keeping one error body shape.
type Kind int

// Failure kinds.
const (
	KindUnknown Kind = iota
	KindInvalidPayload
	KindMissingField
	KindStoreUnavailable
	KindTriggerUnavailable
)

// Error carries a failure kind alongside the underlying cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err, or KindUnknown if err carries none.
func KindOf(err error) Kind {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return KindUnknown
}

func invalidPayload(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidPayload, Err: fmt.Errorf(format, args...)}
}

func missingField(err error) *Error {
	return &Error{Kind: KindMissingField, Err: err}
}
