package transport

import (
	"context"
	"errors"
)

// ErrAborted is returned when a call fails because its cancellation signal
// fired, either before the call started (no network I/O is performed) or
// mid-flight (the underlying request is aborted). Aborted calls are never
// failover-retried and never block-list an endpoint.
var ErrAborted = errors.New("transport: request aborted")

// IsAborted reports whether err represents caller-initiated cancellation,
// including context cancellation and deadline expiry surfaced by the
// underlying HTTP client.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// abortErr wraps cause so that errors.Is(err, ErrAborted) holds while the
// original abort reason stays inspectable.
type abortErr struct {
	cause error
}

func (e *abortErr) Error() string {
	if e.cause == nil {
		return ErrAborted.Error()
	}
	return ErrAborted.Error() + ": " + e.cause.Error()
}

func (e *abortErr) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrAborted}
	}
	return []error{ErrAborted, e.cause}
}

// newAbortErr builds the failure for a cancelled call. cause may be nil.
func newAbortErr(cause error) error {
	return &abortErr{cause: cause}
}
