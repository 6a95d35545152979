package scriptbox

import "errors"

var (
	// ErrDisposed is returned by Execute after Dispose has been called.
	ErrDisposed = errors.New("executor has been disposed")

	// ErrEmptyCode is returned when the submitted source is empty or
	// whitespace only.
	ErrEmptyCode = errors.New("code must not be empty")

	// ErrInvalidContext is returned when a context binding has an
	// illegal name or an unserializable value.
	ErrInvalidContext = errors.New("invalid execution context")
)
