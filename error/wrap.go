package error

import "fmt"

// Wrap erases context as a new Error whose source is cause. The handle
// renders as the context; the cause stays reachable via Source, Unwrap and
// errors.Is / errors.As. If cause is nil, an opaque cause is created.
func Wrap[C any](cause error, context C) *Error {
	if cause == nil {
		cause = Msg("unknown")
	}

	return New(context, WithSource(cause))
}

// Wrapf is Wrap with a Formatted context.
func Wrapf(cause error, format string, args ...any) *Error {
	return Wrap(cause, Formatted(fmt.Sprintf(format, args...)))
}

// Ensure converts any error to *Error.
//
// Behavior:
//   - nil input => nil output
//   - if err is already *Error => returned as-is (same pointer)
//   - otherwise err is erased under its concrete type, wrappers included
func Ensure(err error) *Error {
	if err == nil {
		return nil
	}

	if e, ok := err.(*Error); ok {
		return e
	}

	return New(err)
}
