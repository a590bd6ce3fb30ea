package error

import (
	"errors"
	"fmt"
)

// Formatted is the stored type of errors built by Errorf. It is distinct
// from string, so Msg and Errorf results never downcast to each other.
type Formatted string

func (f Formatted) String() string { return string(f) }

// Msg erases text as a plain string.
func Msg(text string) *Error {
	return New(text)
}

// Errorf erases the formatted message as a Formatted value. An operand
// wrapped with %w becomes the source of the returned handle; several %w
// operands become one errors.Join source.
func Errorf(format string, args ...any) *Error {
	err := fmt.Errorf(format, args...)

	var opts []Option

	switch u := err.(type) {
	case interface{ Unwrap() error }:
		if cause := u.Unwrap(); cause != nil {
			opts = append(opts, WithSource(cause))
		}
	case interface{ Unwrap() []error }:
		if cause := errors.Join(u.Unwrap()...); cause != nil {
			opts = append(opts, WithSource(cause))
		}
	}

	return New(Formatted(err.Error()), opts...)
}
