// Package error provides a type-erased error handle.
//
// A *Error stores exactly one concrete value of any type behind a uniform
// handle and renders it through a per-type table of behavior bound when the
// value was erased:
//   - Error() uses the value's Error or String method, or its text form
//   - Debug() uses the value's Debug method or %#v
//   - Source()/Unwrap() expose the value's cause for errors.Is / errors.As
//
// The concrete value is recovered with the checked, exact-type downcasts:
//   - Downcast moves the value out and consumes the handle
//   - DowncastRef returns a pointer into the handle's storage
//   - DowncastMut mutates the stored value in place
//
// A failed downcast is an ordinary negative result and leaves the handle
// untouched. Drop runs the value's contract.Dropper hook exactly once;
// a value moved out by Downcast is never dropped by the handle.
//
// Msg, Errorf, Wrap, Wrapf and Ensure build handles from messages, context
// values and existing errors. Storage honors alignment requests made through
// contract.Aligner.
package error
