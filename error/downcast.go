package error

import (
	"reflect"
	"runtime"
)

// Downcast moves the stored value out when its type is exactly U.
//
// On success the handle is consumed: its drop hook will never run and the
// returned value is the only copy. On mismatch it returns the zero U and
// false, leaving e untouched so the caller can try another type, render it
// or drop it. A nil, dropped or consumed handle never matches.
func Downcast[U any](e *Error) (U, bool) {
	var zero U

	if e == nil {
		return zero, false
	}

	defer runtime.KeepAlive(e)

	p := e.st.pointerTo(reflect.TypeFor[U]())
	if p == nil {
		return zero, false
	}

	v := *(*U)(p)
	if !e.st.consume() {
		return zero, false
	}

	if e.autoDrop {
		e.cleanup.Stop()
	}

	return v, true
}

// DowncastRef returns a pointer to the stored value when its type is exactly
// U. Nothing is copied or moved; the pointer is valid until the handle is
// dropped or consumed.
func DowncastRef[U any](e *Error) (*U, bool) {
	if e == nil {
		return nil, false
	}

	p := e.st.pointerTo(reflect.TypeFor[U]())
	runtime.KeepAlive(e)

	if p == nil {
		return nil, false
	}

	return (*U)(p), true
}

// DowncastMut calls fn with a mutable pointer to the stored value when its
// type is exactly U. Changes made by fn are seen by later downcasts and by
// Error/Debug. It reports whether fn ran.
func DowncastMut[U any](e *Error, fn func(*U)) bool {
	if e == nil {
		return false
	}

	defer runtime.KeepAlive(e)

	p := e.st.pointerTo(reflect.TypeFor[U]())
	if p == nil {
		return false
	}

	fn((*U)(p))

	return true
}

// Holds reports whether the handle currently stores a value of type U.
func Holds[U any](e *Error) bool {
	if e == nil {
		return false
	}

	defer runtime.KeepAlive(e)

	return e.st.pointerTo(reflect.TypeFor[U]()) != nil
}
