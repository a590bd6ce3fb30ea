// Package error provides a type-erased error handle.
//
// Any Go value can be stored behind a single *Error and recovered through
// the checked Downcast family.
package error

import (
	"fmt"
	"iter"
	"reflect"
	"runtime"
	"strings"

	"github.com/next-trace/scg-anyerror/contract"
)

// Error owns exactly one erased value.
//
// An Error is meant to have one owner at a time. Drop releases the value;
// Downcast moves it out. After either, the handle renders as "<dropped>" or
// "<consumed>" and every downcast fails.
type Error struct {
	st       *storage
	cleanup  runtime.Cleanup
	autoDrop bool
}

// compile-time guarantee that *Error implements contract.Erased
var _ contract.Erased = (*Error)(nil)

// New erases v.
//
// When T is an interface type the dynamic type of v becomes the stored type,
// so New[error](err) can be downcast to err's concrete type. A nil interface
// value is stored under the interface type itself.
func New[T any](v T, opts ...Option) *Error {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}

	var vt *vtable

	if t := reflect.TypeFor[T](); t.Kind() == reflect.Interface {
		if dyn := reflect.TypeOf(any(v)); dyn != nil {
			vt = vtableOf(dyn)
		}
	}

	if vt == nil {
		vt = vtableFor[T]()
	}

	st := newStorage(vt, any(v))
	st.source, st.hasSource = cfg.source, cfg.hasSource

	e := &Error{st: st, autoDrop: cfg.autoDrop}
	if e.autoDrop {
		e.cleanup = runtime.AddCleanup(e, dropInBackground, st)
	}

	return e
}

// ------ standard error interface

func (e *Error) Error() string {
	if e == nil || e.st == nil {
		return "<nil>"
	}

	defer runtime.KeepAlive(e)

	switch e.State() {
	case StateConsumed:
		return "<consumed>"
	case StateDropped:
		return "<dropped>"
	}

	return e.st.vt.display(e.st.ptr)
}

// Unwrap returns the same value as Source.
func (e *Error) Unwrap() error { return e.Source() }

// ------ contract.Erased

// Debug renders the stored value with its Debug method or %#v.
func (e *Error) Debug() string {
	if e == nil || e.st == nil || !e.st.live() {
		return e.Error()
	}

	defer runtime.KeepAlive(e)

	return e.st.vt.debug(e.st.ptr)
}

// Source returns the stored value's cause, if any.
func (e *Error) Source() error {
	if e == nil || e.st == nil {
		return nil
	}

	if e.st.hasSource {
		return e.st.source
	}

	if !e.st.live() {
		return nil
	}

	defer runtime.KeepAlive(e)

	return e.st.vt.source(e.st.ptr)
}

// TypeName reports the stored type, e.g. "string" or "*fs.PathError".
func (e *Error) TypeName() string {
	if e == nil || e.st == nil {
		return "<nil>"
	}

	return e.st.vt.typ.String()
}

// Drop runs the stored value's drop hook. Only the first call on a live
// handle has an effect.
func (e *Error) Drop() {
	if e == nil || e.st == nil {
		return
	}

	if e.autoDrop {
		e.cleanup.Stop()
	}

	e.st.release(true)
	runtime.KeepAlive(e)
}

// ------ inspection

// Layout reports the size and alignment the value was allocated with.
func (e *Error) Layout() Layout {
	if e == nil || e.st == nil {
		return Layout{}
	}

	return e.st.vt.layout
}

// State reports where the handle is in its lifecycle. A nil handle reports
// StateDropped.
func (e *Error) State() State {
	if e == nil || e.st == nil {
		return StateDropped
	}

	return State(e.st.state.Load())
}

// Chain yields e and every error below it, depth-first. Errors with
// Unwrap() []error, such as errors.Join results, are yielded and then each
// branch is walked in order.
func (e *Error) Chain() iter.Seq[error] {
	return func(yield func(error) bool) {
		if e == nil {
			return
		}

		walk(e, yield)
	}
}

// walk reports false once yield asks to stop.
func walk(err error, yield func(error) bool) bool {
	for err != nil {
		if !yield(err) {
			return false
		}

		switch u := err.(type) {
		case interface{ Unwrap() error }:
			err = u.Unwrap()
		case interface{ Unwrap() []error }:
			for _, branch := range u.Unwrap() {
				if !walk(branch, yield) {
					return false
				}
			}

			return true
		default:
			return true
		}
	}

	return true
}

// RootCause returns the last error Chain yields. For a joined cause that is
// the deepest error of the last branch.
func (e *Error) RootCause() error {
	var root error
	for err := range e.Chain() {
		root = err
	}

	return root
}

// ------ errors.Is / errors.As

// Is reports whether the stored value is target or matches it through its
// own Is method.
func (e *Error) Is(target error) bool {
	val, ok := e.value()
	if !ok {
		return false
	}

	err, ok := val.(error)
	if !ok {
		return false
	}

	if reflect.TypeOf(err).Comparable() && err == target {
		return true
	}

	if x, ok := err.(interface{ Is(error) bool }); ok {
		return x.Is(target)
	}

	return false
}

// As fills target when it points at the stored type, or defers to the
// stored value's own As method.
func (e *Error) As(target any) bool {
	val, ok := e.value()
	if !ok || target == nil {
		return false
	}

	tv := reflect.ValueOf(target)
	if tv.Kind() == reflect.Pointer && !tv.IsNil() && tv.Elem().Type() == e.st.vt.typ {
		tv.Elem().Set(reflect.ValueOf(val))
		return true
	}

	if x, ok := val.(interface{ As(any) bool }); ok {
		return x.As(target)
	}

	return false
}

// value boxes a copy of the stored value for interface checks.
func (e *Error) value() (any, bool) {
	if e == nil || e.st == nil || !e.st.live() {
		return nil, false
	}

	defer runtime.KeepAlive(e)

	val, _ := e.st.vt.view(e.st.ptr)

	return val, val != nil
}

// ------ fmt.Formatter

// Format supports %s, %v, %q, %#v (debug) and %+v (message followed by the
// cause chain).
func (e *Error) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		switch {
		case f.Flag('#'):
			_, _ = fmt.Fprint(f, e.Debug())
		case f.Flag('+'):
			_, _ = fmt.Fprint(f, e.withCauses())
		default:
			_, _ = fmt.Fprint(f, e.Error())
		}
	case 's':
		_, _ = fmt.Fprint(f, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(f, "%q", e.Error())
	default:
		_, _ = fmt.Fprintf(f, "%%!%c(%s)", verb, e.Error())
	}
}

// causes lists the messages of every error below e in the chain. A joined
// error is listed through its branches only, since its own message repeats
// theirs.
func (e *Error) causes() []string {
	var out []string

	walk(e.Source(), func(err error) bool {
		if _, joined := err.(interface{ Unwrap() []error }); !joined {
			out = append(out, err.Error())
		}

		return true
	})

	return out
}

func (e *Error) withCauses() string {
	causes := e.causes()

	var b strings.Builder
	b.WriteString(e.Error())

	if len(causes) == 0 {
		return b.String()
	}

	b.WriteString("\n\nCaused by:")

	for i, c := range causes {
		if len(causes) == 1 {
			fmt.Fprintf(&b, "\n    %s", c)
			continue
		}

		fmt.Fprintf(&b, "\n    %d: %s", i, c)
	}

	return b.String()
}
