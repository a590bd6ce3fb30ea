package error

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"github.com/spf13/cast"

	"github.com/next-trace/scg-anyerror/contract"
)

// vtable binds the behavior of one concrete type to untyped storage. It is
// immutable once built and shared by every handle of that type.
type vtable struct {
	typ    reflect.Type
	layout Layout

	// view returns the stored value and a pointer to it, boxed.
	view func(p unsafe.Pointer) (val, ptr any)
	// store copies v, which must hold the concrete type, into p.
	store func(p unsafe.Pointer, v any)
	// clear zeroes the storage without running any hook.
	clear func(p unsafe.Pointer)

	// drop runs the value's Dropper hook, if any.
	drop    func(p unsafe.Pointer)
	display func(p unsafe.Pointer) string
	debug   func(p unsafe.Pointer) string
	source  func(p unsafe.Pointer) error
}

// vtables holds one vtable per reflect.Type. It is process-wide.
var vtables sync.Map

// vtableFor returns the vtable specialized for T.
func vtableFor[T any]() *vtable {
	t := reflect.TypeFor[T]()
	if vt, ok := vtables.Load(t); ok {
		return vt.(*vtable)
	}

	var zero T

	vt := bind(&vtable{
		typ:    t,
		layout: layoutOf(t, alignmentOf(t, zero, &zero)),
		view: func(p unsafe.Pointer) (any, any) {
			return *(*T)(p), (*T)(p)
		},
		store: func(p unsafe.Pointer, v any) {
			// A nil interface value leaves the zero T in place.
			if tv, ok := v.(T); ok {
				*(*T)(p) = tv
			}
		},
		clear: func(p unsafe.Pointer) {
			var zero T
			*(*T)(p) = zero
		},
	})

	actual, _ := vtables.LoadOrStore(t, vt)

	return actual.(*vtable)
}

// vtableOf builds the vtable for a type only known at run time, such as the
// dynamic type behind an interface value.
func vtableOf(t reflect.Type) *vtable {
	if vt, ok := vtables.Load(t); ok {
		return vt.(*vtable)
	}

	probe := reflect.New(t)

	vt := bind(&vtable{
		typ:    t,
		layout: layoutOf(t, alignmentOf(t, probe.Elem().Interface(), probe.Interface())),
		view: func(p unsafe.Pointer) (any, any) {
			v := reflect.NewAt(t, p)
			return v.Elem().Interface(), v.Interface()
		},
		store: func(p unsafe.Pointer, v any) {
			reflect.NewAt(t, p).Elem().Set(reflect.ValueOf(v))
		},
		clear: func(p unsafe.Pointer) {
			reflect.NewAt(t, p).Elem().SetZero()
		},
	})

	actual, _ := vtables.LoadOrStore(t, vt)

	return actual.(*vtable)
}

// bind derives the behavior entries from vt.view.
func bind(vt *vtable) *vtable {
	vt.drop = func(p unsafe.Pointer) {
		if d, ok := capability[contract.Dropper](vt.view(p)); ok {
			d.Drop()
		}
	}

	vt.display = func(p unsafe.Pointer) string {
		return display(vt.view(p))
	}

	vt.debug = func(p unsafe.Pointer) string {
		val, ptr := vt.view(p)
		if d, ok := capability[contract.Debugger](val, ptr); ok {
			return d.Debug()
		}

		return fmt.Sprintf("%#v", val)
	}

	vt.source = func(p unsafe.Pointer) error {
		val, ptr := vt.view(p)
		if u, ok := capability[interface{ Unwrap() error }](val, ptr); ok {
			return u.Unwrap()
		}

		if s, ok := capability[contract.Sourcer](val, ptr); ok {
			return s.Source()
		}

		return nil
	}

	return vt
}

// capability finds I on the value first, then on its pointer.
func capability[I any](val, ptr any) (I, bool) {
	if i, ok := val.(I); ok {
		return i, true
	}

	i, ok := ptr.(I)

	return i, ok
}

// alignmentOf asks the zero value of t for extra alignment. Pointer and
// interface types are skipped: their storage is a machine word and the
// zero value is nil.
func alignmentOf(t reflect.Type, val, ptr any) uintptr {
	if k := t.Kind(); k == reflect.Pointer || k == reflect.Interface {
		return 0
	}

	if a, ok := capability[contract.Aligner](val, ptr); ok {
		return a.Alignment()
	}

	return 0
}

func display(val, ptr any) string {
	if err, ok := capability[error](val, ptr); ok {
		return err.Error()
	}

	if s, ok := capability[fmt.Stringer](val, ptr); ok {
		return s.String()
	}

	if s, err := cast.ToStringE(val); err == nil {
		return s
	}

	return fmt.Sprint(val)
}
