package error

import (
	"reflect"
	"sync/atomic"
	"unsafe"
)

// State is the lifecycle stage of an erased value.
type State uint32

const (
	// StateConstructed means the handle owns a live value.
	StateConstructed State = iota
	// StateConsumed means the value was moved out by Downcast.
	StateConsumed
	// StateDropped means the drop hook ran and the value is gone.
	StateDropped
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateConsumed:
		return "consumed"
	case StateDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// storage is the heap cell behind a handle. It never points back at the
// handle, so it can outlive it as a cleanup argument.
type storage struct {
	vt    *vtable
	ptr   unsafe.Pointer
	state atomic.Uint32

	// source, when hasSource is set, replaces the vtable's source entry.
	source    error
	hasSource bool
}

func newStorage(vt *vtable, v any) *storage {
	st := &storage{vt: vt, ptr: allocate(vt.typ, vt.layout)}
	vt.store(st.ptr, v)

	return st
}

func (st *storage) live() bool {
	return State(st.state.Load()) == StateConstructed
}

// pointerTo is the only place untyped storage is reinterpreted. It returns
// nil unless the stored type is exactly want and the value is still live.
func (st *storage) pointerTo(want reflect.Type) unsafe.Pointer {
	if st == nil || st.vt.typ != want || !st.live() {
		return nil
	}

	return st.ptr
}

// release runs the drop hook and, when zero is set, clears the storage.
// It reports false when the value was already dropped or moved out.
func (st *storage) release(zero bool) bool {
	if !st.state.CompareAndSwap(uint32(StateConstructed), uint32(StateDropped)) {
		return false
	}

	p := st.ptr
	st.ptr = nil
	st.vt.drop(p)

	if zero {
		st.vt.clear(p)
	}

	return true
}

// consume marks the value as moved out. The caller must have copied the
// value before the storage is cleared.
func (st *storage) consume() bool {
	if !st.state.CompareAndSwap(uint32(StateConstructed), uint32(StateConsumed)) {
		return false
	}

	st.vt.clear(st.ptr)
	st.ptr = nil

	return true
}
