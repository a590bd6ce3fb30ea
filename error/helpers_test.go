package error_test

import (
	"errors"
	"sync/atomic"
)

// ioError stands in for an OS-level error type with a kind and a message.
type ioError struct {
	kind string
	msg  string
}

func (e *ioError) Error() string { return e.msg }

// detectDrop counts how many times its drop hook runs.
type detectDrop struct {
	dropped *atomic.Int32
}

func newDetectDrop() (detectDrop, *atomic.Int32) {
	n := new(atomic.Int32)
	return detectDrop{dropped: n}, n
}

func (d detectDrop) Drop()         { d.dropped.Add(1) }
func (d detectDrop) Error() string { return "oh no!" }

type panicDrop struct{}

func (panicDrop) Drop()         { panic("drop failed") }
func (panicDrop) Error() string { return "panics on drop" }

type largeAligned struct {
	msg string
}

func (largeAligned) Alignment() uintptr { return 64 }
func (l largeAligned) Error() string    { return l.msg }

type hugeAligned struct {
	msg string
	buf [1000]byte
}

func (*hugeAligned) Alignment() uintptr { return 256 }
func (h hugeAligned) Error() string     { return h.msg }

type zeroErr struct{}

func (zeroErr) Error() string { return "zero" }

type zeroAligned struct{}

func (zeroAligned) Alignment() uintptr { return 64 }
func (zeroAligned) Error() string      { return "zero aligned" }

var errSentinel = errors.New("sentinel")

type zeroWrap struct{}

func (zeroWrap) Error() string { return "zero wrap" }
func (zeroWrap) Unwrap() error { return errSentinel }

type sourced struct {
	msg   string
	cause error
}

func (s sourced) Error() string { return s.msg }
func (s sourced) Source() error { return s.cause }
func (s sourced) Debug() string { return "sourced(" + s.msg + ")" }

type stringer struct{ id int }

func (s stringer) String() string { return "stringer" }
