package error

import (
	"fmt"
	"math/bits"
	"reflect"
	"sync"
	"unsafe"
)

const (
	// maxAlign is the largest alignment the allocator can guarantee.
	// Objects at or above one runtime page are page aligned.
	maxAlign = 8192

	// Pointerful small objects above this size carry an inline type header
	// that shifts the returned address.
	maxHeaderlessSize = 512

	// Allocations of this size or more are large objects starting on a
	// page boundary.
	largeObjectSize = 32 << 10
)

// Layout is the size and alignment an erased value was allocated with.
type Layout struct {
	Size  uintptr
	Align uintptr
}

func (l Layout) String() string {
	return fmt.Sprintf("size=%d align=%d", l.Size, l.Align)
}

// paddedTypes caches the padded allocation type per (type, align).
var paddedTypes sync.Map

type paddedKey struct {
	typ   reflect.Type
	align uintptr
}

var byteType = reflect.TypeFor[byte]()

// layoutOf merges the natural layout of t with a requested alignment.
// Panics when the request is not a power of two or exceeds maxAlign.
func layoutOf(t reflect.Type, requested uintptr) Layout {
	l := Layout{Size: t.Size(), Align: uintptr(t.Align())}
	if requested == 0 || requested <= l.Align {
		return l
	}

	if requested&(requested-1) != 0 || requested > maxAlign {
		panic(fmt.Sprintf("anyerr: invalid alignment %d for %s", requested, t))
	}

	l.Align = requested

	return l
}

// allocate returns zeroed memory for a value of type t laid out per l.
//
// Over-aligned requests are padded up to a power-of-two allocation size.
// The Go allocator places power-of-two size classes on boundaries of their
// own size, so the start of the block satisfies l.Align. Pointerful blocks
// that would get an inline header are promoted to large objects. The result
// is checked anyway; a misaligned block is fatal.
func allocate(t reflect.Type, l Layout) unsafe.Pointer {
	if l.Align <= uintptr(t.Align()) {
		return reflect.New(t).UnsafePointer()
	}

	p := reflect.New(paddedType(t, l.Align)).UnsafePointer()
	if uintptr(p)%l.Align != 0 {
		panic(fmt.Sprintf("anyerr: allocator returned %p, not aligned to %d for %s", p, l.Align, t))
	}

	return p
}

func paddedType(t reflect.Type, align uintptr) reflect.Type {
	key := paddedKey{typ: t, align: align}
	if pt, ok := paddedTypes.Load(key); ok {
		return pt.(reflect.Type)
	}

	size := max(t.Size(), align)
	if size&(size-1) != 0 {
		size = 1 << bits.Len64(uint64(size))
	}

	if size > maxHeaderlessSize && hasPointers(t) {
		size = max(size, largeObjectSize)
	}

	fields := []reflect.StructField{{Name: "Value", Type: t}}
	if pad := size - t.Size(); pad > 0 {
		fields = append(fields, reflect.StructField{Name: "Pad", Type: reflect.ArrayOf(int(pad), byteType)})
	}

	pt, _ := paddedTypes.LoadOrStore(key, reflect.StructOf(fields))

	return pt.(reflect.Type)
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
	}

	return false
}
