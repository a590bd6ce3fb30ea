// Package contract exposes the minimal interfaces shared by the erased error
// handle and the concrete values stored inside it.
//
// Concrete values opt into extra behavior by implementing the small
// capability interfaces below; none of them is required to be erased.
package contract

// Erased is the stable surface of a type-erased error handle.
//
// Implementations must:
//   - Render Error() and Debug() exactly as the stored concrete value would.
//   - Support errors.Unwrap via Unwrap(), returning the same value as Source().
//   - Run the stored value's drop hook at most once.
type Erased interface {
	error
	Debug() string
	Source() error
	Unwrap() error
	// TypeName reports the concrete type of the stored value.
	TypeName() string
	Drop()
}

// Dropper is implemented by values that own resources which must be
// released when the handle holding them is dropped.
type Dropper interface {
	Drop()
}

// Debugger overrides the %#v rendering used for debug output.
type Debugger interface {
	Debug() string
}

// Sourcer reports an underlying cause for values that do not implement
// Unwrap() error.
type Sourcer interface {
	Source() error
}

// Aligner requests storage aligned to more than the type's natural Go
// alignment. The result must be a power of two.
type Aligner interface {
	Alignment() uintptr
}
