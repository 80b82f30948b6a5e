// Package ctype provides handles over libffi type descriptors.
//
// A Type is either borrowed or owned, fixed when the handle is created:
//
//   - Scalar accessors (U8, I64, Pointer, ...) return borrowed handles to
//     libffi's static descriptors. Clone returns another handle to the same
//     static; Free only invalidates the handle.
//   - Structure and StructureFromArray return owned handles. The handle owns
//     the descriptor, its element array and every nested structure. Clone
//     deep-copies all of it; Free releases all of it exactly once.
//
// A TypeArray is a null-terminated C array of descriptor addresses, the
// form libffi takes for argument lists and structure elements. It owns its
// backing block and every owned element.
//
// # Consumption
//
// Constructors that take handles consume them. The handles passed to
// Structure or NewTypeArray, and the array passed to StructureFromArray,
// are dead afterwards: raw accessors return nil, Free does nothing, and
// passing them to another constructor panics. IntoRaw consumes explicitly
// and hands the raw pointer to the caller; TypeFromRaw and TypeArrayFromRaw
// wrap a raw pointer back into an owning handle.
//
//	fields := ctype.NewTypeArray(ctype.U64())
//	st := ctype.StructureFromArray(fields) // fields is consumed
//	fields.Free()                          // no-op
//	st.Free()                              // frees descriptor and array once
//
// # Allocation
//
// Owned descriptors come from the process-wide allocator, alloc.CHeap by
// default. SetAllocator installs another one, typically an alloc.Tracking
// in tests; it must be called before any structure is built.
//
// # Thread Safety
//
// Borrowed handles may be shared freely. Owned handles may be passed
// between goroutines but must not be used by two at the same time.
package ctype
