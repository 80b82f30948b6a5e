package ffitypes

import "unsafe"

// Allocator hands out C heap memory for descriptors and descriptor arrays.
//
// Memory returned by Alloc must not be managed by the Go garbage collector:
// libffi keeps raw addresses into it. Implementations abort the process
// when memory is exhausted; Alloc never returns nil for a non-zero size.
type Allocator interface {
	Alloc(size uintptr) unsafe.Pointer
	Free(ptr unsafe.Pointer)
}
