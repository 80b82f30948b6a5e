package alloc

/*
#include <stdlib.h>

static void *ffitypes_xmalloc(size_t n) {
	void *p = malloc(n == 0 ? 1 : n);
	if (p == NULL) {
		abort();
	}
	return p;
}
*/
import "C"

import (
	"unsafe"

	ffitypes "github.com/wippyai/ffi-types"
)

var _ ffitypes.Allocator = CHeap{}

// CHeap allocates from the C heap. Exhaustion aborts the process.
type CHeap struct{}

// Alloc returns size bytes of uninitialized C memory.
func (CHeap) Alloc(size uintptr) unsafe.Pointer {
	return C.ffitypes_xmalloc(C.size_t(size))
}

// Free releases memory obtained from Alloc. Free(nil) does nothing.
func (CHeap) Free(ptr unsafe.Pointer) {
	C.free(ptr)
}
