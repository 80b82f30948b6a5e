package ctype

import (
	ffitypes "github.com/wippyai/ffi-types"
	"github.com/wippyai/ffi-types/alloc"
)

var heap ffitypes.Allocator = alloc.CHeap{}

// SetAllocator installs the allocator for every owned descriptor built or
// freed afterwards. A nil allocator restores alloc.CHeap.
//
// Descriptors must be freed by the allocator that allocated them, so this
// must be called before any structure exists, and not concurrently with
// other ctype operations.
func SetAllocator(a ffitypes.Allocator) {
	if a == nil {
		a = alloc.CHeap{}
	}
	heap = a
}

// Allocator returns the allocator currently in use.
func Allocator() ffitypes.Allocator {
	return heap
}
