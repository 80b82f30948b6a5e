package descriptor

import (
	"unsafe"

	"go.uber.org/zap"

	ffitypes "github.com/wippyai/ffi-types"
	"github.com/wippyai/ffi-types/errors"
)

const (
	slotSize = unsafe.Sizeof((*Type)(nil))
	typeSize = unsafe.Sizeof(Type{})
)

func mustAlloc(a ffitypes.Allocator, size uintptr) unsafe.Pointer {
	p := a.Alloc(size)
	if p == nil {
		Logger().Fatal("descriptor allocation failed",
			zap.Uintptr("size", size),
			zap.Error(errors.AllocationFailed(size)))
	}
	return p
}

// Elements views the first n slots of arr. The slice aliases C memory.
func Elements(arr **Type, n int) []*Type {
	if n == 0 {
		return nil
	}
	return unsafe.Slice(arr, n)
}

// NewArray allocates an array with n element slots plus the nil sentinel.
// Element slots are left uninitialized.
func NewArray(a ffitypes.Allocator, n int) **Type {
	arr := (**Type)(mustAlloc(a, uintptr(n+1)*slotSize))
	unsafe.Slice(arr, n+1)[n] = nil
	return arr
}

// ArrayLen counts the slots preceding the sentinel. A nil array has length 0.
func ArrayLen(arr **Type) int {
	if arr == nil {
		return 0
	}
	n := 0
	for p := arr; *p != nil; p = (**Type)(unsafe.Add(unsafe.Pointer(p), slotSize)) {
		n++
	}
	return n
}

// NewStruct allocates a structure descriptor that takes ownership of elems.
func NewStruct(a ffitypes.Allocator, elems **Type) *Type {
	t := (*Type)(mustAlloc(a, typeSize))
	*t = Type{Tag: TagStruct, Elements: elems}
	return t
}

// Clone deep-copies every structure reachable from t and shares scalars.
// Cloning a scalar returns t itself.
func Clone(a ffitypes.Allocator, t *Type) *Type {
	if t.Tag != TagStruct {
		return t
	}
	return NewStruct(a, CloneArray(a, t.Elements))
}

// CloneArray copies arr and clones each element. A nil array clones to nil.
func CloneArray(a ffitypes.Allocator, arr **Type) **Type {
	if arr == nil {
		return nil
	}
	n := ArrayLen(arr)
	out := NewArray(a, n)
	dst := Elements(out, n)
	for i, src := range Elements(arr, n) {
		dst[i] = Clone(a, src)
	}
	return out
}

// Free releases a structure descriptor and everything it owns.
// Scalars are left untouched.
func Free(a ffitypes.Allocator, t *Type) {
	if t.Tag != TagStruct {
		return
	}
	FreeArray(a, t.Elements)
	a.Free(unsafe.Pointer(t))
}

// FreeArray frees each element of arr depth-first, then arr itself.
func FreeArray(a ffitypes.Allocator, arr **Type) {
	if arr == nil {
		return
	}
	for p := arr; *p != nil; p = (**Type)(unsafe.Add(unsafe.Pointer(p), slotSize)) {
		Free(a, *p)
	}
	a.Free(unsafe.Pointer(arr))
}

// Walk visits t and its descendants depth-first in element order.
// Returning false from visit skips the node's children.
func Walk(t *Type, visit func(t *Type, depth int) bool) {
	walk(t, 0, visit)
}

func walk(t *Type, depth int, visit func(*Type, int) bool) {
	if !visit(t, depth) {
		return
	}
	for _, f := range t.Fields() {
		walk(f, depth+1, visit)
	}
}

// Allocations returns how many heap blocks the tree rooted at t owns:
// one per structure descriptor and one per element array.
func Allocations(t *Type) int {
	n := 0
	Walk(t, func(t *Type, _ int) bool {
		if t.Tag == TagStruct {
			n += 2
		}
		return true
	})
	return n
}

// ArrayAllocations is Allocations for a bare element array, counting the
// array's own block.
func ArrayAllocations(arr **Type) int {
	n := 1
	for _, t := range Elements(arr, ArrayLen(arr)) {
		n += Allocations(t)
	}
	return n
}
