package ctype

import (
	"fmt"
	"unsafe"

	"github.com/wippyai/ffi-types/descriptor"
)

// TypeArray is a handle to a null-terminated array of descriptor addresses.
//
// The handle remembers the element count so Len does not rescan; the
// sentinel is still written for libffi, which only understands that form.
type TypeArray struct {
	raw **descriptor.Type
	n   int
}

// NewTypeArray builds an array holding elems in order. The element handles
// are consumed: the array now owns whatever they owned.
func NewTypeArray(elems ...*Type) *TypeArray {
	for i, e := range elems {
		e.mustBeLive()
		for _, prev := range elems[:i] {
			if prev == e {
				panic("ctype: Type handle passed twice")
			}
		}
	}

	raw := descriptor.NewArray(heap, len(elems))
	slots := descriptor.Elements(raw, len(elems))
	for i, e := range elems {
		slots[i] = e.take()
	}
	return &TypeArray{raw: raw, n: len(elems)}
}

// TypeArrayFromRaw wraps a raw, null-terminated array and takes ownership
// of it. The length is recovered by scanning for the sentinel.
func TypeArrayFromRaw(raw **descriptor.Type) *TypeArray {
	if raw == nil {
		return nil
	}
	return &TypeArray{raw: raw, n: descriptor.ArrayLen(raw)}
}

// Len returns the number of elements, excluding the sentinel.
func (a *TypeArray) Len() int {
	if a == nil || a.raw == nil {
		return 0
	}
	return a.n
}

// Clone returns an independent deep copy.
func (a *TypeArray) Clone() *TypeArray {
	a.mustBeLive()
	return &TypeArray{raw: descriptor.CloneArray(heap, a.raw), n: a.n}
}

// Free releases the array and every owned element. The handle is dead
// afterwards; freeing a dead or consumed array does nothing.
func (a *TypeArray) Free() {
	if a == nil || a.raw == nil {
		return
	}
	descriptor.FreeArray(heap, a.raw)
	a.raw = nil
	a.n = 0
}

// Elements returns the element descriptors, aliasing the C array.
// The slice is valid until the array is freed or consumed.
func (a *TypeArray) Elements() []*descriptor.Type {
	if a == nil || a.raw == nil {
		return nil
	}
	return descriptor.Elements(a.raw, a.n)
}

// IntoRaw consumes the handle and returns the raw array; the caller takes
// over ownership.
func (a *TypeArray) IntoRaw() **descriptor.Type {
	return a.take()
}

// RawPtr returns the array address as an ffi_type**, for passing to
// libffi. Ownership is not transferred. A dead handle returns nil.
func (a *TypeArray) RawPtr() unsafe.Pointer {
	if a == nil {
		return nil
	}
	return unsafe.Pointer(a.raw)
}

// Live reports whether the handle still refers to an array.
func (a *TypeArray) Live() bool {
	return a != nil && a.raw != nil
}

func (a *TypeArray) String() string {
	if !a.Live() {
		return "TypeArray(<nil>)"
	}
	return fmt.Sprintf("TypeArray(%#x, len=%d)", uintptr(unsafe.Pointer(a.raw)), a.n)
}

func (a *TypeArray) mustBeLive() {
	if !a.Live() {
		panic("ctype: use of freed or consumed TypeArray")
	}
}

func (a *TypeArray) take() **descriptor.Type {
	a.mustBeLive()
	raw := a.raw
	a.raw = nil
	a.n = 0
	return raw
}
