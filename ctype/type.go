package ctype

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/ffi-types/descriptor"
)

// Type is a handle to one libffi type descriptor.
type Type struct {
	raw   *descriptor.Type
	owned bool
}

func scalar(p descriptor.Primitive) *Type {
	return &Type{raw: descriptor.Scalar(p)}
}

// Scalar returns a borrowed handle to the static descriptor for p.
func Scalar(p descriptor.Primitive) *Type { return scalar(p) }

// Void returns the C void type. It is only meaningful as a return type.
func Void() *Type { return scalar(descriptor.PrimVoid) }

// U8 returns the unsigned 8-bit integer type.
func U8() *Type { return scalar(descriptor.PrimUint8) }

// I8 returns the signed 8-bit integer type.
func I8() *Type { return scalar(descriptor.PrimSint8) }

// U16 returns the unsigned 16-bit integer type.
func U16() *Type { return scalar(descriptor.PrimUint16) }

// I16 returns the signed 16-bit integer type.
func I16() *Type { return scalar(descriptor.PrimSint16) }

// U32 returns the unsigned 32-bit integer type.
func U32() *Type { return scalar(descriptor.PrimUint32) }

// I32 returns the signed 32-bit integer type.
func I32() *Type { return scalar(descriptor.PrimSint32) }

// U64 returns the unsigned 64-bit integer type.
func U64() *Type { return scalar(descriptor.PrimUint64) }

// I64 returns the signed 64-bit integer type.
func I64() *Type { return scalar(descriptor.PrimSint64) }

// Usize returns the unsigned integer type as wide as a pointer.
func Usize() *Type {
	switch unsafe.Sizeof(uintptr(0)) {
	case 2:
		return U16()
	case 4:
		return U32()
	default:
		return U64()
	}
}

// Isize returns the signed integer type as wide as a pointer.
func Isize() *Type {
	switch unsafe.Sizeof(uintptr(0)) {
	case 2:
		return I16()
	case 4:
		return I32()
	default:
		return I64()
	}
}

// F32 returns the C float type.
func F32() *Type { return scalar(descriptor.PrimFloat) }

// F64 returns the C double type.
func F64() *Type { return scalar(descriptor.PrimDouble) }

// LongDouble returns the C long double type.
func LongDouble() *Type { return scalar(descriptor.PrimLongDouble) }

// C32 returns the C _Complex float type.
func C32() *Type { return scalar(descriptor.PrimComplexFloat) }

// C64 returns the C _Complex double type.
func C64() *Type { return scalar(descriptor.PrimComplexDouble) }

// ComplexLongDouble returns the C _Complex long double type.
func ComplexLongDouble() *Type { return scalar(descriptor.PrimComplexLongDouble) }

// Pointer returns the C void* type, used for any pointer argument.
func Pointer() *Type { return scalar(descriptor.PrimPointer) }

// Structure builds a structure whose fields have the given types, in order.
// The field handles are consumed.
func Structure(fields ...*Type) *Type {
	return StructureFromArray(NewTypeArray(fields...))
}

// StructureFromArray builds a structure that takes over fields' backing
// array without copying it. fields is consumed.
func StructureFromArray(fields *TypeArray) *Type {
	n := fields.Len()
	elems := fields.take()
	t := &Type{raw: descriptor.NewStruct(heap, elems), owned: true}

	if ce := Logger().Check(zap.DebugLevel, "structure built"); ce != nil {
		ce.Write(zap.Uintptr("addr", t.raw.Addr()), zap.Int("fields", n))
	}
	return t
}

// TypeFromRaw wraps a raw descriptor. Structure descriptors become owned by
// the returned handle; scalars are borrowed. raw must come from IntoRaw or
// otherwise be owned by nobody else.
func TypeFromRaw(raw *descriptor.Type) *Type {
	if raw == nil {
		return nil
	}
	return &Type{raw: raw, owned: raw.IsStruct()}
}

// Clone returns an independent handle. Owned trees are deep-copied;
// scalars are shared.
func (t *Type) Clone() *Type {
	t.mustBeLive()
	if !t.owned {
		return &Type{raw: t.raw}
	}
	return &Type{raw: descriptor.Clone(heap, t.raw), owned: true}
}

// Free releases an owned descriptor tree. The handle is dead afterwards.
// Freeing a scalar or a dead handle only invalidates the handle.
func (t *Type) Free() {
	if t == nil || t.raw == nil {
		return
	}
	if t.owned {
		if ce := Logger().Check(zap.DebugLevel, "structure freed"); ce != nil {
			ce.Write(zap.Uintptr("addr", t.raw.Addr()))
		}
		descriptor.Free(heap, t.raw)
	}
	t.raw = nil
	t.owned = false
}

// IntoRaw consumes the handle and returns its descriptor. The caller takes
// over ownership of an owned descriptor.
func (t *Type) IntoRaw() *descriptor.Type {
	return t.take()
}

// RawPtr returns the descriptor address as an ffi_type*, for passing to
// libffi. Ownership is not transferred; the address is valid until the
// handle is freed or consumed. A dead handle returns nil.
func (t *Type) RawPtr() unsafe.Pointer {
	if t == nil {
		return nil
	}
	return unsafe.Pointer(t.raw)
}

// Descriptor returns the Go view of the descriptor, or nil for a dead handle.
func (t *Type) Descriptor() *descriptor.Type {
	if t == nil {
		return nil
	}
	return t.raw
}

// Owned reports whether the handle owns its descriptor.
func (t *Type) Owned() bool {
	return t != nil && t.owned
}

// IsStructure reports whether the handle refers to a structure descriptor.
func (t *Type) IsStructure() bool {
	return t != nil && t.raw != nil && t.raw.IsStruct()
}

// Live reports whether the handle still refers to a descriptor.
func (t *Type) Live() bool {
	return t != nil && t.raw != nil
}

func (t *Type) String() string {
	if !t.Live() {
		return "Type(<nil>)"
	}
	return fmt.Sprintf("Type(%#x)", t.raw.Addr())
}

func (t *Type) mustBeLive() {
	if !t.Live() {
		panic("ctype: use of freed or consumed Type")
	}
}

func (t *Type) take() *descriptor.Type {
	t.mustBeLive()
	raw := t.raw
	t.raw = nil
	t.owned = false
	return raw
}
