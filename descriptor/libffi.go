package descriptor

/*
#cgo pkg-config: libffi
#include <ffi.h>

// Order must match the Primitive constants.
static ffi_type *ffitypes_primitives[] = {
	&ffi_type_void,
	&ffi_type_uint8,
	&ffi_type_sint8,
	&ffi_type_uint16,
	&ffi_type_sint16,
	&ffi_type_uint32,
	&ffi_type_sint32,
	&ffi_type_uint64,
	&ffi_type_sint64,
	&ffi_type_float,
	&ffi_type_double,
	&ffi_type_longdouble,
	&ffi_type_complex_float,
	&ffi_type_complex_double,
	&ffi_type_complex_longdouble,
	&ffi_type_pointer,
};

static int ffitypes_primitive_count(void) {
	return (int)(sizeof(ffitypes_primitives) / sizeof(ffitypes_primitives[0]));
}

static ffi_type *ffitypes_primitive(int i) {
	return ffitypes_primitives[i];
}
*/
import "C"

import "unsafe"

// Tag values are libffi's FFI_TYPE_* codes.
const (
	TagVoid       Tag = C.FFI_TYPE_VOID
	TagInt        Tag = C.FFI_TYPE_INT
	TagFloat      Tag = C.FFI_TYPE_FLOAT
	TagDouble     Tag = C.FFI_TYPE_DOUBLE
	TagLongDouble Tag = C.FFI_TYPE_LONGDOUBLE
	TagUint8      Tag = C.FFI_TYPE_UINT8
	TagSint8      Tag = C.FFI_TYPE_SINT8
	TagUint16     Tag = C.FFI_TYPE_UINT16
	TagSint16     Tag = C.FFI_TYPE_SINT16
	TagUint32     Tag = C.FFI_TYPE_UINT32
	TagSint32     Tag = C.FFI_TYPE_SINT32
	TagUint64     Tag = C.FFI_TYPE_UINT64
	TagSint64     Tag = C.FFI_TYPE_SINT64
	TagStruct     Tag = C.FFI_TYPE_STRUCT
	TagPointer    Tag = C.FFI_TYPE_POINTER
	TagComplex    Tag = C.FFI_TYPE_COMPLEX
)

// Type must match ffi_type exactly. Each pair of array lengths below is
// non-negative only when the two quantities are equal.
var (
	_ [unsafe.Sizeof(Type{}) - unsafe.Sizeof(C.ffi_type{})]struct{}
	_ [unsafe.Sizeof(C.ffi_type{}) - unsafe.Sizeof(Type{})]struct{}

	_ [unsafe.Offsetof(Type{}.Size) - unsafe.Offsetof(C.ffi_type{}.size)]struct{}
	_ [unsafe.Offsetof(C.ffi_type{}.size) - unsafe.Offsetof(Type{}.Size)]struct{}

	_ [unsafe.Offsetof(Type{}.Alignment) - unsafe.Offsetof(C.ffi_type{}.alignment)]struct{}
	_ [unsafe.Offsetof(C.ffi_type{}.alignment) - unsafe.Offsetof(Type{}.Alignment)]struct{}

	_ [unsafe.Offsetof(Type{}.Tag) - unsafe.Offsetof(C.ffi_type{}._type)]struct{}
	_ [unsafe.Offsetof(C.ffi_type{}._type) - unsafe.Offsetof(Type{}.Tag)]struct{}

	_ [unsafe.Offsetof(Type{}.Elements) - unsafe.Offsetof(C.ffi_type{}.elements)]struct{}
	_ [unsafe.Offsetof(C.ffi_type{}.elements) - unsafe.Offsetof(Type{}.Elements)]struct{}
)

func loadPrimitives() [numPrimitives]*Type {
	if int(C.ffitypes_primitive_count()) != int(numPrimitives) {
		panic("descriptor: primitive table out of sync with libffi statics")
	}
	var table [numPrimitives]*Type
	for i := range table {
		table[i] = (*Type)(unsafe.Pointer(C.ffitypes_primitive(C.int(i))))
	}
	return table
}
