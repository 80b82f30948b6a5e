package descriptor

import "unsafe"

// Tag is the ffi_type type code.
type Tag uint16

// Type is the Go view of libffi's ffi_type.
//
// Size and Alignment are zero on a freshly built structure; libffi fills
// them in when a call interface using the descriptor is prepared.
type Type struct {
	Size      uintptr
	Alignment uint16
	Tag       Tag
	Elements  **Type
}

var tagNames = [...]string{
	TagVoid:    "void",
	TagInt:     "int",
	TagFloat:   "float",
	TagDouble:  "double",
	TagUint8:   "uint8",
	TagSint8:   "sint8",
	TagUint16:  "uint16",
	TagSint16:  "sint16",
	TagUint32:  "uint32",
	TagSint32:  "sint32",
	TagUint64:  "uint64",
	TagSint64:  "sint64",
	TagStruct:  "struct",
	TagPointer: "pointer",
	TagComplex: "complex",
}

// String returns the libffi name of the tag without the FFI_TYPE_ prefix.
func (t Tag) String() string {
	// libffi aliases LONGDOUBLE to DOUBLE where the two have the same layout.
	if t != TagDouble && t == TagLongDouble {
		return "longdouble"
	}
	if int(t) < len(tagNames) && tagNames[t] != "" {
		return tagNames[t]
	}
	return "unknown"
}

// IsStruct reports whether t is a heap-allocated structure descriptor.
func (t *Type) IsStruct() bool {
	return t.Tag == TagStruct
}

// Fields returns the element slots of a structure, without the sentinel.
// It returns nil for scalars. The slice aliases C memory owned by t.
func (t *Type) Fields() []*Type {
	if t.Tag != TagStruct || t.Elements == nil {
		return nil
	}
	return Elements(t.Elements, ArrayLen(t.Elements))
}

// Addr returns the descriptor address.
func (t *Type) Addr() uintptr {
	return uintptr(unsafe.Pointer(t))
}
