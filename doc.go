// Package ffitypes provides owned and borrowed handles over libffi type
// descriptors (ffi_type) and the null-terminated descriptor arrays libffi
// consumes when preparing a call interface.
//
// # Architecture Overview
//
//	ffitypes/            Root package with the Allocator interface
//	├── descriptor/      ffi_type layout mirror, static scalars, raw tree walks
//	├── ctype/           Type and TypeArray handles, structure composition
//	├── alloc/           C heap allocator and fault-detecting Tracking allocator
//	├── typespec/        Textual type signatures: parse and format
//	├── witmap/          WIT types mapped to C descriptors
//	├── errors/          Structured error types
//	└── cmd/ffitype/     Inspection and stress CLI
//
// # Quick Start
//
//	point := ctype.Structure(ctype.I64(), ctype.I64())
//	defer point.Free()
//
//	args := ctype.NewTypeArray(ctype.Pointer(), point.Clone())
//	defer args.Free()
//
//	// hand args.RawPtr() and point.RawPtr() to ffi_prep_cif
//
// # Ownership
//
// Scalar handles borrow libffi's static descriptors and never free them.
// Structure handles own their descriptor and, transitively, every structure
// nested inside it. Constructors that take handles consume them: after
// ctype.Structure(a, b) neither a nor b may be used again, and calling Free
// on them does nothing.
//
// # Descriptor Layout
//
// descriptor.Type is byte-for-byte identical to libffi's ffi_type:
//
//	Field       C type            Go type
//	─────────────────────────────────────────────
//	size        size_t            uintptr
//	alignment   unsigned short    uint16
//	type        unsigned short    descriptor.Tag
//	elements    ffi_type **       **descriptor.Type
//
// Size and alignment of a structure stay zero until libffi fills them in
// during ffi_prep_cif.
//
// # Thread Safety
//
// Scalar descriptors are immutable and safe for concurrent use. Owned trees
// can move between goroutines but must not be used by two at once.
package ffitypes
