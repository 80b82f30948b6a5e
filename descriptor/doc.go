// Package descriptor mirrors libffi's ffi_type and implements the raw tree
// walks over it: array creation, length scan, deep clone and recursive free.
//
// Type is laid out exactly like ffi_type; the equivalence is checked at
// compile time against the cgo view of <ffi.h>. Scalar descriptors are
// libffi's own statics (ffi_type_uint8, ...), resolved once at package
// initialisation and never freed. Structure descriptors and element arrays
// live on the C heap, obtained from a caller-supplied Allocator.
//
// # Array Format
//
// An element array is a contiguous run of *Type followed by a nil sentinel.
// Its length is not stored anywhere; ArrayLen scans for the sentinel:
//
//	┌──────┬──────┬──────┬──────┐
//	│ *u64 │ *i32 │ *{…} │ nil  │
//	└──────┴──────┴──────┴──────┘
//
// # Ownership Rules
//
// A STRUCT descriptor owns its element array; the array owns every STRUCT
// descriptor in its slots. Scalar slots are shared with libffi and skipped
// by Free. Nothing in this package records ownership beyond the tag: callers
// must free each owned root exactly once. Package ctype wraps these walks in
// handles that enforce that rule.
//
// Allocation failure is fatal. The allocator is expected to abort on its
// own; if it returns nil anyway the package logs at Fatal level, which exits.
package descriptor
