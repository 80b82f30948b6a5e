// Package errors provides structured error types for the ffi-types library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the path into the type tree, the source and C type
// names involved, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseMap, errors.KindUnsupported).
//		Path("request", "body").
//		WitType("option<u32>").
//		Detail("libffi has no union descriptors").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownType(path, "u128")
//	err := errors.DoubleFree(addr)
//
// The descriptor core never returns these: allocation failure is fatal and
// misuse is prevented by handle consumption. They are produced by the parser,
// the WIT mapper and the tracking allocator.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
