package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse Phase = "parse" // textual type signatures
	PhaseMap   Phase = "map"   // WIT to C descriptor mapping
	PhaseBuild Phase = "build" // descriptor construction
	PhaseAlloc Phase = "alloc" // allocator bookkeeping
)

// Kind categorizes the error
type Kind string

const (
	KindSyntax        Kind = "syntax"
	KindUnexpectedEOF Kind = "unexpected_eof"
	KindUnknownType   Kind = "unknown_type"
	KindUnsupported   Kind = "unsupported"
	KindDoubleFree    Kind = "double_free"
	KindInvalidFree   Kind = "invalid_free"
	KindLeak          Kind = "leak"
	KindAllocation    Kind = "allocation"
	KindInvalidInput  Kind = "invalid_input"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	WitType string
	CType   string
	Detail  string
	Path    []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.WitType != "" || e.CType != "" {
		b.WriteString(": ")
		if e.WitType != "" && e.CType != "" {
			b.WriteString("WIT type ")
			b.WriteString(e.WitType)
			b.WriteString(", C type ")
			b.WriteString(e.CType)
		} else if e.WitType != "" {
			b.WriteString("WIT type ")
			b.WriteString(e.WitType)
		} else {
			b.WriteString("C type ")
			b.WriteString(e.CType)
		}
	}

	if e.Detail != "" {
		if e.WitType != "" || e.CType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the path into the type tree
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// WitType sets the WIT type name
func (b *Builder) WitType(t string) *Builder {
	b.err.WitType = t
	return b
}

// CType sets the C type name
func (b *Builder) CType(t string) *Builder {
	b.err.CType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Syntax creates a parse error at a byte offset of the input
func Syntax(offset int, detail string, args ...any) *Error {
	return New(PhaseParse, KindSyntax).
		Value(offset).
		Detail("offset %d: %s", offset, fmt.Sprintf(detail, args...)).
		Build()
}

// UnexpectedEOF creates an error for input that ended mid-type
func UnexpectedEOF(offset int, want string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindUnexpectedEOF,
		Value:  offset,
		Detail: fmt.Sprintf("offset %d: expected %s", offset, want),
	}
}

// UnknownType creates an error for a scalar name that has no descriptor
func UnknownType(path []string, name string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindUnknownType,
		Path:   path,
		Value:  name,
		Detail: fmt.Sprintf("unknown scalar type %q", name),
	}
}

// Unsupported creates an unsupported mapping error
func Unsupported(phase Phase, path []string, witType, what string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindUnsupported,
		Path:    path,
		WitType: witType,
		Detail:  what,
	}
}

// DoubleFree creates an error for a second free of the same address
func DoubleFree(addr uintptr) *Error {
	return &Error{
		Phase:  PhaseAlloc,
		Kind:   KindDoubleFree,
		Value:  addr,
		Detail: fmt.Sprintf("address 0x%x already freed", addr),
	}
}

// InvalidFree creates an error for freeing an address that was never allocated
func InvalidFree(addr uintptr) *Error {
	return &Error{
		Phase:  PhaseAlloc,
		Kind:   KindInvalidFree,
		Value:  addr,
		Detail: fmt.Sprintf("address 0x%x was not allocated by this allocator", addr),
	}
}

// Leak creates an error summarizing allocations that were never freed
func Leak(count int, bytes uintptr) *Error {
	return &Error{
		Phase:  PhaseAlloc,
		Kind:   KindLeak,
		Value:  count,
		Detail: fmt.Sprintf("%d allocation(s) still live (%d bytes)", count, bytes),
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(size uintptr) *Error {
	return &Error{
		Phase:  PhaseBuild,
		Kind:   KindAllocation,
		Value:  size,
		Detail: fmt.Sprintf("failed to allocate %d bytes", size),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// WithPath returns err with prefix prepended to its path when err is an *Error.
// Other errors are returned unchanged.
func WithPath(err error, prefix ...string) error {
	var e *Error
	if !errors.As(err, &e) || len(prefix) == 0 {
		return err
	}
	path := make([]string, 0, len(prefix)+len(e.Path))
	path = append(path, prefix...)
	e.Path = append(path, e.Path...)
	return e
}
