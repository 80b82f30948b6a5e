package typespec

import (
	"strings"

	"github.com/wippyai/ffi-types/ctype"
	"github.com/wippyai/ffi-types/descriptor"
)

// Format renders a descriptor tree in the syntax Parse accepts.
// Pointer-sized aliases print as their fixed-width type.
func Format(t *descriptor.Type) string {
	if t == nil {
		return "<nil>"
	}
	var b strings.Builder
	format(&b, t)
	return b.String()
}

// FormatArray renders the elements of an array as a comma-separated list.
func FormatArray(a *ctype.TypeArray) string {
	var b strings.Builder
	for i, e := range a.Elements() {
		if i > 0 {
			b.WriteString(", ")
		}
		format(&b, e)
	}
	return b.String()
}

// Name returns the scalar name of t, or "struct" for a structure.
// Descriptors that are not libffi statics fall back to their tag name.
func Name(t *descriptor.Type) string {
	if t.IsStruct() {
		return "struct"
	}
	if p, ok := descriptor.PrimitiveOf(t); ok {
		return p.String()
	}
	return t.Tag.String()
}

func format(b *strings.Builder, t *descriptor.Type) {
	if !t.IsStruct() {
		b.WriteString(Name(t))
		return
	}
	b.WriteByte('{')
	for i, f := range t.Fields() {
		if i > 0 {
			b.WriteString(", ")
		}
		format(b, f)
	}
	b.WriteByte('}')
}
