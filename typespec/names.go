package typespec

import (
	"sort"

	"github.com/wippyai/ffi-types/ctype"
)

var scalars = map[string]func() *ctype.Type{
	"void":        ctype.Void,
	"u8":          ctype.U8,
	"i8":          ctype.I8,
	"u16":         ctype.U16,
	"i16":         ctype.I16,
	"u32":         ctype.U32,
	"i32":         ctype.I32,
	"u64":         ctype.U64,
	"i64":         ctype.I64,
	"usize":       ctype.Usize,
	"isize":       ctype.Isize,
	"f32":         ctype.F32,
	"f64":         ctype.F64,
	"longdouble":  ctype.LongDouble,
	"c32":         ctype.C32,
	"c64":         ctype.C64,
	"clongdouble": ctype.ComplexLongDouble,
	"pointer":     ctype.Pointer,
}

var aliases = map[string]string{
	"s8":                  "i8",
	"s16":                 "i16",
	"s32":                 "i32",
	"s64":                 "i64",
	"uint8":               "u8",
	"sint8":               "i8",
	"uint16":              "u16",
	"sint16":              "i16",
	"uint32":              "u32",
	"sint32":              "i32",
	"uint64":              "u64",
	"sint64":              "i64",
	"int":                 "i32",
	"uint":                "u32",
	"float":               "f32",
	"double":              "f64",
	"long_double":         "longdouble",
	"complex_float":       "c32",
	"complex_double":      "c64",
	"complex_longdouble":  "clongdouble",
	"complex_long_double": "clongdouble",
	"size_t":              "usize",
	"ssize_t":             "isize",
	"ptr":                 "pointer",
}

func lookup(name string) (func() *ctype.Type, bool) {
	if canon, ok := aliases[name]; ok {
		name = canon
	}
	ctor, ok := scalars[name]
	return ctor, ok
}

// ScalarNames returns the canonical scalar names, sorted.
func ScalarNames() []string {
	names := make([]string, 0, len(scalars))
	for name := range scalars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
