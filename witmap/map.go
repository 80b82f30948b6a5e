package witmap

import (
	"fmt"
	"strconv"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/ffi-types/ctype"
	"github.com/wippyai/ffi-types/errors"
)

// FromWIT builds the C view of a WIT value's linear-memory layout.
// The caller owns the result and frees it with Free.
func FromWIT(t wit.Type) (*ctype.Type, error) {
	if t == nil {
		return nil, errors.InvalidInput(errors.PhaseMap, "nil WIT type")
	}
	return fromWIT(t, nil)
}

// FromWITList maps each type in order and returns them as an array,
// for use as an argument list.
func FromWITList(types []wit.Type) (*ctype.TypeArray, error) {
	elems, err := mapAll(types, func(i int) string { return strconv.Itoa(i) }, nil)
	if err != nil {
		return nil, err
	}
	return ctype.NewTypeArray(elems...), nil
}

func fromWIT(t wit.Type, path []string) (*ctype.Type, error) {
	switch typ := t.(type) {
	case wit.Bool, wit.U8:
		return ctype.U8(), nil
	case wit.S8:
		return ctype.I8(), nil
	case wit.U16:
		return ctype.U16(), nil
	case wit.S16:
		return ctype.I16(), nil
	case wit.U32, wit.Char:
		return ctype.U32(), nil
	case wit.S32:
		return ctype.I32(), nil
	case wit.U64:
		return ctype.U64(), nil
	case wit.S64:
		return ctype.I64(), nil
	case wit.F32:
		return ctype.F32(), nil
	case wit.F64:
		return ctype.F64(), nil
	case wit.String:
		return slice(), nil
	case *wit.TypeDef:
		return fromTypeDef(typ, path)
	default:
		return nil, errors.Unsupported(errors.PhaseMap, path, fmt.Sprintf("%T", t), "no C descriptor for this WIT type")
	}
}

func fromTypeDef(t *wit.TypeDef, path []string) (*ctype.Type, error) {
	switch kind := t.Kind.(type) {
	case *wit.Record:
		types := make([]wit.Type, len(kind.Fields))
		for i, f := range kind.Fields {
			types[i] = f.Type
		}
		fields, err := mapAll(types, func(i int) string { return kind.Fields[i].Name }, path)
		if err != nil {
			return nil, err
		}
		return ctype.Structure(fields...), nil
	case *wit.Tuple:
		fields, err := mapAll(kind.Types, func(i int) string { return strconv.Itoa(i) }, path)
		if err != nil {
			return nil, err
		}
		return ctype.Structure(fields...), nil
	case *wit.List:
		return slice(), nil
	case *wit.Enum:
		return discriminant(len(kind.Cases)), nil
	case *wit.Flags:
		return flags(len(kind.Flags)), nil
	case *wit.Own, *wit.Borrow:
		return ctype.U32(), nil
	case *wit.Option:
		return nil, unionError(t, "option", path)
	case *wit.Result:
		return nil, unionError(t, "result", path)
	case *wit.Variant:
		return nil, unionError(t, "variant", path)
	case wit.Type:
		return fromWIT(kind, path)
	default:
		return nil, errors.Unsupported(errors.PhaseMap, path, typeDefName(t), fmt.Sprintf("unsupported TypeDef kind: %T", kind))
	}
}

// unionError reports a tagged union together with the linear-memory
// footprint a caller would have to describe by hand.
func unionError(t *wit.TypeDef, witType string, path []string) *errors.Error {
	info := NewCalculator().Calculate(t)
	return errors.New(errors.PhaseMap, errors.KindUnsupported).
		Path(path...).
		WitType(witType).
		CType("union").
		Value(info).
		Detail("tagged union of %d bytes (align %d) has no libffi descriptor", info.Size, info.Align).
		Build()
}

// mapAll maps types in order. On failure every type mapped so far is freed.
func mapAll(types []wit.Type, name func(int) string, path []string) ([]*ctype.Type, error) {
	out := make([]*ctype.Type, 0, len(types))
	for i, typ := range types {
		fieldPath := append(append([]string{}, path...), name(i))
		if typ == nil {
			freeAll(out)
			return nil, errors.New(errors.PhaseMap, errors.KindInvalidInput).
				Path(fieldPath...).
				Detail("nil WIT type").
				Build()
		}
		f, err := fromWIT(typ, fieldPath)
		if err != nil {
			freeAll(out)
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// slice is the (ptr, len) pair strings and lists occupy in 32-bit linear memory.
func slice() *ctype.Type {
	return ctype.Structure(ctype.U32(), ctype.U32())
}

func discriminant(cases int) *ctype.Type {
	switch discriminantSize(cases) {
	case 1:
		return ctype.U8()
	case 2:
		return ctype.U16()
	default:
		return ctype.U32()
	}
}

func flags(n int) *ctype.Type {
	switch {
	case n == 0:
		return ctype.Structure()
	case n <= 8:
		return ctype.U8()
	case n <= 16:
		return ctype.U16()
	case n <= 32:
		return ctype.U32()
	}
	words := make([]*ctype.Type, flagWords(n))
	for i := range words {
		words[i] = ctype.U32()
	}
	return ctype.Structure(words...)
}

func freeAll(ts []*ctype.Type) {
	for _, t := range ts {
		t.Free()
	}
}

func typeDefName(t *wit.TypeDef) string {
	if t.Name != nil {
		return *t.Name
	}
	return fmt.Sprintf("%T", t.Kind)
}
