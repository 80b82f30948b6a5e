package descriptor

// Primitive identifies one of libffi's static scalar descriptors.
type Primitive uint8

const (
	PrimVoid Primitive = iota
	PrimUint8
	PrimSint8
	PrimUint16
	PrimSint16
	PrimUint32
	PrimSint32
	PrimUint64
	PrimSint64
	PrimFloat
	PrimDouble
	PrimLongDouble
	PrimComplexFloat
	PrimComplexDouble
	PrimComplexLongDouble
	PrimPointer

	numPrimitives
)

var primitiveNames = [...]string{
	PrimVoid:              "void",
	PrimUint8:             "u8",
	PrimSint8:             "i8",
	PrimUint16:            "u16",
	PrimSint16:            "i16",
	PrimUint32:            "u32",
	PrimSint32:            "i32",
	PrimUint64:            "u64",
	PrimSint64:            "i64",
	PrimFloat:             "f32",
	PrimDouble:            "f64",
	PrimLongDouble:        "longdouble",
	PrimComplexFloat:      "c32",
	PrimComplexDouble:     "c64",
	PrimComplexLongDouble: "clongdouble",
	PrimPointer:           "pointer",
}

func (p Primitive) String() string {
	if p < numPrimitives {
		return primitiveNames[p]
	}
	return "unknown"
}

// primitives holds the addresses of libffi's statics. It is written once
// during package initialisation and only read afterwards.
var primitives = loadPrimitives()

// Primitives returns every primitive in declaration order.
func Primitives() []Primitive {
	out := make([]Primitive, numPrimitives)
	for i := range out {
		out[i] = Primitive(i)
	}
	return out
}

// Scalar returns libffi's static descriptor for p. The result is shared,
// immutable and must never be freed. It panics for an unknown primitive.
func Scalar(p Primitive) *Type {
	return primitives[p]
}

// PrimitiveOf reports which static descriptor t is, by address.
// Distinct primitives may share a tag (the complex kinds do), so the tag
// alone does not identify them.
func PrimitiveOf(t *Type) (Primitive, bool) {
	for i, s := range primitives {
		if s == t {
			return Primitive(i), true
		}
	}
	return 0, false
}

// IsStatic reports whether t is one of libffi's static scalars.
func IsStatic(t *Type) bool {
	_, ok := PrimitiveOf(t)
	return ok
}
