package descriptor

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/ffi-types/alloc"
)

func newTracking(t *testing.T) *alloc.Tracking {
	t.Helper()
	tr := alloc.NewTracking(alloc.CHeap{})
	t.Cleanup(func() {
		assert.NoError(t, tr.Check())
	})
	return tr
}

func TestTag_String(t *testing.T) {
	assert.Equal(t, "struct", TagStruct.String())
	assert.Equal(t, "uint8", TagUint8.String())
	assert.Equal(t, "pointer", TagPointer.String())
	assert.Equal(t, "unknown", Tag(999).String())
	if TagLongDouble != TagDouble {
		assert.Equal(t, "longdouble", TagLongDouble.String())
	}
}

func TestPrimitives(t *testing.T) {
	wantTag := map[Primitive]Tag{
		PrimVoid:              TagVoid,
		PrimUint8:             TagUint8,
		PrimSint8:             TagSint8,
		PrimUint16:            TagUint16,
		PrimSint16:            TagSint16,
		PrimUint32:            TagUint32,
		PrimSint32:            TagSint32,
		PrimUint64:            TagUint64,
		PrimSint64:            TagSint64,
		PrimFloat:             TagFloat,
		PrimDouble:            TagDouble,
		PrimLongDouble:        TagLongDouble,
		PrimComplexFloat:      TagComplex,
		PrimComplexDouble:     TagComplex,
		PrimComplexLongDouble: TagComplex,
		PrimPointer:           TagPointer,
	}

	require.Len(t, Primitives(), len(wantTag))
	for _, p := range Primitives() {
		t.Run(p.String(), func(t *testing.T) {
			s := Scalar(p)
			require.NotNil(t, s)
			assert.Same(t, s, Scalar(p), "identity must be stable")
			assert.Equal(t, wantTag[p], s.Tag)
			assert.False(t, s.IsStruct())
			assert.Nil(t, s.Fields())
			assert.True(t, IsStatic(s))
		})
	}
}

func TestPrimitives_Sizes(t *testing.T) {
	assert.Equal(t, uintptr(1), Scalar(PrimUint8).Size)
	assert.Equal(t, uintptr(2), Scalar(PrimSint16).Size)
	assert.Equal(t, uintptr(4), Scalar(PrimFloat).Size)
	assert.Equal(t, uintptr(8), Scalar(PrimUint64).Size)
	assert.Equal(t, unsafe.Sizeof(uintptr(0)), Scalar(PrimPointer).Size)
}

func TestPrimitiveOf(t *testing.T) {
	p, ok := PrimitiveOf(Scalar(PrimComplexDouble))
	require.True(t, ok)
	assert.Equal(t, PrimComplexDouble, p)

	_, ok = PrimitiveOf(&Type{Tag: TagUint8})
	assert.False(t, ok, "a copy of a static is not the static")
	assert.Equal(t, "unknown", Primitive(200).String())
}

func TestNewArray_Empty(t *testing.T) {
	tr := newTracking(t)

	arr := NewArray(tr, 0)
	assert.Equal(t, 0, ArrayLen(arr))
	assert.Nil(t, Elements(arr, 0))
	assert.Equal(t, slotSize, tr.SizeOf(unsafe.Pointer(arr)))
	assert.Equal(t, 1, ArrayAllocations(arr))

	before := tr.Stats()
	FreeArray(tr, arr)
	after := tr.Stats()
	assert.Equal(t, uint64(1), after.Frees-before.Frees)
}

func TestNewStruct(t *testing.T) {
	tr := newTracking(t)

	arr := NewArray(tr, 3)
	slots := Elements(arr, 3)
	slots[0] = Scalar(PrimSint64)
	slots[1] = Scalar(PrimSint64)
	slots[2] = Scalar(PrimUint64)

	st := NewStruct(tr, arr)
	assert.True(t, st.IsStruct())
	assert.Zero(t, st.Size)
	assert.Zero(t, st.Alignment)
	assert.Equal(t, arr, st.Elements)
	assert.Equal(t, []*Type{Scalar(PrimSint64), Scalar(PrimSint64), Scalar(PrimUint64)}, st.Fields())
	assert.Equal(t, 2, Allocations(st))
	assert.Equal(t, 2, tr.Live())

	Free(tr, st)
	assert.Equal(t, 0, tr.Live())
}

func buildNested(tr *alloc.Tracking) *Type {
	inner := NewArray(tr, 1)
	Elements(inner, 1)[0] = Scalar(PrimUint8)

	outer := NewArray(tr, 2)
	slots := Elements(outer, 2)
	slots[0] = NewStruct(tr, inner)
	slots[1] = Scalar(PrimSint32)
	return NewStruct(tr, outer)
}

func TestClone_Nested(t *testing.T) {
	tr := newTracking(t)

	orig := buildNested(tr)
	clone := Clone(tr, orig)

	require.NotSame(t, orig, clone)
	assert.NotEqual(t, uintptr(unsafe.Pointer(orig.Elements)), uintptr(unsafe.Pointer(clone.Elements)))

	of, cf := orig.Fields(), clone.Fields()
	require.Len(t, cf, 2)
	assert.True(t, cf[0].IsStruct())
	assert.NotSame(t, of[0], cf[0], "owned nodes are copied")
	assert.Same(t, of[1], cf[1], "scalars are shared")
	assert.Same(t, of[0].Fields()[0], cf[0].Fields()[0])

	assert.Equal(t, 8, tr.Live())

	Free(tr, clone)
	assert.Equal(t, 4, tr.Live())
	Free(tr, orig)
}

func TestClone_Scalar(t *testing.T) {
	tr := newTracking(t)
	s := Scalar(PrimDouble)
	assert.Same(t, s, Clone(tr, s))
	Free(tr, s)
	assert.Zero(t, tr.Stats().Allocs)
}

func TestWalk(t *testing.T) {
	tr := newTracking(t)
	root := buildNested(tr)
	defer Free(tr, root)

	var tags []Tag
	var depths []int
	Walk(root, func(n *Type, depth int) bool {
		tags = append(tags, n.Tag)
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []Tag{TagStruct, TagStruct, TagUint8, TagSint32}, tags)
	assert.Equal(t, []int{0, 1, 2, 1}, depths)

	count := 0
	Walk(root, func(*Type, int) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestNilElements(t *testing.T) {
	tr := newTracking(t)

	assert.Zero(t, ArrayLen(nil))
	assert.Nil(t, CloneArray(tr, nil))

	st := NewStruct(tr, nil)
	clone := Clone(tr, st)
	require.NotSame(t, st, clone)
	assert.Nil(t, clone.Elements)
	assert.Equal(t, 2, tr.Live())

	Free(tr, clone)
	Free(tr, st)
	assert.Zero(t, tr.Live())
}
