package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutOf_Scalars(t *testing.T) {
	for _, p := range []Primitive{PrimUint8, PrimSint16, PrimUint32, PrimDouble, PrimPointer} {
		s := Scalar(p)
		l := LayoutOf(s)
		assert.Equal(t, s.Size, l.Size, p.String())
		assert.Equal(t, uintptr(s.Alignment), l.Align, p.String())
		assert.Nil(t, l.Offsets)
	}
}

func TestLayoutOf_Struct(t *testing.T) {
	tr := newTracking(t)

	arr := NewArray(tr, 3)
	slots := Elements(arr, 3)
	slots[0] = Scalar(PrimUint8)
	slots[1] = Scalar(PrimUint64)
	slots[2] = Scalar(PrimUint16)
	st := NewStruct(tr, arr)
	defer Free(tr, st)

	a := uintptr(Scalar(PrimUint64).Alignment)
	l := LayoutOf(st)
	assert.Equal(t, []uintptr{0, a, a + 8}, l.Offsets)
	assert.Equal(t, a, l.Align)
	assert.Equal(t, alignUp(a+10, a), l.Size)
	assert.Zero(t, st.Size, "layout is computed, not stored")
}

func TestLayoutOf_Nested(t *testing.T) {
	tr := newTracking(t)
	root := buildNested(tr)
	defer Free(tr, root)

	l := LayoutOf(root)
	assert.Equal(t, []uintptr{0, 4}, l.Offsets)
	assert.Equal(t, uintptr(8), l.Size)
	assert.Equal(t, uintptr(4), l.Align)
}

func TestLayoutOf_Empty(t *testing.T) {
	tr := newTracking(t)
	st := NewStruct(tr, NewArray(tr, 0))
	defer Free(tr, st)

	l := LayoutOf(st)
	assert.Zero(t, l.Size)
	assert.Equal(t, uintptr(1), l.Align)
	assert.Empty(t, l.Offsets)
}
