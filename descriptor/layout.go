package descriptor

// Layout is the natural C layout of a descriptor tree.
type Layout struct {
	Size    uintptr
	Align   uintptr
	Offsets []uintptr // field offsets, structures only
}

// LayoutOf computes the size and alignment a C compiler gives t, the same
// numbers ffi_prep_cif stores into a structure descriptor. Structures built
// by NewStruct carry zero size until libffi lays them out, so the walk reads
// only scalar sizes. An empty structure has size 0 and alignment 1.
func LayoutOf(t *Type) Layout {
	if !t.IsStruct() {
		align := uintptr(t.Alignment)
		if align == 0 {
			align = 1
		}
		return Layout{Size: t.Size, Align: align}
	}

	fields := t.Fields()
	l := Layout{Align: 1, Offsets: make([]uintptr, len(fields))}
	var off uintptr
	for i, f := range fields {
		fl := LayoutOf(f)
		off = alignUp(off, fl.Align)
		l.Offsets[i] = off
		off += fl.Size
		if fl.Align > l.Align {
			l.Align = fl.Align
		}
	}
	l.Size = alignUp(off, l.Align)
	return l
}

func alignUp(off, align uintptr) uintptr {
	return (off + align - 1) &^ (align - 1)
}
