package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/ffi-types/typespec"
)

func TestRenderTree(t *testing.T) {
	typ, err := typespec.Parse("{u8, {i32, u16}}")
	require.NoError(t, err)
	defer typ.Free()

	out := newTheme(false).renderTree(typ.Descriptor(), typ.Owned())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)

	assert.True(t, strings.HasPrefix(lines[0], "struct[2] tag=struct size=12 align=4 "), lines[0])
	assert.True(t, strings.HasSuffix(lines[0], " owned"))
	assert.True(t, strings.HasPrefix(lines[1], "├── u8 +0 tag=uint8 size=1 align=1 "), lines[1])
	assert.True(t, strings.HasSuffix(lines[1], " static"))
	assert.True(t, strings.HasPrefix(lines[2], "└── struct[2] +4 "), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "    ├── i32 +0 "), lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "    └── u16 +4 "), lines[4])
}

func TestInteractiveModel_Reparse(t *testing.T) {
	m := newInteractiveModel()
	defer m.release()

	m.input.SetValue("{u8, pointer}")
	m.reparse()
	require.NoError(t, m.err)
	require.NotNil(t, m.current)
	assert.True(t, m.current.Owned())

	first := m.current
	m.roundTrip()
	assert.Equal(t, 1, m.clones)

	m.input.SetValue("{u8, bogus}")
	m.reparse()
	assert.Error(t, m.err)
	assert.Nil(t, m.current)
	assert.False(t, first.Live(), "previous tree is freed on reparse")
	assert.Zero(t, m.clones)

	assert.Contains(t, m.View(), "unknown scalar type")
}
