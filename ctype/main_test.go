package ctype

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/ffi-types/alloc"
)

var tracker *alloc.Tracking

func TestMain(m *testing.M) {
	tracker = alloc.NewTracking(alloc.CHeap{}, alloc.WithPoison(0xDD))
	SetAllocator(tracker)

	code := m.Run()
	if code == 0 {
		if err := tracker.Check(); err != nil {
			fmt.Fprintf(os.Stderr, "descriptor allocator: %v\n", err)
			code = 1
		}
	}
	os.Exit(code)
}

// balanced runs fn and requires that it frees everything it allocates
// without any allocator fault.
func balanced(t *testing.T, fn func()) {
	t.Helper()
	before := tracker.Stats()
	fn()
	after := tracker.Stats()
	require.Equal(t, before.Live, after.Live, "live allocations changed")
	require.Equal(t, before.Faults, after.Faults, "allocator faults recorded")
}
