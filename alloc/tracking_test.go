package alloc

import (
	stderrors "errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/ffi-types/errors"
)

type countingHeap struct {
	CHeap
	frees int
}

func (c *countingHeap) Free(ptr unsafe.Pointer) {
	c.frees++
	c.CHeap.Free(ptr)
}

type testObserver struct {
	events []Event
}

func (o *testObserver) OnAllocEvent(e Event) {
	o.events = append(o.events, e)
}

func TestTracking_AllocFree(t *testing.T) {
	tr := NewTracking(CHeap{})

	p := tr.Alloc(24)
	require.NotNil(t, p)
	assert.True(t, tr.Owns(p))
	assert.Equal(t, uintptr(24), tr.SizeOf(p))
	assert.Equal(t, 1, tr.Live())

	tr.Free(p)
	assert.False(t, tr.Owns(p))
	assert.Equal(t, 0, tr.Live())

	st := tr.Stats()
	assert.Equal(t, uint64(1), st.Allocs)
	assert.Equal(t, uint64(1), st.Frees)
	assert.Equal(t, 1, st.PeakLive)
	assert.Zero(t, st.LiveBytes)
	assert.NoError(t, tr.Check())
}

func TestTracking_FreeNil(t *testing.T) {
	tr := NewTracking(nil)
	tr.Free(nil)
	assert.NoError(t, tr.Check())
	assert.Zero(t, tr.Stats().Faults)
}

func TestTracking_DoubleFree(t *testing.T) {
	heap := &countingHeap{}
	tr := NewTracking(heap)

	p := tr.Alloc(8)
	tr.Free(p)
	tr.Free(p)

	assert.Equal(t, 1, heap.frees, "second free must not reach the wrapped allocator")

	faults := tr.Faults()
	require.Len(t, faults, 1)
	assert.Equal(t, errors.KindDoubleFree, faults[0].Kind)

	err := tr.Check()
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseAlloc, Kind: errors.KindDoubleFree}))
}

func TestTracking_InvalidFree(t *testing.T) {
	heap := &countingHeap{}
	tr := NewTracking(heap)

	foreign := CHeap{}.Alloc(8)
	defer CHeap{}.Free(foreign)

	tr.Free(foreign)
	assert.Zero(t, heap.frees)

	faults := tr.Faults()
	require.Len(t, faults, 1)
	assert.Equal(t, errors.KindInvalidFree, faults[0].Kind)

	tr.ResetFaults()
	assert.NoError(t, tr.Check())
}

func TestTracking_Leak(t *testing.T) {
	tr := NewTracking(CHeap{})
	a := tr.Alloc(16)
	b := tr.Alloc(32)

	err := tr.Check()
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseAlloc, Kind: errors.KindLeak}))
	assert.Contains(t, err.Error(), "2 allocation(s)")
	assert.Contains(t, err.Error(), "48 bytes")

	tr.Free(a)
	tr.Free(b)
	assert.NoError(t, tr.Check())
}

func TestTracking_ReallocatedAddressIsNotDoubleFree(t *testing.T) {
	tr := NewTracking(CHeap{})

	// malloc commonly hands back the block it just released; whichever
	// address comes back, freeing it once must be clean.
	for i := 0; i < 100; i++ {
		p := tr.Alloc(16)
		tr.Free(p)
	}
	assert.NoError(t, tr.Check())
}

func TestTracking_Poison(t *testing.T) {
	var seen []byte
	heap := &inspectingHeap{inspect: func(p unsafe.Pointer) {
		seen = append(seen, unsafe.Slice((*byte)(p), 4)...)
	}}
	tr := NewTracking(heap, WithPoison(0xDD))

	p := tr.Alloc(4)
	copy(unsafe.Slice((*byte)(p), 4), []byte{1, 2, 3, 4})
	tr.Free(p)

	assert.Equal(t, []byte{0xDD, 0xDD, 0xDD, 0xDD}, seen)
}

type inspectingHeap struct {
	CHeap
	inspect func(unsafe.Pointer)
}

func (h *inspectingHeap) Free(ptr unsafe.Pointer) {
	h.inspect(ptr)
	h.CHeap.Free(ptr)
}

func TestTracking_Observer(t *testing.T) {
	tr := NewTracking(CHeap{})
	obs := &testObserver{}
	tr.Subscribe(obs)

	p := tr.Alloc(8)
	tr.Free(p)
	tr.Free(p)

	require.Len(t, obs.events, 3)
	assert.Equal(t, EventAlloc, obs.events[0].Type)
	assert.Equal(t, uintptr(8), obs.events[0].Size)
	assert.Equal(t, EventFree, obs.events[1].Type)
	assert.Equal(t, obs.events[0].Addr, obs.events[1].Addr)
	assert.Equal(t, EventFault, obs.events[2].Type)
	require.NotNil(t, obs.events[2].Err)
	assert.Equal(t, errors.KindDoubleFree, obs.events[2].Err.Kind)

	tr.Unsubscribe(obs)
	tr.Free(tr.Alloc(8))
	assert.Len(t, obs.events, 3)

	tr.ResetFaults()
}

func TestEventType_String(t *testing.T) {
	assert.Equal(t, "alloc", EventAlloc.String())
	assert.Equal(t, "free", EventFree.String())
	assert.Equal(t, "fault", EventFault.String())
	assert.Equal(t, "unknown", EventType(99).String())
}
