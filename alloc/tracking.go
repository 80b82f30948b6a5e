package alloc

import (
	stderrors "errors"
	"sync"
	"unsafe"

	"go.uber.org/zap"

	ffitypes "github.com/wippyai/ffi-types"
	"github.com/wippyai/ffi-types/errors"
)

var _ ffitypes.Allocator = (*Tracking)(nil)

// EventType identifies an allocator lifecycle event.
type EventType uint8

const (
	EventAlloc EventType = iota
	EventFree
	EventFault
)

func (e EventType) String() string {
	switch e {
	case EventAlloc:
		return "alloc"
	case EventFree:
		return "free"
	case EventFault:
		return "fault"
	default:
		return "unknown"
	}
}

// Event describes one allocation, free or fault.
type Event struct {
	Err  *errors.Error
	Addr uintptr
	Size uintptr
	Type EventType
}

// Observer receives allocator lifecycle events.
// Events are delivered synchronously on the allocating goroutine.
type Observer interface {
	OnAllocEvent(Event)
}

// Stats is a snapshot of allocator counters.
type Stats struct {
	Allocs    uint64
	Frees     uint64
	Faults    uint64
	Live      int
	PeakLive  int
	LiveBytes uintptr
}

// Option configures a Tracking allocator.
type Option func(*Tracking)

// WithPoison fills every block with b before it is released, so reads
// through dangling descriptor pointers see garbage instead of stale data.
func WithPoison(b byte) Option {
	return func(t *Tracking) {
		t.poison = true
		t.poisonByte = b
	}
}

// WithLogger overrides the package logger for one allocator.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracking) {
		t.log = l
	}
}

// Tracking is a fault-detecting allocator. It is safe for concurrent use.
type Tracking struct {
	under      ffitypes.Allocator
	log        *zap.Logger
	live       map[uintptr]uintptr
	freed      map[uintptr]struct{}
	faults     []*errors.Error
	observers  []Observer
	stats      Stats
	mu         sync.Mutex
	obsMu      sync.RWMutex
	poison     bool
	poisonByte byte
}

// NewTracking wraps under. A nil under defaults to CHeap.
func NewTracking(under ffitypes.Allocator, opts ...Option) *Tracking {
	if under == nil {
		under = CHeap{}
	}
	t := &Tracking{
		under: under,
		live:  make(map[uintptr]uintptr, 64),
		freed: make(map[uintptr]struct{}, 64),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.log == nil {
		t.log = Logger()
	}
	return t
}

// Alloc allocates size bytes from the wrapped allocator and records the block.
func (t *Tracking) Alloc(size uintptr) unsafe.Pointer {
	p := t.under.Alloc(size)
	if p == nil {
		return nil
	}
	addr := uintptr(p)

	t.mu.Lock()
	t.live[addr] = size
	delete(t.freed, addr)
	t.stats.Allocs++
	t.stats.Live++
	t.stats.LiveBytes += size
	if t.stats.Live > t.stats.PeakLive {
		t.stats.PeakLive = t.stats.Live
	}
	t.mu.Unlock()

	t.notify(Event{Type: EventAlloc, Addr: addr, Size: size})
	return p
}

// Free releases a block. Freeing an address twice, or one this allocator
// never returned, records a fault and leaves the memory untouched.
func (t *Tracking) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	addr := uintptr(ptr)

	t.mu.Lock()
	size, ok := t.live[addr]
	if !ok {
		var fault *errors.Error
		if _, was := t.freed[addr]; was {
			fault = errors.DoubleFree(addr)
		} else {
			fault = errors.InvalidFree(addr)
		}
		t.faults = append(t.faults, fault)
		t.stats.Faults++
		t.mu.Unlock()

		t.log.Error("allocator fault",
			zap.String("kind", string(fault.Kind)),
			zap.Uintptr("addr", addr))
		t.notify(Event{Type: EventFault, Addr: addr, Err: fault})
		return
	}
	delete(t.live, addr)
	t.freed[addr] = struct{}{}
	t.stats.Frees++
	t.stats.Live--
	t.stats.LiveBytes -= size
	t.mu.Unlock()

	if t.poison && size > 0 {
		b := unsafe.Slice((*byte)(ptr), size)
		for i := range b {
			b[i] = t.poisonByte
		}
	}
	t.under.Free(ptr)

	t.notify(Event{Type: EventFree, Addr: addr, Size: size})
}

// Owns reports whether ptr is a live block of this allocator.
func (t *Tracking) Owns(ptr unsafe.Pointer) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.live[uintptr(ptr)]
	return ok
}

// SizeOf returns the size of a live block, or 0 if ptr is not live.
func (t *Tracking) SizeOf(ptr unsafe.Pointer) uintptr {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.live[uintptr(ptr)]
}

// Stats returns a snapshot of the counters.
func (t *Tracking) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

// Live returns the number of blocks allocated and not yet freed.
func (t *Tracking) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats.Live
}

// Faults returns the faults recorded so far.
func (t *Tracking) Faults() []*errors.Error {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*errors.Error, len(t.faults))
	copy(out, t.faults)
	return out
}

// Check returns nil when no block is live and no fault was recorded.
// Otherwise it returns every fault plus a leak summary, joined.
func (t *Tracking) Check() error {
	t.mu.Lock()
	errs := make([]error, 0, len(t.faults)+1)
	for _, f := range t.faults {
		errs = append(errs, f)
	}
	if t.stats.Live > 0 {
		errs = append(errs, errors.Leak(t.stats.Live, t.stats.LiveBytes))
	}
	t.mu.Unlock()

	return stderrors.Join(errs...)
}

// ResetFaults discards recorded faults. Live blocks are kept.
func (t *Tracking) ResetFaults() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.faults = nil
	t.stats.Faults = 0
}

// Subscribe adds an observer for lifecycle events.
func (t *Tracking) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Tracking) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

func (t *Tracking) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnAllocEvent(e)
	}
}
