// Package alloc provides the allocators behind descriptor memory.
//
// CHeap is the production allocator: C malloc and free, aborting the process
// when malloc fails. Descriptors must live outside the Go heap because libffi
// stores and dereferences raw addresses into them.
//
// Tracking wraps any allocator and records every live block. It detects
// double frees and frees of foreign addresses without forwarding them, can
// poison freed memory to surface use-after-free, and reports leaks:
//
//	tr := alloc.NewTracking(alloc.CHeap{}, alloc.WithPoison(0xDD))
//	ctype.SetAllocator(tr)
//	// ... build, clone and free descriptors ...
//	if err := tr.Check(); err != nil {
//		log.Fatal(err)
//	}
//
// Observers receive an Event for every allocation, free and fault.
package alloc
