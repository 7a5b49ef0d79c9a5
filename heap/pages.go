package heap

import (
	"sync"
	"unsafe"

	"github.com/joshuapare/heapbox/internal/mmap"
)

// Pages is the checked off-heap backend. Every block is its own anonymous
// mapping, rounded up to whole pages, so it suits large or long-lived
// pointer-free values. Types containing Go pointers are rejected: the
// collector does not scan mappings.
type Pages struct {
	mu     sync.Mutex
	ledger ledger
}

// NewPages creates an empty Pages backend.
func NewPages() *Pages {
	Logger().Debug("heap: backend created", "backend", BackendPages, "page_size", mmap.PageSize(), "off_heap", mmap.OffHeap)
	return &Pages{ledger: newLedger(BackendPages)}
}

func (pg *Pages) Name() string { return BackendPages }

func (pg *Pages) Allocate(l Layout) unsafe.Pointer {
	if l.Size == 0 {
		return zeroSized()
	}
	if err := l.validate(); err != nil {
		Fatalf(InvariantLayoutMismatch, "%s: allocate: %v", BackendPages, err)
	}
	if l.HasPointers() {
		Fatalf(InvariantPointersOffHeap, "%s: %s holds Go pointers", BackendPages, l)
	}
	data, err := mmap.Anon(int(l.Size))
	if err != nil {
		Fatalf(InvariantOutOfMemory, "%s: allocate %s: %v", BackendPages, l, err)
	}
	p := unsafe.Pointer(unsafe.SliceData(data))

	pg.mu.Lock()
	defer pg.mu.Unlock()
	pg.ledger.add(p, l, data)
	return p
}

func (pg *Pages) Free(p unsafe.Pointer, l Layout) {
	if l.Size == 0 {
		freeZeroSized(BackendPages, p)
		return
	}

	b := pg.release(p, l)

	if err := mmap.Release(b.keep.([]byte)); err != nil {
		Fatalf(InvariantReleaseFailed, "%s: free of %#x: %v", BackendPages, uintptr(p), err)
	}
}

func (pg *Pages) release(p unsafe.Pointer, l Layout) block {
	pg.mu.Lock()
	defer pg.mu.Unlock()
	return pg.ledger.remove(p, l)
}

// Stats returns a snapshot of the allocation counters.
func (pg *Pages) Stats() Stats {
	pg.mu.Lock()
	defer pg.mu.Unlock()
	return pg.ledger.stats
}
