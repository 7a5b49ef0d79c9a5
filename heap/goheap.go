package heap

import (
	"reflect"
	"sync"
	"unsafe"
)

// GoHeap is the checked backend over garbage-collected memory. Blocks are
// allocated typed, so values holding Go pointers are safe to store, and each
// block stays reachable from the live set until it is freed. A block that is
// never freed is therefore a real leak and shows in Stats.
//
// Free of an address that is not live, or with a layout other than the one
// used at allocation, is fatal.
type GoHeap struct {
	mu     sync.Mutex
	ledger ledger
}

// NewGoHeap creates an empty GoHeap.
func NewGoHeap() *GoHeap {
	Logger().Debug("heap: backend created", "backend", BackendGo)
	return &GoHeap{ledger: newLedger(BackendGo)}
}

func (h *GoHeap) Name() string { return BackendGo }

func (h *GoHeap) Allocate(l Layout) unsafe.Pointer {
	if l.Size == 0 {
		return zeroSized()
	}
	if err := l.validate(); err != nil {
		Fatalf(InvariantLayoutMismatch, "%s: allocate: %v", BackendGo, err)
	}
	p := reflect.New(l.Type()).UnsafePointer()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.ledger.add(p, l, p)
	return p
}

func (h *GoHeap) Free(p unsafe.Pointer, l Layout) {
	if l.Size == 0 {
		freeZeroSized(BackendGo, p)
		return
	}

	b := h.release(p, l)

	// Typed clear so the collector sees the dropped references.
	reflect.NewAt(b.layout.Type(), p).Elem().SetZero()
}

func (h *GoHeap) release(p unsafe.Pointer, l Layout) block {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ledger.remove(p, l)
}

// Stats returns a snapshot of the allocation counters.
func (h *GoHeap) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ledger.stats
}
