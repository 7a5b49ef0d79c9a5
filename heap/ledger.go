package heap

import (
	"unsafe"
)

// recentFrees bounds how many freed addresses a ledger remembers for telling
// a double free apart from a foreign address.
const recentFrees = 256

// block is one live allocation. keep holds whatever reference the backend
// needs to release the block later.
type block struct {
	layout Layout
	keep   any
}

// ledger is the bookkeeping shared by the checked backends. Callers hold the
// backend's mutex.
type ledger struct {
	backend string
	live    map[uintptr]block
	recent  [recentFrees]uintptr
	next    int
	stats   Stats
}

func newLedger(backend string) ledger {
	return ledger{backend: backend, live: make(map[uintptr]block)}
}

func (l *ledger) add(p unsafe.Pointer, lay Layout, keep any) {
	l.live[uintptr(p)] = block{layout: lay, keep: keep}
	l.stats.Allocations++
	l.stats.LiveObjects++
	l.stats.LiveBytes += lay.Size
	if l.stats.LiveBytes > l.stats.PeakBytes {
		l.stats.PeakBytes = l.stats.LiveBytes
	}
}

// remove unregisters p. A p that is not live, or a layout that differs from
// the one used at allocation, is fatal.
func (l *ledger) remove(p unsafe.Pointer, lay Layout) block {
	addr := uintptr(p)
	b, ok := l.live[addr]
	if !ok {
		if l.recentlyFreed(addr) {
			Fatalf(InvariantDoubleFree, "%s: free of %#x, already freed", l.backend, addr)
		}
		Fatalf(InvariantForeignFree, "%s: free of %#x, not allocated by this backend", l.backend, addr)
	}
	if b.layout != lay {
		Fatalf(InvariantLayoutMismatch, "%s: free of %#x as %s, allocated as %s", l.backend, addr, lay, b.layout)
	}
	delete(l.live, addr)
	l.recent[l.next] = addr
	l.next = (l.next + 1) % recentFrees
	l.stats.Frees++
	l.stats.LiveObjects--
	l.stats.LiveBytes -= lay.Size
	return b
}

func (l *ledger) recentlyFreed(addr uintptr) bool {
	for _, a := range l.recent {
		if a == addr && a != 0 {
			return true
		}
	}
	return false
}

// freeZeroSized checks a free of a zero-sized block. Nothing is tracked for
// those; the address must be the shared sentinel.
func freeZeroSized(backend string, p unsafe.Pointer) {
	if p != zeroSized() {
		Fatalf(InvariantForeignFree, "%s: zero-sized free of %#x, not a zero-sized allocation", backend, uintptr(p))
	}
}
