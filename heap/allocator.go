package heap

import (
	"sync/atomic"
	"unsafe"
)

// Allocator is the raw interface to a heap.
//
// Implementations:
//   - GoHeap: checked, garbage-collected memory; the default
//   - Pages: checked, anonymous page mappings outside the Go heap
//   - Malloc: unchecked, C heap through cgo
//   - Instrumented: prometheus wrapper around any of the above
//
// Every backend returns zeroed memory aligned for the layout's element type.
// Zero-sized layouts get a shared non-nil address and freeing them is a
// no-op.
type Allocator interface {
	// Allocate reserves a block for l.
	Allocate(l Layout) unsafe.Pointer

	// Free releases a block returned by Allocate. l must equal the layout
	// the block was allocated with.
	Free(p unsafe.Pointer, l Layout)

	// Name returns the backend name as accepted by ParseBackend.
	Name() string
}

// Stats is the bookkeeping of a checked backend.
type Stats struct {
	Allocations uint64  `json:"allocations"`
	Frees       uint64  `json:"frees"`
	LiveObjects int     `json:"live_objects"`
	LiveBytes   uintptr `json:"live_bytes"`
	PeakBytes   uintptr `json:"peak_bytes"`
}

// Leaked reports whether any block is still allocated.
func (s Stats) Leaked() bool { return s.LiveObjects != 0 }

// StatsReporter is implemented by backends that track their allocations.
type StatsReporter interface {
	Stats() Stats
}

// StatsOf returns the statistics of a, looking through wrappers that expose
// Unwrap. ok is false when no backend in the chain tracks allocations.
func StatsOf(a Allocator) (s Stats, ok bool) {
	for a != nil {
		if r, isReporter := a.(StatsReporter); isReporter {
			return r.Stats(), true
		}
		u, isWrapper := a.(interface{ Unwrap() Allocator })
		if !isWrapper {
			break
		}
		a = u.Unwrap()
	}
	return Stats{}, false
}

type holder struct{ a Allocator }

var defaultAllocator atomic.Pointer[holder]

func init() {
	defaultAllocator.Store(&holder{a: NewGoHeap()})
}

// Default returns the process-wide allocator.
func Default() Allocator { return defaultAllocator.Load().a }

// SetDefault installs a as the process-wide allocator and returns the
// previous one. A nil a installs a fresh GoHeap. Blocks must be freed
// through the allocator that produced them, so swap before allocating.
func SetDefault(a Allocator) Allocator {
	if a == nil {
		a = NewGoHeap()
	}
	return defaultAllocator.Swap(&holder{a: a}).a
}

// Alloc reserves zeroed memory for one T.
func Alloc[T any](a Allocator) *T {
	return (*T)(a.Allocate(LayoutOf[T]()))
}

// Free releases memory for one T obtained from Alloc on the same allocator.
// It does not finalize the value; see DropInPlace.
func Free[T any](a Allocator, p *T) {
	a.Free(unsafe.Pointer(p), LayoutOf[T]())
}
